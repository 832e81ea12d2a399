package debian

import (
	"bufio"
	"io"
	"strings"
)

// Control file scanning constants.
const (
	controlBufferSize   = 1024 * 1024 // 1MB max line length
	controlInitialAlloc = 4 * 1024

	// VersionPrefix is the exact line prefix that carries the package version.
	VersionPrefix = "Version: "

	// DefaultControlPath is the control file read when no path is given.
	DefaultControlPath = "debian/brain-config/DEBIAN/control"
)

// ReadOptions controls how a control file is opened before it is scanned.
type ReadOptions struct {
	// KeyringPaths are public key files used to verify clearsigned input.
	KeyringPaths []string
	// Strict rejects versions that are not valid Debian version strings.
	Strict bool
	// OnUnverified is called when clearsigned input is read without keyrings.
	OnUnverified func(path string)
}

// ReadVersion returns the version declared in the control file at filePath.
func ReadVersion(filePath string) (string, error) {
	return ReadVersionWithOptions(filePath, ReadOptions{})
}

// ReadVersionWithOptions opens filePath (decompressing or verifying it when
// needed) and returns the value of its first "Version: " line.
func ReadVersionWithOptions(filePath string, opts ReadOptions) (string, error) {
	if filePath == "" {
		filePath = DefaultControlPath
	}

	source, err := OpenControl(filePath, opts)
	if err != nil {
		return "", err
	}
	defer source.Close()

	version, err := ExtractVersion(source)
	if err != nil {
		return "", withPath(err, filePath)
	}

	if opts.Strict {
		if err := ValidateVersion(version); err != nil {
			return "", err
		}
	}

	return version, nil
}

// ExtractVersion scans r line by line and returns the remainder of the first
// line starting with "Version: ". Only the line terminator is removed, but a
// value made only of whitespace is rejected.
func ExtractVersion(r io.Reader) (string, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, controlInitialAlloc)
	scanner.Buffer(buf, controlBufferSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := scanner.Text()
		if !strings.HasPrefix(line, VersionPrefix) {
			continue
		}

		version := strings.TrimPrefix(line, VersionPrefix)
		if strings.TrimSpace(version) == "" {
			return "", &VersionNotFoundError{Line: lineNumber, Empty: true}
		}

		return version, nil
	}

	if err := scanner.Err(); err != nil {
		return "", &FileAccessError{Op: "read", Err: err}
	}

	return "", &VersionNotFoundError{}
}
