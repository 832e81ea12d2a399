package debian

import (
	"errors"
	"fmt"
)

// FileAccessError reports a control file that could not be opened or read.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("control file %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("control file %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// VersionNotFoundError reports a control file without a usable Version line.
type VersionNotFoundError struct {
	Path string
	// Line is the 1-based line of an empty Version field, zero otherwise.
	Line  int
	Empty bool
}

func (e *VersionNotFoundError) Error() string {
	where := "control file"
	if e.Path != "" {
		where = "control file " + e.Path
	}
	if e.Empty {
		return fmt.Sprintf("%s: empty Version field on line %d", where, e.Line)
	}
	return fmt.Sprintf("%s: Version line was not found", where)
}

// SignatureError reports a clearsigned control file that failed verification.
type SignatureError struct {
	Path string
	Err  error
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature verification failed for %s: %v", e.Path, e.Err)
}

func (e *SignatureError) Unwrap() error {
	return e.Err
}

// InvalidVersionError reports a version rejected by strict syntax checking.
type InvalidVersionError struct {
	Version string
	Err     error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid Debian version %q: %v", e.Version, e.Err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.Err
}

// withPath records filePath on scan errors, which are produced without one.
func withPath(err error, filePath string) error {
	var notFound *VersionNotFoundError
	if errors.As(err, &notFound) && notFound.Path == "" {
		notFound.Path = filePath
	}

	var access *FileAccessError
	if errors.As(err, &access) && access.Path == "" {
		access.Path = filePath
	}

	return err
}
