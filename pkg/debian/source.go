package debian

import (
	"archive/tar"
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

const clearsignHeader = "-----BEGIN PGP SIGNED MESSAGE-----"

var (
	errControlMemberMissing = errors.New("no control member in archive")
	errNotClearsigned       = errors.New("keyrings configured but control file is not clearsigned")
)

// controlSource is the decoded control stream plus everything that must be
// closed once scanning is done.
type controlSource struct {
	io.Reader
	closers []io.Closer
}

// Close releases every underlying reader, innermost first.
func (s *controlSource) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenControl opens the control file at filePath and returns a reader over
// its plain text. Compressed files (.xz, .gz), control archives
// (control.tar.xz, control.tar.gz) and clearsigned files are decoded
// transparently.
func OpenControl(filePath string, opts ReadOptions) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Clean(filePath))
	if err != nil {
		return nil, &FileAccessError{Path: filePath, Op: "open", Err: err}
	}

	source := &controlSource{Reader: file, closers: []io.Closer{file}}
	if err := source.decode(filePath, opts); err != nil {
		source.Close()
		return nil, err
	}

	return source, nil
}

func (s *controlSource) decode(filePath string, opts ReadOptions) error {
	name := strings.ToLower(filepath.Base(filePath))

	extension := path.Ext(name)
	if extension == ".xz" || extension == ".gz" {
		reader, cleanup, err := createDecompressor(s.Reader, extension)
		if err != nil {
			return &FileAccessError{Path: filePath, Op: "decompress", Err: err}
		}
		if cleanup != nil {
			s.closers = append(s.closers, cleanup)
		}
		s.Reader = reader

		if strings.HasSuffix(strings.TrimSuffix(name, extension), ".tar") {
			member, err := findControlMember(s.Reader)
			if err != nil {
				return &FileAccessError{Path: filePath, Op: "extract", Err: err}
			}
			s.Reader = member
		}
	}

	buffered := bufio.NewReader(s.Reader)
	s.Reader = buffered

	head, _ := buffered.Peek(len(clearsignHeader))
	if !bytes.Equal(head, []byte(clearsignHeader)) {
		if len(opts.KeyringPaths) > 0 {
			return &SignatureError{Path: filePath, Err: errNotClearsigned}
		}
		return nil
	}

	data, err := io.ReadAll(buffered)
	if err != nil {
		return &FileAccessError{Path: filePath, Op: "read", Err: err}
	}

	if len(opts.KeyringPaths) > 0 {
		cleartext, err := VerifyClearsigned(data, opts.KeyringPaths)
		if err != nil {
			return &SignatureError{Path: filePath, Err: err}
		}
		s.Reader = bytes.NewReader(cleartext)
		return nil
	}

	// An incomplete envelope is scanned as plain text.
	cleartext, err := ClearsignedContent(data)
	if err != nil {
		s.Reader = bytes.NewReader(data)
		return nil
	}

	if opts.OnUnverified != nil {
		opts.OnUnverified(filePath)
	}
	s.Reader = bytes.NewReader(cleartext)
	return nil
}

// createDecompressor creates a decompression reader based on the file extension.
// Returns the reader, a closer (may be nil), and any error.
func createDecompressor(body io.Reader, extension string) (io.Reader, io.Closer, error) {
	switch extension {
	case ".gz":
		gzReader, err := gzip.NewReader(body)
		if err != nil {
			return nil, nil, fmt.Errorf("error during gzip decompression: %w", err)
		}
		return gzReader, gzReader, nil

	case ".xz":
		xzReader, err := xz.NewReader(body)
		if err != nil {
			return nil, nil, fmt.Errorf("error during xz decompression: %w", err)
		}
		return xzReader, nil, nil

	default:
		return nil, nil, fmt.Errorf("unsupported compression format: %s", extension)
	}
}

// findControlMember advances a control.tar stream to its "control" entry.
func findControlMember(r io.Reader) (io.Reader, error) {
	tr := tar.NewReader(r)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil, errControlMemberMissing
		}
		if err != nil {
			return nil, fmt.Errorf("error reading control archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}
		if path.Clean(strings.TrimPrefix(header.Name, "./")) == "control" {
			return tr, nil
		}
	}
}
