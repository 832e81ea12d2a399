package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	apperrors "github.com/CeGenreDeChat/archive-name/internal/errors"
	"github.com/CeGenreDeChat/archive-name/internal/logger"
	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

// Options selects the control file and the artifact name parts.
type Options struct {
	ControlPath  string
	Package      string
	Architecture string
	Read         debian.ReadOptions
}

// PrintArchiveName writes <package>_<version>_<arch>.deb to out without a
// trailing newline. Nothing is written when the version cannot be read.
func PrintArchiveName(ctx context.Context, opts Options, out io.Writer, localizer *i18n.Localizer) error {
	version, err := readControlVersion(ctx, opts, localizer)
	if err != nil {
		return err
	}

	spec := &debian.ArchiveSpec{
		Package:      opts.Package,
		Version:      version,
		Architecture: opts.Architecture,
	}
	filename := archiveFilename(spec)

	logger.DebugKV(ctx, "artifact name computed", "spec", spec.String(), "filename", filename)

	return writeResult(out, filename, localizer)
}

// ShowControlVersion writes the bare version to out without a trailing newline.
func ShowControlVersion(ctx context.Context, opts Options, out io.Writer, localizer *i18n.Localizer) error {
	version, err := readControlVersion(ctx, opts, localizer)
	if err != nil {
		return err
	}

	return writeResult(out, version, localizer)
}

func readControlVersion(ctx context.Context, opts Options, localizer *i18n.Localizer) (string, error) {
	controlPath := opts.ControlPath
	if controlPath == "" {
		controlPath = debian.DefaultControlPath
	}

	readOpts := opts.Read
	readOpts.OnUnverified = func(path string) {
		logger.Warnf(ctx, "%s", localizeMessage(localizer, "warning.unverified", "clearsigned control file read without verification: "+path, map[string]any{
			"Path": path,
		}))
	}

	logger.DebugKV(ctx, "reading control file", "path", controlPath, "keyrings", len(readOpts.KeyringPaths), "strict", readOpts.Strict)

	version, err := debian.ReadVersionWithOptions(controlPath, readOpts)
	if err != nil {
		return "", apperrors.Wrap(err, describeError(err, controlPath, localizer))
	}

	logger.DebugKV(ctx, "version found", "path", controlPath, "version", version)

	return version, nil
}

func writeResult(out io.Writer, result string, localizer *i18n.Localizer) error {
	if _, err := io.WriteString(out, result); err != nil {
		msg := localizeMessage(localizer, "error.output", "cannot write to standard output", nil)
		return &apperrors.CustomError{Code: apperrors.CodeGeneric, Message: msg, Err: fmt.Errorf("write result: %w", err)}
	}
	return nil
}
