package commands

import (
	"errors"

	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

// describeError returns a localized, one-line description of a control file
// failure. The underlying error keeps the technical detail.
func describeError(err error, controlPath string, localizer *i18n.Localizer) string {
	var (
		access    *debian.FileAccessError
		notFound  *debian.VersionNotFoundError
		signature *debian.SignatureError
		invalid   *debian.InvalidVersionError
	)

	switch {
	case errors.As(err, &signature):
		return localizeMessage(localizer, "error.signature", "signature verification failed for "+signature.Path, map[string]any{
			"Path": signature.Path,
		})
	case errors.As(err, &access):
		return localizeMessage(localizer, "error.file_access", "cannot read control file "+access.Path, map[string]any{
			"Path": access.Path,
		})
	case errors.As(err, &notFound) && notFound.Empty:
		return localizeMessage(localizer, "error.version_empty", "empty Version field in "+notFound.Path, map[string]any{
			"Path": notFound.Path,
			"Line": notFound.Line,
		})
	case errors.As(err, &notFound):
		return localizeMessage(localizer, "error.version_not_found", "Version line was not found in "+notFound.Path, map[string]any{
			"Path": notFound.Path,
		})
	case errors.As(err, &invalid):
		return localizeMessage(localizer, "error.invalid_version", "invalid Debian version "+invalid.Version, map[string]any{
			"Version": invalid.Version,
		})
	default:
		return localizeMessage(localizer, "error.file_access", "cannot read control file "+controlPath, map[string]any{
			"Path": controlPath,
		})
	}
}

func localizeMessage(localizer *i18n.Localizer, messageID, fallback string, data map[string]any) string {
	if localizer == nil {
		return fallback
	}

	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: data})
	if err == nil && msg != "" {
		return msg
	}

	return fallback
}

// Localize is exported for the root command's flag and command help.
func Localize(localizer *i18n.Localizer, messageID, fallback string) string {
	return localizeMessage(localizer, messageID, fallback, nil)
}
