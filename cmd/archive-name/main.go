package main

import (
	"context"
	"embed"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	apperrors "github.com/CeGenreDeChat/archive-name/internal/errors"
	"github.com/CeGenreDeChat/archive-name/internal/logger"
)

//go:embed locales/*.toml
var localeFS embed.FS

var supportedLanguages = []string{"en", "fr"}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code. Standard output
// only ever receives the command result.
func run(args []string, stdout, stderr io.Writer) int {
	ctx := logger.ToContext(context.Background(), logger.New(nil, stderr))
	defer logger.Sync(ctx)

	localizer, err := newLocalizer(lookupLang(args))
	if err != nil {
		logger.ErrorKV(ctx, "unable to load translations", "error", err)
		return apperrors.CodeGeneric
	}

	rootCmd := newRootCmd(localizer)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Err != nil {
			logger.ErrorKV(ctx, custom.Message, "error", custom.Err)
		} else {
			logger.Error(ctx, err)
		}
		return apperrors.CodeFor(err)
	}

	return apperrors.CodeOK
}

func newLocalizer(lang string) (*i18n.Localizer, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, tag := range supportedLanguages {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+tag+".toml"); err != nil {
			return nil, err
		}
	}

	return i18n.NewLocalizer(bundle, lang, language.English.String()), nil
}

// lookupLang finds --lang before cobra parses flags, since help texts are
// localized when the commands are built.
func lookupLang(args []string) string {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if value, ok := strings.CutPrefix(arg, "--lang="); ok {
			return value
		}
		if arg == "--lang" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return language.English.String()
}
