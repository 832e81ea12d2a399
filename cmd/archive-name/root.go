package main

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/CeGenreDeChat/archive-name/cmd/archive-name/commands"
	"github.com/CeGenreDeChat/archive-name/internal/config"
	apperrors "github.com/CeGenreDeChat/archive-name/internal/errors"
	"github.com/CeGenreDeChat/archive-name/internal/logger"
	"github.com/CeGenreDeChat/archive-name/internal/version"
	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

type rootFlags struct {
	ConfigPath   string
	ControlPath  string
	Package      string
	Architecture string
	Keyrings     []string
	Strict       bool
	Verbose      bool
	Lang         string
}

func newRootCmd(localizer *i18n.Localizer) *cobra.Command {
	flags := &rootFlags{}
	localize := func(messageID, fallback string) string {
		return commands.Localize(localizer, messageID, fallback)
	}

	rootCmd := &cobra.Command{
		Use:           "archive-name",
		Short:         localize("command.root", "Print the .deb artifact filename for a Debian control file"),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.resolve(cmd, localizer)
			if err != nil {
				return err
			}
			return commands.PrintArchiveName(cmd.Context(), opts, cmd.OutOrStdout(), localizer)
		},
	}

	// Flags globaux
	rootCmd.PersistentFlags().StringVarP(&flags.ControlPath, "control", "c", debian.DefaultControlPath, localize("flag.control", "path of the control file"))
	rootCmd.PersistentFlags().StringSliceVar(&flags.Keyrings, "keyring", nil, localize("flag.keyring", "OpenPGP public key file"))
	rootCmd.PersistentFlags().BoolVar(&flags.Strict, "strict", false, localize("flag.strict", "reject invalid Debian versions"))
	rootCmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", localize("flag.config", "path to a TOML configuration file"))
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, localize("flag.verbose", "enable debug logging"))
	rootCmd.PersistentFlags().StringVar(&flags.Lang, "lang", "en", localize("flag.lang", "language of diagnostic messages"))

	rootCmd.Flags().StringVarP(&flags.Package, "package", "p", debian.DefaultPackageName, localize("flag.package", "package name"))
	rootCmd.Flags().StringVarP(&flags.Architecture, "arch", "a", debian.DefaultArchitecture, localize("flag.arch", "architecture"))

	// Commande `show`
	showCmd := &cobra.Command{
		Use:   "show",
		Short: localize("command.show", "Print the version declared in the control file"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.resolve(cmd, localizer)
			if err != nil {
				return err
			}
			return commands.ShowControlVersion(cmd.Context(), opts, cmd.OutOrStdout(), localizer)
		},
	}
	rootCmd.AddCommand(showCmd)

	version.AttachCobraVersionCommand(rootCmd, localize("command.version", "Print version information"))

	return rootCmd
}

// resolve merges defaults, the optional configuration file and the flags
// explicitly set on the command line, in that order.
func (f *rootFlags) resolve(cmd *cobra.Command, localizer *i18n.Localizer) (commands.Options, error) {
	configError := func(err error) error {
		return &apperrors.CustomError{
			Code:    apperrors.CodeGeneric,
			Message: commands.Localize(localizer, "error.config", "invalid configuration"),
			Err:     err,
		}
	}

	cfg := config.Default()
	if f.ConfigPath != "" {
		loaded, err := config.Load(f.ConfigPath)
		if err != nil {
			return commands.Options{}, configError(err)
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("control") {
		cfg.Control = f.ControlPath
	}
	if changed("package") {
		cfg.Package = f.Package
	}
	if changed("arch") {
		cfg.Architecture = f.Architecture
	}
	if changed("keyring") {
		cfg.Keyrings = f.Keyrings
	}
	if changed("strict") {
		cfg.Strict = f.Strict
	}
	if err := config.Validate(cfg); err != nil {
		return commands.Options{}, configError(err)
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	if f.Verbose {
		level = zapcore.DebugLevel
	}
	logger.SetLevel(level)

	return commands.Options{
		ControlPath:  cfg.Control,
		Package:      cfg.Package,
		Architecture: cfg.Architecture,
		Read:         cfg.ReadOptions(),
	}, nil
}
