// Package commands implements the lendon command line.
package commands

import (
	"fmt"

	"github.com/holiy930561/LenDon/internal/config"
	"github.com/holiy930561/LenDon/internal/logger"
	"github.com/holiy930561/LenDon/locales"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries state shared by every subcommand after flag parsing.
type app struct {
	envFile string
	lang    string
	verbose bool
	quiet   bool

	cfg      *config.Config
	logger   *zap.Logger
	language locales.Language
}

// load reads configuration and builds the logger.
func (a *app) load() error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}

	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	switch {
	case a.verbose:
		level = "debug"
	case a.quiet:
		level = "error"
	}
	log, err := logger.New(logger.Config{Level: level, Encoding: cfg.LogEncoding})
	if err != nil {
		return err
	}
	a.logger = log

	tag := cfg.Language
	if a.lang != "" {
		tag = a.lang
	}
	lang, err := locales.ParseLanguage(tag)
	if err != nil {
		return err
	}
	a.language = lang

	return nil
}

// NewRootCmd creates the root command with every subcommand attached.
func NewRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "lendon",
		Short: "Localize Chinese product text for Vietnamese marketplaces",
		Long: `Lên Đơn turns Chinese product text into Vietnamese e-commerce content:
Shopee SEO titles, product descriptions, customer-service replies and
TikTok/Facebook marketing copy.

Configuration is read from .env and LENDON_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Load environment from this file instead of .env")
	cmd.PersistentFlags().StringVar(&a.lang, "lang", "", "Interface language (en, zh); default LENDON_LANGUAGE")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only log errors")

	cmd.AddCommand(
		newGenerateCmd(a),
		newScenariosCmd(a),
		newLocalesCmd(a),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
