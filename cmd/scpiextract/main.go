// Command scpiextract builds a structured SCPI command catalog from an
// instrument programmer manual.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abnasim/TekAutomate/internal/config"
	"github.com/abnasim/TekAutomate/internal/document"
	"github.com/abnasim/TekAutomate/internal/scpi"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "scpiextract",
		Short:         "Extract SCPI commands from instrument programmer manuals",
		Long:          "scpiextract reads a styled programmer manual (.docx or .pdf) and produces a grouped JSON catalog of its SCPI commands: syntax forms, inferred parameters, examples and cross references.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newExtractCmd(), newInspectCmd(), newVersionCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the command catalog from a manual",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return runExtract(cfg)
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report block classification and font usage for profile tuning",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			return runInspect(cfg)
		},
	}
	config.BindFlags(cmd.Flags())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scpiextract %s (built %s, commit %s)\n", version, buildTime, gitCommit)
		},
	}
}

func runExtract(cfg *config.Config) error {
	log := newLogger(cfg)

	index, err := loadIndex(cfg, log)
	if err != nil {
		return err
	}

	blocks, err := loadManual(cfg, log)
	if err != nil {
		return err
	}

	extractor := scpi.NewExtractor(index, profileFromConfig(cfg), log)
	records := extractor.Extract(blocks)
	log.WithField("records", len(records)).Info("extraction complete")

	service := scpi.NewService(index, log)
	catalog := service.BuildCatalog(records, cfg.ManualTitle)

	if err := writeJSON(cfg.OutputPath, catalog); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	log.WithFields(logrus.Fields{
		"output":   cfg.OutputPath,
		"commands": catalog.Metadata.TotalCommands,
		"groups":   catalog.Metadata.TotalGroups,
	}).Info("catalog written")
	return nil
}

func runInspect(cfg *config.Config) error {
	log := newLogger(cfg)

	index, err := loadIndex(cfg, log)
	if err != nil {
		return err
	}

	blocks, err := loadManual(cfg, log)
	if err != nil {
		return err
	}

	extractor := scpi.NewExtractor(index, profileFromConfig(cfg), log)
	report := extractor.Inspect(blocks)

	if err := writeJSON(cfg.OutputPath, report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	log.WithField("output", cfg.OutputPath).Info("inspection report written")
	return nil
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func loadIndex(cfg *config.Config, log *logrus.Logger) (*scpi.Index, error) {
	if cfg.IndexPath == "" {
		return scpi.NewIndex(), nil
	}
	index, err := scpi.LoadIndexFile(cfg.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load command index: %w", err)
	}
	log.WithFields(logrus.Fields{
		"path":     cfg.IndexPath,
		"commands": index.Len(),
	}).Info("command index loaded")
	return index, nil
}

func loadManual(cfg *config.Config, log *logrus.Logger) ([]document.Block, error) {
	format, err := cfg.ResolveFormat()
	if err != nil {
		return nil, err
	}

	var loader document.Loader
	switch format {
	case config.FormatDocx:
		loader = document.NewDocxReader(cfg.MaxFileSize)
	case config.FormatPDF:
		loader = document.NewPDFReader(cfg.MaxFileSize)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	blocks, err := loader.ReadFile(cfg.ManualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manual: %w", err)
	}
	log.WithFields(logrus.Fields{
		"manual": cfg.ManualPath,
		"format": format,
		"blocks": len(blocks),
	}).Info("manual loaded")
	return blocks, nil
}

func profileFromConfig(cfg *config.Config) scpi.Profile {
	profile := scpi.DefaultProfile()
	if cfg.HeaderStyle != "" {
		profile.HeaderStyle = cfg.HeaderStyle
	}
	if cfg.HeaderFont != "" {
		profile.HeaderFont = cfg.HeaderFont
	}
	if cfg.SectionStyle != "" {
		profile.SectionStyle = cfg.SectionStyle
	}
	if len(cfg.SyntaxFonts) > 0 {
		profile.SyntaxFonts = cfg.SyntaxFonts
	}
	return profile
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
