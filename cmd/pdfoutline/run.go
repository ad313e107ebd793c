package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-outline/internal/batch"
	"github.com/thywilljoshua/pdf-outline/internal/config"
	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

func rootCmd() *cobra.Command {
	cfg := config.NewConfig()

	cmd := &cobra.Command{
		Use:           "pdfoutline",
		Short:         "Extract titles and heading outlines from a directory of PDFs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg.LogFile, cfg.Verbose)
			if err != nil {
				return err
			}
			defer func() {
				if cerr := closeLog(); cerr != nil && err == nil {
					err = cerr
				}
			}()

			prev := cfg.ApplyThreads()
			logger.Debug("threads", "gomaxprocs", cfg.Threads, "previous", prev)

			profiles, err := config.LoadProfiles(cfg.ProfilesFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ex := outline.New(outline.Config{
				Profiles:    profiles,
				SamplePages: cfg.SamplePages,
				TOC:         outline.NewPdfcpuTOC(),
				MinTOCRatio: cfg.MinTOCRatio,
				MaxTOCRatio: cfg.MaxTOCRatio,
				Logger:      logger,
			})
			runner := batch.New(batch.Config{
				InputDir:    cfg.InputDir,
				OutputDir:   cfg.OutputDir,
				Recursive:   cfg.Recursive,
				SummaryName: cfg.SummaryName,
				Logger:      logger,
				Out:         cmd.OutOrStdout(),
			}, ex)
			_, err = runner.Run(ctx)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.InputDir, "input_dir", "", "directory containing PDF files")
	f.StringVar(&cfg.OutputDir, "output_dir", "", "existing directory for JSON outlines")
	f.BoolVar(&cfg.Verbose, "verbose", false, "log per-page detail")
	f.BoolVar(&cfg.Recursive, "recursive", false, "descend into sub-directories and mirror them in the output")
	f.StringVar(&cfg.LogFile, "log_file", "", "also append logs to this file")
	f.StringVar(&cfg.ProfilesFile, "profiles", "", "YAML file overriding profile thresholds")
	f.IntVar(&cfg.SamplePages, "sample_pages", cfg.SamplePages, "pages sampled to choose a document profile")
	f.StringVar(&cfg.SummaryName, "summary_name", cfg.SummaryName, "name of the run summary written to the output directory")
	_ = cmd.MarkFlagRequired("input_dir")
	_ = cmd.MarkFlagRequired("output_dir")
	return cmd
}

// newLogger builds a text logger on w, teed to logFile when set.
// The returned func closes the log file.
func newLogger(w io.Writer, logFile string, verbose bool) (*slog.Logger, func() error, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(w, f)
		closeFn = func() error {
			if err := f.Close(); err != nil {
				return fmt.Errorf("close log file: %w", err)
			}
			return nil
		}
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return logger, closeFn, nil
}
