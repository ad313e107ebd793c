// Package batch runs outline extraction over a directory of PDFs.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thywilljoshua/pdf-outline/internal/outline"
)

// DefaultSummaryName is the summary file written into the output directory.
const DefaultSummaryName = "processing_summary.json"

// Directory errors are the only ones that abort a run.
var (
	ErrInputDir  = errors.New("input directory")
	ErrOutputDir = errors.New("output directory")
)

// Extractor processes one document.
type Extractor interface {
	Extract(ctx context.Context, path string) (*outline.Document, error)
}

type Config struct {
	InputDir  string
	OutputDir string
	// Recursive descends into sub-directories and mirrors them in OutputDir.
	Recursive   bool
	SummaryName string
	Logger      *slog.Logger
	// Out receives the human-readable summary.
	Out io.Writer
}

func (c *Config) defaults() {
	if c.SummaryName == "" {
		c.SummaryName = DefaultSummaryName
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Out == nil {
		c.Out = os.Stdout
	}
}

// Runner processes files one at a time; a failing document never stops
// the run.
type Runner struct {
	cfg Config
	ex  Extractor
}

func New(cfg Config, ex Extractor) *Runner {
	cfg.defaults()
	return &Runner{cfg: cfg, ex: ex}
}

// Run processes every PDF in the input directory and writes the summary.
// It returns an error wrapping ErrInputDir or ErrOutputDir when a
// directory is unusable, or the context error when the run was stopped
// early; the summary of the files handled so far is still written then.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := checkDir(r.cfg.InputDir); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInputDir, r.cfg.InputDir, err)
	}
	if err := checkDir(r.cfg.OutputDir); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrOutputDir, r.cfg.OutputDir, err)
	}
	files, err := r.discover()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInputDir, r.cfg.InputDir, err)
	}
	r.cfg.Logger.Info("starting run", "input_dir", r.cfg.InputDir, "files", len(files))

	start := time.Now()
	sum := newSummary(uuid.NewString())
	var runErr error
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		sum.add(r.process(ctx, rel))
	}
	sum.TotalTime = round3(time.Since(start).Seconds())

	if err := writeJSON(filepath.Join(r.cfg.OutputDir, r.cfg.SummaryName), sum); err != nil {
		return sum, fmt.Errorf("%w: write summary: %w", ErrOutputDir, err)
	}
	sum.Print(r.cfg.Out)
	r.cfg.Logger.Info("run finished", "run_id", sum.RunID, "files", sum.TotalFiles,
		"successful", sum.Successful, "failed", sum.Failed, "seconds", sum.TotalTime)
	return sum, runErr
}

func (r *Runner) process(ctx context.Context, rel string) (res FileResult) {
	log := r.cfg.Logger
	res = FileResult{File: filepath.ToSlash(rel)}
	start := time.Now()
	defer func() { res.ProcessingTime = round3(time.Since(start).Seconds()) }()

	doc, err := r.ex.Extract(ctx, filepath.Join(r.cfg.InputDir, rel))
	if doc != nil {
		for _, w := range doc.Warnings {
			res.Warnings = append(res.Warnings, w.Error())
		}
	}
	if err != nil {
		res.Status = StatusFailed
		res.ErrorKind = outline.KindOf(err)
		res.Error = err.Error()
		log.Error("failed", "file", res.File, "kind", res.ErrorKind, "error", err)
		return res
	}

	out := strings.TrimSuffix(rel, filepath.Ext(rel)) + ".json"
	dst := filepath.Join(r.cfg.OutputDir, out)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return r.writeFailed(res, err)
	}
	if err := writeJSON(dst, doc.Result); err != nil {
		return r.writeFailed(res, err)
	}

	m := doc.Result.Metadata
	res.Status = StatusOK
	if doc.Empty {
		res.Status = StatusEmpty
		res.ErrorKind = outline.EmptyDocument
	}
	res.OutputFile = filepath.ToSlash(out)
	res.Headings = m.TotalHeadings
	res.Title = doc.Result.Title
	res.DocumentType = m.DocumentType
	res.ExtractionMethod = m.ExtractionMethod
	log.Info("processed", "file", res.File, "headings", res.Headings, "seconds", m.ProcessingTime,
		"method", m.ExtractionMethod, "type", m.DocumentType, "status", res.Status)
	return res
}

func (r *Runner) writeFailed(res FileResult, err error) FileResult {
	res.Status = StatusFailed
	res.Error = fmt.Sprintf("write output: %v", err)
	r.cfg.Logger.Error("failed", "file", res.File, "error", err)
	return res
}

// discover lists PDF paths relative to the input directory, sorted.
// Symlinks are followed when they point at regular files. Unreadable
// sub-directories are logged and skipped in recursive mode.
func (r *Runner) discover() ([]string, error) {
	var files []string
	if !r.cfg.Recursive {
		entries, err := os.ReadDir(r.cfg.InputDir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if isPDF(e.Name()) && r.isRegular(filepath.Join(r.cfg.InputDir, e.Name()), e) {
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)
		return files, nil
	}
	err := filepath.WalkDir(r.cfg.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == r.cfg.InputDir {
				return err
			}
			r.cfg.Logger.Warn("skipping unreadable directory", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !isPDF(d.Name()) || !r.isRegular(path, d) {
			return nil
		}
		rel, err := filepath.Rel(r.cfg.InputDir, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	sort.Strings(files)
	return files, err
}

// isRegular reports a regular file, resolving symlinks.
func (r *Runner) isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	if err != nil {
		r.cfg.Logger.Warn("skipping broken link", "path", path, "error", err)
		return false
	}
	return fi.Mode().IsRegular()
}

func isPDF(name string) bool { return strings.EqualFold(filepath.Ext(name), ".pdf") }

func checkDir(dir string) error {
	if dir == "" {
		return errors.New("not set")
	}
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return errors.New("not a directory")
	}
	return nil
}

func round3(f float64) float64 { return math.Round(f*1000) / 1000 }
