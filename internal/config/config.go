// Package config assembles run settings from the environment, flags and an
// optional YAML profile file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Config is the settings of one batch run.
type Config struct {
	InputDir     string
	OutputDir    string
	Verbose      bool
	Recursive    bool
	LogFile      string
	ProfilesFile string
	SummaryName  string
	SamplePages  int
	// Threads is the thread-count hint; 0 leaves GOMAXPROCS alone.
	Threads     int
	MinTOCRatio float64
	MaxTOCRatio float64
}

// NewConfig returns defaults, overridden by environment variables.
func NewConfig() *Config {
	return &Config{
		SummaryName: getEnvOrDefault("PDFOUTLINE_SUMMARY_NAME", "processing_summary.json"),
		SamplePages: getEnvIntOrDefault("PDFOUTLINE_SAMPLE_PAGES", 3),
		// OMP_NUM_THREADS is the fallback thread hint.
		Threads:     getEnvIntOrDefault("PDFOUTLINE_THREADS", getEnvIntOrDefault("OMP_NUM_THREADS", 0)),
		MinTOCRatio: getEnvFloatOrDefault("PDFOUTLINE_TOC_MIN_RATIO", 0.5),
		MaxTOCRatio: getEnvFloatOrDefault("PDFOUTLINE_TOC_MAX_RATIO", 2.0),
	}
}

// Validate checks that required fields are present and values are sane.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("input_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.SamplePages <= 0 {
		return fmt.Errorf("sample_pages must be > 0")
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0")
	}
	if c.MinTOCRatio <= 0 || c.MaxTOCRatio < c.MinTOCRatio {
		return fmt.Errorf("toc ratio band [%g, %g] is invalid", c.MinTOCRatio, c.MaxTOCRatio)
	}
	if c.SummaryName == "" || strings.ContainsAny(c.SummaryName, `/\`) {
		return fmt.Errorf("summary_name %q must be a plain file name", c.SummaryName)
	}
	return nil
}

// ApplyThreads sets GOMAXPROCS from the thread hint and returns the
// previous value.
func (c *Config) ApplyThreads() int {
	if c.Threads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return runtime.GOMAXPROCS(c.Threads)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
