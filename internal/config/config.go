package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
)

const envPrefix = "WORKERBOARD_"

type Config struct {
	Addr             string
	ContentDir       string
	DataFile         string
	RedirectLocation string
	Concurrency      int
	LogFormat        string
	LogLevel         slog.Level
}

func Default() Config {
	return Config{
		Addr:             ":8080",
		RedirectLocation: "http://localhost:8080/index.html",
		Concurrency:      1,
		LogFormat:        "text",
		LogLevel:         slog.LevelInfo,
	}
}

// Load reads flags from args. Every flag can also come from a WORKERBOARD_*
// environment variable, which the flag overrides.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Default()
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	if err := fromEnv(&cfg, getenv); err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("workerboard", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.ContentDir, "content", cfg.ContentDir, "directory with static files (default: bundled content)")
	fs.StringVar(&cfg.DataFile, "data", cfg.DataFile, "JSON snapshot file for workers and tasks (default: memory only)")
	fs.StringVar(&cfg.RedirectLocation, "redirect", cfg.RedirectLocation, "Location sent after a worker gets a task")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "connections serviced at once")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "text or json")
	fs.TextVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromEnv(cfg *Config, getenv func(string) string) error {
	strs := map[string]*string{
		"ADDR":       &cfg.Addr,
		"CONTENT":    &cfg.ContentDir,
		"DATA":       &cfg.DataFile,
		"REDIRECT":   &cfg.RedirectLocation,
		"LOG_FORMAT": &cfg.LogFormat,
	}
	for name, dst := range strs {
		if v := getenv(envPrefix + name); v != "" {
			*dst = v
		}
	}

	if v := getenv(envPrefix + "CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sCONCURRENCY: %w", envPrefix, err)
		}
		cfg.Concurrency = n
	}
	if v := getenv(envPrefix + "LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sLOG_LEVEL: %w", envPrefix, err)
		}
	}
	return nil
}

func (c Config) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

func (c Config) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
