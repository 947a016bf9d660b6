package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	Root         string   `toml:"root"`
	ExcludeDirs  []string `toml:"exclude_dirs"`
	ExcludeGlobs []string `toml:"exclude_globs"`
	Extensions   []string `toml:"extensions"`
	ReportPath   string   `toml:"report_path"`
	SummaryPath  string   `toml:"summary_path"`
	SampleCount  int      `toml:"sample_count"`
	DBPath       string   `toml:"db_path"`
}

// Default returns the settings the reporting scripts have always used.
func Default(home string) *Config {
	return &Config{
		Root:        ".",
		ExcludeDirs: []string{"node_modules", ".git", "dist"},
		Extensions:  []string{".py", ".ts", ".tsx", ".js", ".jsx"},
		ReportPath:  filepath.Join("reports", "language_stats.json"),
		SummaryPath: filepath.Join("scripts", "sample_summary.json"),
		SampleCount: 180,
		DBPath:      filepath.Join(home, ".config", "mstats", "mstats.db"),
	}
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath(home string) string {
	return filepath.Join(home, ".config", "mstats", "config.toml")
}

// Load builds the config from defaults, the toml file at cfgPath (or the
// default location when empty), a .env file in the working directory and
// MSTATS_* environment variables, in that order.
func Load(cfgPath string) (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	cfg := Default(home)

	explicit := cfgPath != ""
	if !explicit {
		cfgPath = DefaultPath(home)
	}
	cfgPath = expandHome(cfgPath, home)
	if _, err := os.Stat(cfgPath); err == nil {
		if _, err := toml.DecodeFile(cfgPath, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfgPath, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", cfgPath, err)
	}

	// a missing .env is fine
	_ = godotenv.Load()
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.Root = expandHome(cfg.Root, home)
	cfg.ReportPath = expandHome(cfg.ReportPath, home)
	cfg.SummaryPath = expandHome(cfg.SummaryPath, home)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	cfg.Extensions = normalizeExtensions(cfg.Extensions)

	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup("MSTATS_ROOT"); ok && v != "" {
		cfg.Root = v
	}
	if v, ok := lookup("MSTATS_EXCLUDE_DIRS"); ok {
		cfg.ExcludeDirs = splitList(v)
	}
	if v, ok := lookup("MSTATS_EXCLUDE_GLOBS"); ok {
		cfg.ExcludeGlobs = splitList(v)
	}
	if v, ok := lookup("MSTATS_EXTENSIONS"); ok {
		cfg.Extensions = splitList(v)
	}
	if v, ok := lookup("MSTATS_REPORT_PATH"); ok && v != "" {
		cfg.ReportPath = v
	}
	if v, ok := lookup("MSTATS_SUMMARY_PATH"); ok && v != "" {
		cfg.SummaryPath = v
	}
	if v, ok := lookup("MSTATS_SAMPLE_COUNT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MSTATS_SAMPLE_COUNT: %w", err)
		}
		cfg.SampleCount = n
	}
	if v, ok := lookup("MSTATS_DB_PATH"); ok && v != "" {
		cfg.DBPath = v
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalizeExtensions makes sure every extension carries its leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
