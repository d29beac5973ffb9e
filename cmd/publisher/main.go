package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"blocgdp/internal/config"
	"blocgdp/internal/dataset"
	"blocgdp/internal/model"
	"blocgdp/internal/store/sqlite"
	"blocgdp/internal/summary"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "build":
		build(os.Args[2:])
	case "merge":
		merge(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: publisher build|merge [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "build options:")
	fmt.Fprintln(os.Stderr, "  -config   path to yaml config")
	fmt.Fprintln(os.Stderr, "  -db       sqlite database path (overrides config)")
	fmt.Fprintln(os.Stderr, "  -in       decade rows csv, used when no database is present")
	fmt.Fprintln(os.Stderr, "  -out      summary output csv (overrides config)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "merge options:")
	fmt.Fprintln(os.Stderr, "  -config   path to yaml config")
	fmt.Fprintln(os.Stderr, "  -base     earlier wide dataset csv (required)")
	fmt.Fprintln(os.Stderr, "  -overlay  summary csv to splice in (overrides config)")
	fmt.Fprintln(os.Stderr, "  -out      merged output csv (defaults to the base path)")
}

func build(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	configPath := fs.String("config", "", "path to yaml config (optional)")
	dbPath := fs.String("db", "", "sqlite database path (overrides config)")
	in := fs.String("in", "", "decade rows csv (overrides config)")
	out := fs.String("out", "", "summary output csv (overrides config)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "publisher build failed:", err)
		os.Exit(1)
	}
	if flagSet(fs, "db") {
		cfg.Store.Path = *dbPath
	}
	if *in != "" {
		cfg.Outputs.Rows = *in
	}
	if *out != "" {
		cfg.Outputs.Summary = *out
	}

	log := newLogger(cfg.Logging.Level)
	if err := runBuild(cfg, log); err != nil {
		log.Error().Err(err).Msg("publisher build failed")
		os.Exit(1)
	}
}

func runBuild(cfg *config.Config, log zerolog.Logger) error {
	rows, source, err := loadRows(cfg.Store.Path, cfg.Outputs.Rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return errors.New("no decade rows to summarize")
	}

	table := summary.Pivot(rows, summary.Options{
		Order:    cfg.Summary.Order,
		MinShare: cfg.Summary.MinShare,
		Other:    cfg.Summary.Other,
	})

	if err := ensureDir(cfg.Outputs.Summary); err != nil {
		return err
	}
	if err := summary.WriteTable(cfg.Outputs.Summary, table); err != nil {
		return err
	}

	log.Info().
		Str("source", source).
		Int("rows", len(rows)).
		Int("blocs", len(table.Blocs)).
		Int("decades", len(table.Years)).
		Str("out", cfg.Outputs.Summary).
		Msg("publisher build complete")
	return nil
}

// loadRows prefers the sqlite store and falls back to the decade rows CSV
// when the database is absent or empty.
func loadRows(dbPath, csvPath string) ([]model.DecadeRow, string, error) {
	if strings.TrimSpace(dbPath) != "" {
		if _, err := os.Stat(dbPath); err == nil {
			st, err := sqlite.New(dbPath)
			if err != nil {
				return nil, "", err
			}
			defer st.Close()
			rows, err := st.ListDecadeRows(context.Background())
			if err != nil {
				return nil, "", err
			}
			if len(rows) > 0 {
				return rows, dbPath, nil
			}
		}
	}
	rows, err := dataset.ReadDecadeRows(csvPath)
	if err != nil {
		return nil, "", err
	}
	return rows, csvPath, nil
}

func merge(args []string) {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	configPath := fs.String("config", "", "path to yaml config (optional)")
	basePath := fs.String("base", "", "earlier wide dataset csv (required)")
	overlayPath := fs.String("overlay", "", "summary csv to splice in (overrides config)")
	out := fs.String("out", "", "merged output csv (defaults to the base path)")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "publisher merge failed:", err)
		os.Exit(1)
	}
	if *overlayPath != "" {
		cfg.Outputs.Summary = *overlayPath
	}

	log := newLogger(cfg.Logging.Level)
	if err := runMerge(*basePath, cfg.Outputs.Summary, *out, log); err != nil {
		log.Error().Err(err).Msg("publisher merge failed")
		os.Exit(1)
	}
}

func runMerge(basePath, overlayPath, outPath string, log zerolog.Logger) error {
	if strings.TrimSpace(basePath) == "" {
		return errors.New("base dataset path is required")
	}
	if outPath == "" {
		outPath = basePath
	}

	base, err := summary.ReadTable(basePath)
	if err != nil {
		return err
	}
	overlay, err := summary.ReadTable(overlayPath)
	if err != nil {
		return err
	}

	merged := summary.Merge(base, overlay)
	if err := ensureDir(outPath); err != nil {
		return err
	}
	if err := summary.WriteTable(outPath, merged); err != nil {
		return err
	}

	overlap := 0
	for _, year := range base.Years {
		if _, ok := overlay.Cells[year]; ok {
			overlap++
		}
	}
	log.Info().
		Int("years", len(merged.Years)).
		Int("overlap_years", overlap).
		Str("out", outPath).
		Msg("publisher merge complete")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Default()
	}
	return config.LoadWithEnv(path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
