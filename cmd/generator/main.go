package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"blocgdp/internal/blocs"
	"blocgdp/internal/config"
	"blocgdp/internal/dataset"
	"blocgdp/internal/pipeline"
	"blocgdp/internal/series"
	"blocgdp/internal/store"
	"blocgdp/internal/store/sqlite"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		run(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func run(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", "", "path to yaml config (optional)")
	periods := fs.String("periods", "", "bloc periods csv (overrides config)")
	gdpPath := fs.String("gdp", "", "gdp series csv (overrides config)")
	out := fs.String("out", "", "decade rows output csv (overrides config)")
	dbPath := fs.String("db", "", "sqlite database path (overrides config; set empty to disable persistence)")
	verbose := fs.Bool("verbose", false, "debug logging")
	fs.Parse(args)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generator run failed:", err)
		os.Exit(1)
	}
	if *periods != "" {
		cfg.Inputs.Periods = *periods
	}
	if *gdpPath != "" {
		cfg.Inputs.GDP = *gdpPath
	}
	if *out != "" {
		cfg.Outputs.Rows = *out
	}
	if flagSet(fs, "db") {
		cfg.Store.Path = *dbPath
	}

	log := newLogger(cfg.Logging.Level, *verbose)
	if err := runGenerator(cfg, log); err != nil {
		log.Error().Err(err).Msg("generator run failed")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: generator run [options]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options:")
	fmt.Fprintln(os.Stderr, "  -config    path to yaml config")
	fmt.Fprintln(os.Stderr, "  -periods   bloc periods csv (overrides config)")
	fmt.Fprintln(os.Stderr, "  -gdp       gdp series csv (overrides config)")
	fmt.Fprintln(os.Stderr, "  -out       decade rows output csv (overrides config)")
	fmt.Fprintln(os.Stderr, "  -db        sqlite database path (empty disables persistence)")
	fmt.Fprintln(os.Stderr, "  -verbose   debug logging")
}

func runGenerator(cfg *config.Config, log zerolog.Logger) error {
	assignments, skippedAssignments, err := dataset.LoadAssignments(cfg.Inputs.Periods)
	if err != nil {
		return err
	}
	seriesData, err := dataset.LoadSeries(cfg.Inputs.GDP)
	if err != nil {
		return err
	}
	log.Info().
		Int("assignments", len(assignments)).
		Int("assignments_skipped", skippedAssignments).
		Int("series_countries", len(seriesData.Points)).
		Int("series_skipped", seriesData.Skipped).
		Msg("inputs loaded")

	blocStore := blocs.NewStore()
	for _, assignment := range assignments {
		blocStore.Add(assignment)
	}
	seriesStore := series.NewStore()
	for code, points := range seriesData.Points {
		for _, point := range points {
			seriesStore.Add(code, point)
		}
	}

	rows := pipeline.NewGenerator(seriesStore, blocStore, seriesData.Names, log).Build()
	pipeline.Normalize(rows)

	if err := ensureDir(cfg.Outputs.Rows); err != nil {
		return err
	}
	if err := dataset.WriteDecadeRows(cfg.Outputs.Rows, rows); err != nil {
		return err
	}

	st, err := openStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.UpsertDecadeRows(context.Background(), rows); err != nil {
		return err
	}

	log.Info().
		Int("rows", len(rows)).
		Int("countries", len(blocStore.Countries())).
		Int("decades", len(pipeline.DecadeGrid())).
		Str("out", cfg.Outputs.Rows).
		Msg("generator run complete")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if strings.TrimSpace(path) == "" {
		return config.Default()
	}
	return config.LoadWithEnv(path)
}

func openStore(path string) (store.Store, error) {
	if strings.TrimSpace(path) == "" {
		return &store.NopStore{}, nil
	}
	return sqlite.New(path)
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

func newLogger(level string, verbose bool) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	if verbose {
		parsed = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}
