package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/olozhika/ArXiv-Trending/internal/corpus"
	"github.com/olozhika/ArXiv-Trending/internal/logger"
	"github.com/olozhika/ArXiv-Trending/pkg/trending"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/config"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/lang"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/metrics"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/render"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/stoplist"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/store"
	"github.com/olozhika/ArXiv-Trending/pkg/trending/store/sqlite"
)

type runFlags struct {
	configPath    string
	input         string
	output        string
	workers       int
	storePath     string
	metricsPath   string
	minWordLength int
	phraseMinFreq int
}

type stopFlags struct {
	configPath string
	suggest    bool
	input      string
}

type topFlags struct {
	storePath string
	runID     string
	month     string
	n         int
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trending",
		Short:         "Monthly word and phrase clouds from dated markdown notes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var rf runFlags
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Aggregate a notes directory and write one cloud per month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrending(cmd, rf)
		},
	}
	runCmd.Flags().StringVarP(&rf.configPath, "config", "c", "", "YAML config file")
	runCmd.Flags().StringVarP(&rf.input, "input", "i", "", "Directory of YYYY-MM-DD-*.md notes")
	runCmd.Flags().StringVarP(&rf.output, "output", "o", "", "Directory for the cloud images")
	runCmd.Flags().IntVar(&rf.workers, "workers", 0, "Parallel document workers")
	runCmd.Flags().StringVar(&rf.storePath, "store", "", "SQLite file for the monthly tables")
	runCmd.Flags().StringVar(&rf.metricsPath, "metrics", "", "Prometheus textfile to write after the run")
	runCmd.Flags().IntVar(&rf.minWordLength, "min-word-length", 0, "Shortest token kept")
	runCmd.Flags().IntVar(&rf.phraseMinFreq, "phrase-min-freq", 0, "Per-document phrase threshold")

	var tf topFlags
	topCmd := &cobra.Command{
		Use:   "top",
		Short: "Print the heaviest terms of a stored month",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTop(cmd, tf)
		},
	}
	topCmd.Flags().StringVar(&tf.storePath, "store", "", "SQLite file written by run (required)")
	topCmd.Flags().StringVar(&tf.runID, "run", "", "Run ID; empty uses the latest run")
	topCmd.Flags().StringVar(&tf.month, "month", "", "Month key YYYY-MM; empty lists the stored months")
	topCmd.Flags().IntVarP(&tf.n, "n", "n", 20, "Number of terms")

	var sf stopFlags
	stopCmd := &cobra.Command{
		Use:   "stopwords",
		Short: "Print the effective stopword list, or suggest additions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStopwords(cmd, sf)
		},
	}
	stopCmd.Flags().StringVarP(&sf.configPath, "config", "c", "", "YAML config file")
	stopCmd.Flags().BoolVar(&sf.suggest, "suggest", false, "Suggest terms spread evenly over all months")
	stopCmd.Flags().StringVarP(&sf.input, "input", "i", "", "Notes directory to analyse with --suggest")

	root.AddCommand(runCmd, topCmd, stopCmd)
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadRunConfig(cmd *cobra.Command, rf runFlags) (*config.Config, error) {
	cfg, err := config.Load(rf.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.InputDir = rf.input
	}
	if flags.Changed("output") {
		cfg.OutputDir = rf.output
	}
	if flags.Changed("workers") {
		cfg.Workers = rf.workers
	}
	if flags.Changed("store") {
		cfg.StorePath = rf.storePath
	}
	if flags.Changed("metrics") {
		cfg.MetricsPath = rf.metricsPath
	}
	if flags.Changed("min-word-length") {
		cfg.MinWordLength = rf.minWordLength
	}
	if flags.Changed("phrase-min-freq") {
		cfg.PhraseMinFreq = rf.phraseMinFreq
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTrending(cmd *cobra.Command, rf runFlags) error {
	ctx := cmd.Context()
	cfg, err := loadRunConfig(cmd, rf)
	if err != nil {
		return err
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.WithComponent("run")

	comp, err := (&config.Loader{Config: cfg}).Load()
	if err != nil {
		return err
	}

	var guard *lang.Guard
	if cfg.Language != "" {
		if guard, err = lang.NewGuard(cfg.Language); err != nil {
			return err
		}
	}

	renderer, err := render.NewCloudRenderer(cfg.OutputDir, render.Options{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		MaxWords: cfg.Render.MaxWords,
		FontPath: cfg.Render.FontPath,
	})
	if err != nil {
		return err
	}

	var st store.Store
	if cfg.StorePath != "" {
		if st, err = sqlite.OpenSQLite(ctx, cfg.StorePath); err != nil {
			return err
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsPath != "" {
		m = metrics.New()
	}

	engine := trending.New(trending.Options{
		Pipeline: comp.Pipeline,
		Filter:   comp.Filter,
		Renderer: renderer,
		Store:    st,
		Metrics:  m,
		Guard:    guard,
		Workers:  cfg.Workers,
		Logger:   log,
		InputDir: cfg.InputDir,
	})
	defer engine.Close()

	src := &corpus.Dir{
		Path:   cfg.InputDir,
		Logger: logger.WithComponent("corpus"),
		OnSkip: func(path string, err error) {
			reason := metrics.ReasonRead
			if errors.Is(err, corpus.ErrBadFilename) {
				reason = metrics.ReasonFilename
			}
			engine.Skip(reason)
		},
	}

	if err := engine.Run(ctx, src); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if _, err := engine.Publish(ctx); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	if m != nil {
		if err := m.WriteTextfile(cfg.MetricsPath); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "done, clouds written to %s\n", renderer.Dir())
	return nil
}

func runTop(cmd *cobra.Command, tf topFlags) error {
	if tf.storePath == "" {
		return errors.New("--store required")
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	st, err := sqlite.OpenSQLite(ctx, tf.storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	var (
		run   store.Run
		found bool
	)
	if tf.runID != "" {
		run, found, err = st.GetRun(ctx, tf.runID)
	} else {
		run, found, err = st.LatestRun(ctx)
	}
	if err != nil {
		return err
	}
	if !found {
		if tf.runID != "" {
			return fmt.Errorf("run %s not found", tf.runID)
		}
		return errors.New("store has no runs")
	}

	if tf.month == "" {
		months, err := st.Months(ctx, run.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run %s (%d documents, %d skipped)\n", run.ID, run.Documents, run.Skipped)
		for _, m := range months {
			fmt.Fprintf(out, "%s\t%d terms\t%d total\t%s\n", m.Month, m.Terms, m.Total, m.Image)
		}
		return nil
	}

	table, found, err := st.MonthTable(ctx, run.ID, tf.month)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("month %s not in run %s", tf.month, run.ID)
	}
	for _, e := range table.Top(tf.n) {
		fmt.Fprintf(out, "%d\t%s\n", e.Count, e.Term)
	}
	return nil
}

func runStopwords(cmd *cobra.Command, sf stopFlags) error {
	out := cmd.OutOrStdout()
	cfg, err := config.Load(sf.configPath)
	if err != nil {
		return err
	}
	if sf.input != "" {
		cfg.InputDir = sf.input
	}
	comp, err := (&config.Loader{Config: cfg}).Load()
	if err != nil {
		return err
	}

	if !sf.suggest {
		for _, w := range comp.Stoplist.All() {
			fmt.Fprintln(out, w)
		}
		return nil
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
	engine := trending.New(trending.Options{
		Pipeline: comp.Pipeline,
		Workers:  cfg.Workers,
		Logger:   logger.WithComponent("stopwords"),
		InputDir: cfg.InputDir,
	})
	src := &corpus.Dir{Path: cfg.InputDir, Logger: logger.WithComponent("corpus")}
	if err := engine.Run(cmd.Context(), src); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	for _, c := range comp.Stoplist.SuggestCandidates(engine.StopwordStats(), stoplist.DefaultThresholds()) {
		fmt.Fprintf(out, "%.3f\t%s\n", c.Score, c.Token)
	}
	return nil
}
