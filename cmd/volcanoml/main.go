// Command volcanoml runs the full analysis end to end: fetch the
// volcano table, derive the three-class label, evaluate a random forest
// over bootstrap resamples, and print the metric, confusion, and
// precision tables along with the importance and map plots.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/volcanolab/volcanoml/config"
	"github.com/volcanolab/volcanoml/core/model"
	"github.com/volcanolab/volcanoml/dataset"
	"github.com/volcanolab/volcanoml/ensemble"
	"github.com/volcanolab/volcanoml/evaluate"
	"github.com/volcanolab/volcanoml/pkg/errors"
	"github.com/volcanolab/volcanoml/pkg/log"
	"github.com/volcanolab/volcanoml/preprocessing"
	"github.com/volcanolab/volcanoml/report"
	"github.com/volcanolab/volcanoml/resample"
)

func main() {
	configPath := flag.String("config", "", "path to YAML run configuration (empty for defaults)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "volcanoml: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	provider := log.NewZerologProvider(log.ToLevel(cfg.LogLevel))
	logger := provider.GetLoggerWithName("volcanoml")

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		logger.Info("seeding from clock", "seed", seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("fetching dataset", "url", cfg.SourceURL)
	table, err := dataset.Fetch(ctx, cfg.SourceURL)
	if err != nil {
		// DataUnavailable and SchemaMismatch are fatal before any
		// resampling begins.
		logger.Error("load failed", err)
		return err
	}

	counts := table.ClassCounts()
	logger.Info("dataset loaded",
		log.SamplesKey, table.Len(),
		"stratovolcano", counts[dataset.Stratovolcano],
		"shield", counts[dataset.Shield],
		"other", counts[dataset.Other],
	)

	pipelineCfg := preprocessing.Config{
		RareThreshold:  cfg.RareThreshold,
		SMOTENeighbors: cfg.SMOTENeighbors,
		Oversample:     true,
	}
	forestOpts := func(foldSeed uint64) []ensemble.Option {
		return []ensemble.Option{
			ensemble.WithTrees(cfg.Trees),
			ensemble.WithMaxDepth(cfg.MaxDepth),
			ensemble.WithSeed(foldSeed),
		}
	}

	runner := evaluate.NewRunner(
		resample.NewBootstrap(cfg.Resamples, seed),
		func(foldID int) *preprocessing.Pipeline {
			c := pipelineCfg
			c.Seed = seed + uint64(foldID)
			return preprocessing.NewPipeline(c)
		},
		func(foldID int) model.Classifier {
			return ensemble.NewRandomForest(forestOpts(seed + uint64(foldID))...)
		},
		provider.GetLoggerWithName("evaluate"),
	)

	start := time.Now()
	result, err := runner.Run(ctx, table)
	if err != nil {
		return err
	}
	logger.Info("evaluation finished",
		"folds", len(result.Folds),
		"failed", len(result.Failed()),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	imps, err := printTables(result, table, cfg, seed)
	if err != nil {
		return err
	}
	return savePlots(result, table, imps, cfg, logger)
}

func printTables(result *evaluate.Result, table *dataset.Table, cfg config.Config, seed uint64) ([]ensemble.Importance, error) {
	fmt.Println("== Aggregate metrics ==")
	if err := report.WriteSummaryTable(os.Stdout, report.Summarize(result)); err != nil {
		return nil, err
	}

	cm, err := report.PooledConfusion(result)
	if err != nil {
		return nil, err
	}
	fmt.Println("\n== Pooled confusion matrix ==")
	if err := report.WriteConfusionTable(os.Stdout, cm); err != nil {
		return nil, err
	}

	precision, err := report.PrecisionByFold(result)
	if err != nil {
		return nil, err
	}
	fmt.Println("\n== Per-resample precision ==")
	if err := report.WritePrecisionTable(os.Stdout, precision); err != nil {
		return nil, err
	}

	imps, err := report.RankImportance(table, report.ImportanceConfig{
		Pipeline: preprocessing.Config{
			RareThreshold:  cfg.RareThreshold,
			SMOTENeighbors: cfg.SMOTENeighbors,
			Seed:           seed,
			Oversample:     true,
		},
		Options: []ensemble.Option{
			ensemble.WithTrees(cfg.Trees),
			ensemble.WithMaxDepth(cfg.MaxDepth),
			ensemble.WithSeed(seed),
		},
		Repeats: cfg.ImportanceRepeats,
		Seed:    seed,
	})
	if err != nil {
		return nil, err
	}
	fmt.Println("\n== Permutation importance ==")
	if err := report.WriteImportanceTable(os.Stdout, imps); err != nil {
		return nil, err
	}
	return imps, nil
}

func savePlots(result *evaluate.Result, table *dataset.Table, imps []ensemble.Importance, cfg config.Config, logger log.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	importance := filepath.Join(cfg.OutputDir, "importance.png")
	if err := report.SaveImportancePlot(imps, importance); err != nil {
		return err
	}

	classMap := filepath.Join(cfg.OutputDir, "class_map.png")
	if err := report.SaveClassMap(table, classMap); err != nil {
		return err
	}

	hexMap := filepath.Join(cfg.OutputDir, "accuracy_hex.png")
	if err := report.SaveAccuracyHexMap(result.Predictions, table, cfg.HexSize, hexMap); err != nil {
		return err
	}

	logger.Info("plots written",
		"importance", importance,
		"class_map", classMap,
		"accuracy_hex", hexMap,
	)
	return nil
}
