package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"saturn/internal/broker"
	"saturn/internal/config"
	"saturn/internal/job"
	"saturn/internal/loader"
	"saturn/internal/results"
	"saturn/internal/setup"
	"saturn/internal/store"
	"saturn/internal/util"
)

func main() {
	cfgPath := "config/saturn.yaml"
	if p := os.Getenv("SATURN_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("run setup aborted", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	timeout, err := cfg.Algorithm.Timeout()
	if err != nil {
		return err
	}

	ld := loader.New(loader.NewPluginResolver(), logger)
	algo, err := ld.Instantiate(
		loader.Reference(cfg.Algorithm.Artifact),
		loader.SelectName(cfg.Algorithm.TypeName),
		timeout,
	)
	if err != nil {
		// Surface the loader diagnostic verbatim; the usual fix is on the
		// artifact side.
		return fmt.Errorf("%w (try rebuilding the artifact)", err)
	}

	runID := cfg.Run.ID
	if runID == "" {
		runID = uuid.NewString()
	}

	limits := cfg.Limits.RunLimits()

	var descriptor job.Job
	var brokerageConfigurator setup.BrokerageConfigurator = broker.NewPaperConfigurator(limits)
	switch job.Mode(cfg.Run.Mode) {
	case job.ModeLive:
		descriptor = job.NewLiveJob(runID, "")
		if !cfg.Run.PaperMode && cfg.Alpaca.APIKey != "" {
			brokerageConfigurator = broker.NewAlpacaConfigurator(
				limits, cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.BaseURL)
		}
	case job.ModeBacktest, "":
		descriptor = job.NewBacktestJob(runID, "")
	default:
		return fmt.Errorf("unknown run mode %q", cfg.Run.Mode)
	}

	configurator := setup.NewConfigurator(
		limits,
		setup.NewFeedEnsurer(),
		brokerageConfigurator,
		logger,
	)

	ok, errs, brokerage := configurator.Configure(algo, descriptor)

	record := &store.RunRecord{
		RunID:           runID,
		Mode:            string(descriptor.Mode()),
		Algorithm:       cfg.Algorithm.TypeName,
		StartingCapital: configurator.StartingCapital,
		Success:         ok,
		Errors:          errs.Messages(),
		CreatedAt:       time.Now(),
	}
	if bt, isBacktest := descriptor.(*job.BacktestJob); isBacktest {
		record.PeriodStart = bt.PeriodStart
		record.PeriodFinish = bt.PeriodFinish
	}

	if cfg.Storage.SQLitePath != "" {
		runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
		if err != nil {
			return err
		}
		defer runStore.Close()
		if err := runStore.SaveRun(context.Background(), record); err != nil {
			return err
		}
	}

	sink := results.NewLogSink(logger)
	if !ok {
		for _, msg := range errs.Messages() {
			sink.RuntimeError(msg, "")
		}
		configurator.OnBrokerageError(sink, brokerage)
		return fmt.Errorf("setup failed with %d error(s)", errs.Len())
	}

	sink.Message(fmt.Sprintf("algorithm %s configured for %s run %s",
		cfg.Algorithm.TypeName, descriptor.Mode(), runID))
	logger.Info("job descriptor ready",
		"run", runID,
		"mode", string(descriptor.Mode()),
		"brokerage", brokerage.Name(),
		"starting_capital", configurator.StartingCapital,
		"starting_date", configurator.StartingDate)
	return nil
}
