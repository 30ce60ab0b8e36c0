// cmd/accountx/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"accountx/internal/adapters/input"
	"accountx/internal/adapters/output"
	"accountx/internal/core/usecases"
	"accountx/internal/platform/config"
	"accountx/internal/platform/errors"
	"accountx/internal/platform/logx"
	"accountx/internal/platform/ui"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// 1. Config centralizada: defaults, ENV, flags
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: configuration load failed: %v\n", err)
		os.Exit(2)
	}

	if cfg.PrintVersion {
		fmt.Printf("accountx %s (commit %s, built %s)\n", version, commit, date)
		os.Exit(0)
	}

	// 2. Logger compartido
	logger := logx.New()
	if cfg.Quiet {
		logger = logx.NewSilent()
	}

	logger.Info("accountx starting",
		"version", version,
		"input", cfg.InputPath,
		"normalize", cfg.Normalize,
		"max_records", cfg.MaxRecords,
	)

	// 3. Tabla de servicios (embebida + overrides del YAML)
	table, err := config.LoadServiceTable(cfg)
	if err != nil {
		logger.Err(err, "phase", "services-table")
		os.Exit(2)
	}

	// 4. Input
	records, err := input.ReadRecordsFile(cfg.InputPath)
	if err != nil {
		logger.Err(err, "phase", "input")
		os.Exit(1)
	}

	// 5. Presenter de terminal. El JSON va a stdout, así que todo el feedback
	// de UI sale solo cuando el output es un archivo.
	var presenter ui.Presenter = ui.NewNoopPresenter()
	if !cfg.NoSummary && cfg.OutputPath != "-" && cfg.OutputPath != "" {
		presenter = ui.NewPTermPresenter()
	}
	defer presenter.Close()

	presenter.Start(ui.RunInfo{
		Input:      cfg.InputPath,
		Records:    len(records),
		Normalize:  cfg.Normalize,
		MaxRecords: cfg.MaxRecords,
	})

	// 6. Normalización opcional antes de consolidar
	if cfg.Normalize {
		normalizer := usecases.NewNormalizeService(table, logger)
		normalized := normalizer.NormalizeAll(records)
		for i, n := range normalized {
			records[i] = n.Canonical()
			if n.NeedsReview {
				presenter.Warning(fmt.Sprintf("record %s needs review after normalization", n.ID))
			}
		}
	}

	// 7. Consolidación
	svc := usecases.NewConsolidateService(table, cfg.MaxRecords, logger)

	start := time.Now()
	result := svc.Consolidate(records)
	elapsed := time.Since(start)

	for _, w := range result.Warnings {
		presenter.Warning(w.Message)
	}

	// 8. Outputs
	env := output.NewEnvelope(result, len(records))
	if err := output.WriteJSONFile(cfg.OutputPath, env, cfg.Pretty); err != nil {
		logger.Err(err, "phase", "output")
		os.Exit(1)
	}

	if !cfg.NoTable && cfg.OutputPath != "-" && cfg.OutputPath != "" {
		if err := output.WriteTable(os.Stdout, env); err != nil {
			logger.Err(err, "phase", "output")
			os.Exit(1)
		}
	}

	// 9. Resumen
	presenter.Finish(ui.RunStats{
		InputRecords:  len(records),
		OutputRecords: len(result.Accounts),
		MergedCount:   result.MergedCount,
		RemovedCount:  result.RemovedCount,
		FellBack:      result.FellBack,
		Duration:      elapsed,
	})

	logger.Info("accountx finished",
		"elapsed_ms", elapsed.Milliseconds(),
		"accounts", len(result.Accounts),
		"merged", result.MergedCount,
		"removed", result.RemovedCount,
		"warnings", len(result.Warnings),
	)
}
