package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/reqres-qa/reqres-contract-tests/config"
	"github.com/reqres-qa/reqres-contract-tests/framework/harness"
	"github.com/reqres-qa/reqres-contract-tests/schema"
	"github.com/reqres-qa/reqres-contract-tests/usertests"

	"github.com/lmittmann/tint"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %s\n", err)
		os.Exit(1)
	}

	var params commandParams
	if !params.Read(os.Args, cfg) {
		os.Exit(1)
	}
	params.Apply(cfg)

	level := slog.LevelInfo
	if params.debugAll {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.TimeOnly}))

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	registry, err := schema.BuiltinRegistry()
	if err != nil {
		logger.Error("Failed to load response schemas", "error", err)
		os.Exit(1)
	}
	logger.Debug("Loaded response schemas", "names", registry.Names())

	var httpClient harness.Doer
	if cfg.ReplayFile != "" {
		replay, err := harness.LoadReplayFile(cfg.ReplayFile)
		if err != nil {
			logger.Error("Failed to load replay file", "error", err)
			os.Exit(1)
		}
		httpClient = replay.Client()
		logger.Info("Serving responses from recording", "file", cfg.ReplayFile)
	}

	client, err := harness.NewAPIClient(
		harness.APIClientConfig{
			BaseURL:      cfg.BaseURL,
			APIKeyHeader: cfg.APIKeyHeader,
			APIKey:       cfg.APIKey,
		},
		httpClient,
		cfg.Timeout,
	)
	if err != nil {
		logger.Error("Failed to create API client", "error", err)
		os.Exit(1)
	}
	logger.Info("Running test suite", "url", client.BaseURL(), "timeout", cfg.Timeout)

	fmt.Println()
	params.filters.Describe(os.Stdout)

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := usertests.RunTestSuite(
		usertests.SuiteContext{Client: client, Schemas: registry},
		params.filters.AsFilter,
		testLogger,
	)

	fmt.Println()
	PrintResults(os.Stdout, results)
	if results.Ran() == 0 {
		logger.Error("No tests were run; check the -run and -skip patterns")
		os.Exit(1)
	}
	if !results.OK() {
		fmt.Println()
		fmt.Println("To rerun only the failed tests:")
		fmt.Printf("  %s\n", params.RerunCommand(os.Args[0], results.Failures))
		os.Exit(1)
	}
}
