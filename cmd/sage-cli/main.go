package main

import (
	"context"
	"flag"
	"os"

	"sage-cli/internal/agent"
	"sage-cli/internal/agent/openai"
	"sage-cli/internal/config"
	"sage-cli/internal/execution"
	"sage-cli/internal/history"
	"sage-cli/internal/logger"
	"sage-cli/internal/prompts"
	"sage-cli/internal/repl"
	"sage-cli/internal/search"
	"sage-cli/internal/tools"

	"github.com/google/uuid"
)

var log = logger.Named("main")

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "path to config file (default ~/.sage/config.toml)")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	sessionID := uuid.NewString()
	sessionLog := log.WithField("session", sessionID)
	sessionLog.WithField("model", cfg.Model).Info("session starting")

	client := openai.New(openai.Options{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.URL,
		Model:   cfg.Model,
	})
	registry := tools.NewRegistry(
		tools.NewWebSearch(search.NewTavily(cfg.SearchKey)),
	)
	loop := execution.NewLoop(execution.Options{
		Client:     client,
		Registry:   registry,
		Transcript: agent.NewTranscript(prompts.System),
		Log:        logger.Named("loop").WithField("session", sessionID),
	})

	store, err := history.NewDefault()
	if err != nil {
		sessionLog.Warnf("input history disabled: %v", err)
		store = nil
	}

	session := repl.NewSession(repl.Options{
		Runner:  loop,
		History: store,
		Log:     logger.Named("repl").WithField("session", sessionID),
	})
	if err := session.Run(context.Background()); err != nil {
		sessionLog.Errorf("session ended with error: %v", err)
		os.Exit(1)
	}
	sessionLog.Info("session ended")
}
