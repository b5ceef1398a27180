package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/smartcoach/backend/internal/api"
	"github.com/smartcoach/backend/internal/config"
	"github.com/smartcoach/backend/internal/corpus"
	"github.com/smartcoach/backend/internal/engine"
	"github.com/smartcoach/backend/internal/search"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "smartcoach-ai")

	entry.Info("Starting SmartCoach AI Service")

	// 1. Config (.env is optional)
	if err := godotenv.Load(); err == nil {
		entry.Info("Loaded environment from .env")
	}
	cfg := config.Load()

	// 2. Knowledge Base
	documents, err := corpus.Load(cfg.Corpus.DataDir)
	if err != nil {
		entry.Fatalf("Failed to load knowledge base: %v", err)
	}
	entry.Infof("Knowledge base loaded: %d documents", len(documents))

	// 3. Search Index. Built once before serving; a build failure is fatal,
	// no degraded index is ever exposed.
	index, err := search.BuildIndex(documents)
	if err != nil {
		entry.Fatalf("Failed to build search index: %v", err)
	}
	entry.Infof("Search index built: %d terms", index.VocabularySize())

	// 4. Engine
	eng := engine.NewEngine(cfg, entry, index)
	entry.Infof("LLM provider: %s", eng.LLM.Name())

	// 5. API Server
	server := api.NewServer(eng, entry)
	if err := server.Start(":" + cfg.Server.Port); err != nil {
		entry.Fatal(err)
	}
}
