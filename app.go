package main

import (
	"context"
	"time"

	"exoplanet-explorer/assistant"
	"exoplanet-explorer/batch"
	"exoplanet-explorer/classifier"
	"exoplanet-explorer/config"
	"exoplanet-explorer/database"
	"exoplanet-explorer/explorer"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds the wired services shared by every command.
type app struct {
	db       *gorm.DB
	repo     *database.Repository
	state    *explorer.State
	explorer *explorer.Service
	pipeline *batch.Pipeline
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	db, err := database.Open(cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}
	repo := database.NewRepository(db)

	predictor := newPredictor(cfg, logger)

	var asst explorer.Assistant
	svc, err := assistant.New(ctx, cfg.Assistant, cfg.GetAssistantTimeout(), logger)
	if err != nil {
		logger.Warn("Assistant disabled", zap.Error(err))
	} else if svc != nil {
		asst = svc
	}

	state := explorer.NewState()
	return &app{
		db:       db,
		repo:     repo,
		state:    state,
		explorer: explorer.NewService(state, predictor, repo, asst, logger),
		pipeline: batch.New(predictor, cfg.Batch.GroupSize, logger),
	}, nil
}

func newPredictor(cfg *config.Config, logger *zap.Logger) classifier.Predictor {
	if cfg.Classifier.Mock {
		logger.Info("Using mock classifier", zap.Duration("delay", cfg.GetMockDelay()))
		return classifier.NewMock(cfg.GetMockDelay(), uint64(time.Now().UnixNano()))
	}
	logger.Info("Using prediction service", zap.String("url", cfg.Classifier.BaseURL))
	return classifier.NewClient(cfg.Classifier.BaseURL, cfg.GetClassifierTimeout(), logger)
}

func (a *app) Close() error {
	return database.Close(a.db)
}
