package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/classifier"
	"github.com/mikey/id-bot/internal/config"
	"github.com/mikey/id-bot/internal/utils"
)

// ClassifierFactory creates message classifiers based on configuration
type ClassifierFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClassifier creates a classifier using the configured patterns
func (f *ClassifierFactory) CreateClassifier() (*classifier.Classifier, error) {
	classifierCfg := f.cfg.GetClassifier()
	c, err := classifier.New(
		f.logger.Named("classifier"),
		f.textProcessor,
		classifierCfg.IdentifierPattern,
		classifierCfg.CustomEmojiPattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier: %w", err)
	}
	return c, nil
}
