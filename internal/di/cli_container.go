package di

import (
	"flag"
	"os"
	"strings"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/id-bot/internal/adapters/console"
	"github.com/mikey/id-bot/internal/classifier"
	"github.com/mikey/id-bot/internal/config"
	"github.com/mikey/id-bot/internal/factory"
	"github.com/mikey/id-bot/internal/logging"
	"github.com/mikey/id-bot/internal/utils"
)

// CLIFlags contains all command line flags for the classify CLI
type CLIFlags struct {
	// Classifier flags
	IdentifierPattern  string
	CustomEmojiPattern string
	Attachments        string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Classifier flags
	flag.StringVar(&flags.IdentifierPattern, "id-pattern", "", "Pattern matching ID tags (built-in pattern if empty)")
	flag.StringVar(&flags.CustomEmojiPattern, "custom-emoji-pattern", "", "Pattern matching custom emoji (built-in pattern if empty)")
	flag.StringVar(&flags.Attachments, "attachments", "", "Comma-separated media types of the message's attachments")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input message file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// AttachmentMediaTypes splits the attachments flag into media types
func (f *CLIFlags) AttachmentMediaTypes() []string {
	var mediaTypes []string
	for _, mediaType := range strings.Split(f.Attachments, ",") {
		if mediaType = strings.TrimSpace(mediaType); mediaType != "" {
			mediaTypes = append(mediaTypes, mediaType)
		}
	}
	return mediaTypes
}

// BuildCLIContainer creates and configures a dependency injection container for the classify CLI
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.NewFromFile(flags.ConfigFile)
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewChatFactory); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register classifier
	if err := container.Provide(func(f *factory.ClassifierFactory) (*classifier.Classifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register console front end
	if err := container.Provide(func(
		c *classifier.Classifier,
		textProcessor *utils.TextProcessor,
		f *factory.ChatFactory,
		logger *zap.Logger,
		flags *CLIFlags,
	) *console.Classifier {
		return console.NewClassifier(c, textProcessor, f.CreateReminders(), logger, os.Stdout, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("classifier.identifier_pattern", flags.IdentifierPattern)
	v.Set("classifier.custom_emoji_pattern", flags.CustomEmojiPattern)
	if flags.Verbose {
		v.Set("logging.level", "debug")
	}

	return config.NewFromViper(v)
}
