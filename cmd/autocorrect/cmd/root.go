package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"autocorrect/internal/config"
	"autocorrect/internal/corpus"
	"autocorrect/internal/corrector"
	"autocorrect/internal/service"
	"autocorrect/internal/suggestcache"
	"autocorrect/pkg/options"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "autocorrect",
	Short:        "Frequency ranked spelling correction",
	Long:         "Train a vocabulary from a text corpus and suggest the most likely words within two edits of a misspelling.",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(fetchCmd)
}

// setup loads configuration and builds the logger. Interactive commands log to
// stderr so their stdout stays clean.
func setup(interactive bool) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	if interactive {
		cfg.Log.OutputPaths = []string{"stderr"}
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger, nil
}

func newLogger(lc config.LogConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	zc.Level.SetLevel(level)
	if len(lc.OutputPaths) > 0 {
		zc.OutputPaths = lc.OutputPaths
	}
	return zc.Build()
}

// newSpeller wires the corrector and, when Redis is configured and reachable,
// the suggestion cache. The returned func releases the cache connection.
func newSpeller(cfg *config.Config, logger *zap.Logger) (*service.Speller, func()) {
	c := corrector.New(
		options.WithTopK(cfg.App.TopK),
		options.WithMaxWordLength(cfg.App.MaxWordLength),
	)
	if cfg.Redis.Addr == "" {
		return service.NewSpeller(c, nil, logger), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	cache := suggestcache.New(client, cfg.Redis.TTL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis unavailable, suggestion cache disabled",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		client.Close()
		return service.NewSpeller(c, nil, logger), func() {}
	}
	logger.Info("Suggestion cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	return service.NewSpeller(c, cache, logger), func() { cache.Close() }
}

// corpusPath picks the corpus from args, then config, then the default file.
func corpusPath(cfg *config.Config, args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if cfg.App.CorpusPath != "" {
		return cfg.App.CorpusPath
	}
	return corpus.DefaultCorpusFile
}
