package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"autocorrect/internal/controller"
	"autocorrect/internal/handler"
	"autocorrect/internal/service"
	"autocorrect/internal/watch"
)

var (
	serveAddr   string
	serveCorpus string
	serveWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP correction server",
	Long:  "Serve /api/v1/upload, /api/v1/correct and /api/v1/stats. If a corpus is configured the server trains on it at startup.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides app.addr)")
	serveCmd.Flags().StringVar(&serveCorpus, "corpus", "", "Corpus file to train on at startup (overrides app.corpus_path)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Retrain when the corpus file changes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(false)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serveAddr != "" {
		cfg.App.Addr = serveAddr
	}
	if serveCorpus != "" {
		cfg.App.CorpusPath = serveCorpus
	}
	if serveWatch {
		cfg.App.WatchCorpus = true
	}
	logger.Info("Configuration loaded", zap.Any("app", cfg.App))

	speller, closeCache := newSpeller(cfg, logger)
	defer closeCache()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if path := cfg.App.CorpusPath; path != "" {
		if _, err := speller.TrainFile(path); err != nil {
			logger.Warn("Initial training failed, waiting for upload", zap.String("path", path), zap.Error(err))
		}
	}
	if cfg.App.WatchCorpus {
		startCorpusWatch(ctx, cfg.App.CorpusPath, speller, logger)
	}

	router := handler.SetupRouter(controller.NewSpellerController(speller, cfg.App.MaxUploadBytes, logger), logger)
	srv := &http.Server{Addr: cfg.App.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.String("addr", cfg.App.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// startCorpusWatch retrains speller whenever the corpus at path changes. It
// reports whether a watcher was started.
func startCorpusWatch(ctx context.Context, path string, speller *service.Speller, logger *zap.Logger) bool {
	if path == "" {
		logger.Warn("Corpus watch requested but no corpus path configured, not watching")
		return false
	}
	w, err := watch.New(path, watch.DefaultDebounce, func(p string) {
		if _, err := speller.TrainFile(p); err != nil {
			logger.Warn("Retraining failed, keeping current model", zap.String("path", p), zap.Error(err))
		}
	}, logger)
	if err != nil {
		logger.Warn("Corpus watch disabled", zap.String("path", path), zap.Error(err))
		return false
	}
	go w.Run(ctx)
	return true
}
