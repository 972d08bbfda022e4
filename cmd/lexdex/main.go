package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lexdex/internal/config"
	"github.com/kailas-cloud/lexdex/internal/corpus"
	"github.com/kailas-cloud/lexdex/internal/index"
	logpkg "github.com/kailas-cloud/lexdex/internal/logger"
	"github.com/kailas-cloud/lexdex/internal/metrics"
	chiTransport "github.com/kailas-cloud/lexdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/lexdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lexdex/internal/usecase/search"
	"github.com/kailas-cloud/lexdex/internal/vectorizer"
	"github.com/kailas-cloud/lexdex/internal/version"
)

func main() {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lexdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("corpus_dir", cfg.Corpus.Dir),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// All corpus I/O happens here; the query path never touches disk.
	loader := corpus.NewLoader(
		cfg.Corpus.Dir,
		*cfg.Corpus.BuildGlobal,
		vectorizerOptions(cfg),
		logger,
	)
	idx, err := loader.Load()
	if err != nil {
		logger.Fatal("Failed to load corpus", zap.Error(err))
	}
	logger.Info("Corpus loaded",
		zap.Int("collections", idx.Len()),
		zap.Int("records", idx.Records()),
	)

	queryClassifier, err := corpus.LoadKeywords(cfg.Corpus.KeywordsFile)
	if err != nil {
		logger.Fatal("Failed to load keyword map", zap.Error(err))
	}

	// The handle is the only shared state; reload swaps a whole new index in.
	handle := index.NewHandle(idx)
	go reloadOnSignal(handle, loader, logger)

	searchSvc := searchuc.New(handle, queryClassifier)
	healthSvc := healthuc.New(handle)

	server := chiTransport.NewServer(searchSvc, healthSvc, chiTransport.Tunables{
		Threshold:        cfg.Search.ConfidenceThreshold,
		Floor:            cfg.Search.InclusionFloor,
		BoostWeight:      cfg.Search.BoostWeight(),
		MaxSupplementary: cfg.Search.MaxSupplementary,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func vectorizerOptions(cfg config.Config) vectorizer.Options {
	return vectorizer.Options{
		NGramMax:    cfg.Corpus.Vectorizer.NGramMax,
		MinDF:       cfg.Corpus.Vectorizer.MinDF,
		MaxDFRatio:  cfg.Corpus.Vectorizer.MaxDFRatio,
		MaxFeatures: cfg.Corpus.Vectorizer.MaxFeatures,
	}
}

// reloadOnSignal rebuilds the corpus on SIGHUP and atomically swaps the new
// index in. In-flight requests keep reading the old index; a failed reload
// leaves the served index untouched.
func reloadOnSignal(handle *index.Handle, loader *corpus.Loader, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for range hup {
		logger.Info("Reloading corpus on SIGHUP")
		idx, err := loader.Load()
		if err != nil {
			logger.Error("Corpus reload failed, keeping current index", zap.Error(err))
			continue
		}
		handle.Swap(idx)
		logger.Info("Corpus reloaded",
			zap.Int("collections", idx.Len()),
			zap.Int("records", idx.Records()),
		)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request.
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
