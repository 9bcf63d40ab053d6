package app

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"upstreamnews/internal/adapter/fetcher"
	"upstreamnews/internal/adapter/parser"
	"upstreamnews/internal/config"
	"upstreamnews/internal/keywords"
	"upstreamnews/internal/logger"
	server "upstreamnews/internal/transport/http"
	"upstreamnews/internal/usecase"
	"upstreamnews/internal/worker"
	"upstreamnews/storage"
)

// App представляет основное приложение Upstream News Analyzer.
// Координирует работу всех компонентов: HTTP-сервера, воркера обновления
// ленты, хранилища результатов и системы логирования.
// Обеспечивает graceful startup и shutdown.
type App struct {
	config   *config.Config
	logger   *slog.Logger
	server   *http.Server
	worker   *worker.Worker
	storage  *storage.MemoryStoryDB
	stopChan chan os.Signal
	wg       sync.WaitGroup
}

// New создает и инициализирует новый экземпляр приложения.
// Настраивает логгер, наполняет вокабуляр по умолчанию и собирает
// все зависимости конвейера анализа.
func New(cfg *config.Config) (*App, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	slog.SetDefault(appLogger)

	keywordStore := keywords.NewStore()

	storyDB := storage.NewMemoryStoryDB(cfg.App, appLogger)

	httpFetcher := fetcher.NewHTTPFetcher(appLogger)

	xmlParser := parser.NewXMLParser(appLogger)

	feedAnalyzer := usecase.NewFeedAnalysisUseCase(
		httpFetcher,
		xmlParser,
		storyDB,
		keywordStore,
		appLogger,
		cfg.App.FeedURL,
		cfg.App.DefaultStoryLimit,
	)

	storyGetter := usecase.NewStoryGetterUseCase(storyDB)

	handler := server.NewHandler(appLogger, storyGetter, feedAnalyzer, keywordStore, cfg.App.MaxStoryLimit)

	router := server.NewServer(appLogger, handler)

	refreshWorker := worker.New(feedAnalyzer, cfg.App.RefreshSchedule, appLogger)

	httpServer := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	}
	return &App{
		config:   cfg,
		logger:   appLogger,
		server:   httpServer,
		worker:   refreshWorker,
		storage:  storyDB,
		stopChan: make(chan os.Signal, 1),
	}, nil
}

// Run запускает приложение: воркер обновления ленты и HTTP-сервер.
// Метод блокируется до получения сигнала завершения.
func (a *App) Run() error {
	a.logger.Info("Starting Upstream News Analyzer",
		slog.String("component", "app"),
		slog.String("feed", a.config.App.FeedName),
		slog.String("feed_url", a.config.App.FeedURL),
		slog.String("refresh_schedule", a.worker.GetSchedule()),
	)
	if err := a.worker.Start(); err != nil {
		return fmt.Errorf("failed to start worker: %w", err)
	}
	listener, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	defer listener.Close()
	a.logger.Info("HTTP server ready",
		slog.String("component", "server"),
		slog.String("address", listener.Addr().String()),
	)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			a.logger.Error("HTTP server failed", slog.Any("error", err))
		}
	}()
	signal.Notify(a.stopChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-a.stopChan
	a.logger.Info("Shutdown signal received",
		slog.String("component", "app"),
		slog.String("signal", sig.String()),
	)
	return a.Shutdown()
}

// Shutdown выполняет graceful shutdown приложения.
// Останавливает воркер, завершает HTTP-сервер с таймаутом 10 секунд,
// закрывает хранилище и ожидает завершения всех горутин.
func (a *App) Shutdown() error {
	a.logger.Info("Starting graceful shutdown")
	if a.worker != nil {
		a.worker.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP server shutdown failed", slog.Any("error", err))
	}
	if a.storage != nil {
		a.storage.Close()
	}
	a.wg.Wait()
	a.logger.Info("Application stopped gracefully")
	return nil
}
