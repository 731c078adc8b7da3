package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"polyglot-tts/internal/api"
	"polyglot-tts/internal/bot"
	"polyglot-tts/internal/config"
	"polyglot-tts/internal/metrics"
	"polyglot-tts/internal/migrations"
	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/store"
	"polyglot-tts/internal/telemetry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера
	logger, err := initLogger(&cfg.App)
	if err != nil {
		fmt.Printf("Ошибка инициализации логгера: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("запуск приложения Polyglot TTS",
		zap.Strings("providers", cfg.TTS.Providers),
		zap.String("env", cfg.App.Env))

	// Инициализация трассировки
	shutdownTracing, err := telemetry.Setup(telemetry.ServiceName)
	if err != nil {
		logger.Fatal("ошибка инициализации трассировки", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("ошибка остановки трассировки", zap.Error(err))
		}
	}()

	// Инициализация метрик
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsSystem := metrics.New(logger, promRegistry)
	metricsHandler := metrics.NewHandler(promRegistry, logger)

	// Инициализация TTS провайдеров
	providers, err := registry.Build(&cfg.TTS, logger, metricsSystem)
	if err != nil {
		logger.Fatal("ошибка создания TTS провайдеров", zap.Error(err))
	}

	// Инициализация хранилища настроек
	prefStore, err := initStore(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("ошибка инициализации хранилища", zap.Error(err))
	}
	defer prefStore.Close()

	// Обработка сигналов для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP сервера
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           api.NewServer(providers, metricsHandler, logger, api.WithFailureTrace(!cfg.App.IsProduction())).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		return runHTTPServer(ctx, server, logger)
	})

	// Запуск Telegram бота
	if cfg.Telegram.Enabled() {
		botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			logger.Fatal("ошибка инициализации Telegram бота", zap.Error(err))
		}

		logger.Info("Telegram бот инициализирован",
			zap.String("username", botAPI.Self.UserName),
			zap.Int64("id", botAPI.Self.ID))

		handler := bot.NewHandler(botAPI, providers, prefStore.Preference(), bot.Defaults{
			Provider: cfg.TTS.DefaultProvider,
			Voice:    cfg.TTS.DefaultVoice,
		}, logger)

		g.Go(func() error {
			handleUpdates(ctx, botAPI, handler, logger)
			return nil
		})
	} else {
		logger.Info("TELEGRAM_BOT_TOKEN не задан, бот отключен")
	}

	logger.Info("приложение запущено и готово к работе",
		zap.String("address", fmt.Sprintf("http://localhost:%d", cfg.App.Port)))

	if err := g.Wait(); err != nil {
		logger.Error("приложение завершилось с ошибкой", zap.Error(err))
		return
	}

	logger.Info("приложение завершено")
}

// initLogger инициализирует логгер
func initLogger(app *config.AppConfig) (*zap.Logger, error) {
	zapConfig := zap.NewDevelopmentConfig()
	if app.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	}
	zapConfig.Level = app.GetLogLevel()
	zapConfig.OutputPaths = []string{"stdout", "logs/app.log"}
	zapConfig.ErrorOutputPaths = []string{"stderr", "logs/error.log"}

	// Создаем директорию для логов если её нет
	if err := os.MkdirAll("logs", 0755); err != nil {
		return nil, fmt.Errorf("ошибка создания директории логов: %w", err)
	}

	return zapConfig.Build()
}

// initStore подключает PostgreSQL или хранилище в памяти, если DB_HOST не задан
func initStore(cfg *config.DatabaseConfig, logger *zap.Logger) (store.Store, error) {
	if !cfg.Enabled() {
		logger.Info("DB_HOST не задан, настройки чатов хранятся в памяти")
		return store.NewMemoryStore(), nil
	}

	if err := migrations.RunMigrations(cfg, logger); err != nil {
		return nil, err
	}

	return store.NewStore(cfg, logger)
}

// runHTTPServer обслуживает запросы до отмены ctx
func runHTTPServer(ctx context.Context, server *http.Server, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP сервер запущен", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("ошибка HTTP сервера: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("остановка HTTP сервера")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки HTTP сервера: %w", err)
	}
	return nil
}

// handleUpdates обрабатывает обновления от Telegram
func handleUpdates(ctx context.Context, botAPI *tgbotapi.BotAPI, handler *bot.Handler, logger *zap.Logger) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := botAPI.GetUpdatesChan(updateConfig)
	defer botAPI.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			// Пропускаем пустые обновления
			if update.Message == nil && update.CallbackQuery == nil {
				continue
			}

			// Обрабатываем обновление в горутине
			go func(update tgbotapi.Update) {
				if err := handler.HandleUpdate(ctx, update); err != nil {
					var chatID int64
					if update.Message != nil {
						chatID = update.Message.Chat.ID
					} else if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
						chatID = update.CallbackQuery.Message.Chat.ID
					}

					logger.Error("ошибка обработки обновления",
						zap.Int64("chat_id", chatID),
						zap.Error(err))
				}
			}(update)

		case <-ctx.Done():
			logger.Info("остановка обработки обновлений")
			return
		}
	}
}
