// Команда synth озвучивает один текст и сохраняет OGG в файл.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"polyglot-tts/internal/config"
	"polyglot-tts/internal/migrations"
	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/tts"

	"go.uber.org/zap"
)

type options struct {
	provider string
	voice    string
	text     string
	out      string
	list     bool
	status   bool
}

// errNoDatabase возвращается, когда БД не настроена
var errNoDatabase = errors.New("база данных не настроена (DB_HOST)")

func main() {
	var opts options
	flag.StringVar(&opts.provider, "provider", "", "ID провайдера (по умолчанию первый из TTS_PROVIDERS)")
	flag.StringVar(&opts.voice, "voice", "", "ID голоса (по умолчанию первый голос провайдера)")
	flag.StringVar(&opts.text, "text", "", "Текст для озвучки")
	flag.StringVar(&opts.out, "out", "speech.ogg", "Файл для сохранения аудио, '-' для stdout")
	flag.BoolVar(&opts.list, "list", false, "Показать провайдеры и голоса")
	flag.BoolVar(&opts.status, "migrate-status", false, "Показать статус миграций БД")
	flag.Parse()

	// Инициализация логгера
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Ошибка инициализации логгера:", err)
	}
	defer logger.Sync()

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Ошибка загрузки конфигурации", zap.Error(err))
	}

	if opts.status {
		if err := migrateStatus(&cfg.Database, logger, migrations.GetMigrationStatus); err != nil {
			logger.Fatal("Ошибка получения статуса миграций", zap.Error(err))
		}
		return
	}

	providers, err := registry.Build(&cfg.TTS, logger, nil)
	if err != nil {
		logger.Fatal("Ошибка создания TTS провайдеров", zap.Error(err))
	}

	if opts.list {
		printCatalog(os.Stdout, providers)
		return
	}

	if opts.provider == "" {
		opts.provider = cfg.TTS.Providers[0]
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, providers, opts, logger); err != nil {
		logger.Fatal("Ошибка синтеза", zap.Error(err))
	}
}

func run(ctx context.Context, providers *registry.Registry, opts options, logger *zap.Logger) error {
	if opts.text == "" {
		return fmt.Errorf("не задан -text")
	}

	p, err := providers.Get(opts.provider)
	if err != nil {
		return err
	}

	voice := opts.voice
	if voice == "" {
		voices := p.Voices()
		if len(voices) == 0 {
			return fmt.Errorf("у провайдера %s нет голосов", p.ID())
		}
		voice = voices[0].ID
	}

	switch resp := p.Synthesize(ctx, voice, opts.text).(type) {
	case *tts.Audio:
		if err := writeAudio(opts.out, resp.Data); err != nil {
			return err
		}
		logger.Info("Аудио сохранено",
			zap.String("provider", p.ID()),
			zap.String("voice", voice),
			zap.String("out", opts.out),
			zap.Int("size", len(resp.Data)))
		return nil
	case *tts.Failure:
		if resp.Trace != "" {
			logger.Debug("Трассировка ошибки провайдера", zap.String("trace", resp.Trace))
		}
		return resp
	default:
		return fmt.Errorf("неизвестный тип ответа: %T", resp)
	}
}

func migrateStatus(cfg *config.DatabaseConfig, logger *zap.Logger,
	status func(*config.DatabaseConfig, *zap.Logger) error) error {
	if !cfg.Enabled() {
		return errNoDatabase
	}
	return status(cfg, logger)
}

func writeAudio(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return nil
}

func printCatalog(w io.Writer, providers *registry.Registry) {
	for _, p := range providers.List() {
		fmt.Fprintf(w, "%s\t%s\n", p.ID(), p.FriendlyName())
		for _, v := range p.Voices() {
			fmt.Fprintf(w, "\t%s\t%s\t%s\n", v.ID, v.Name, v.Language)
		}
	}
}
