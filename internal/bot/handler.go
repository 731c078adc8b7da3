package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"polyglot-tts/internal/registry"
	"polyglot-tts/internal/store"
	"polyglot-tts/internal/tts"
	"polyglot-tts/pkg/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	// MaxTextLength - максимальная длина текста для озвучки (в символах)
	MaxTextLength = 4000

	voiceCallbackPrefix = "voice:"
	voiceFileName       = "speech.ogg"
)

// Sender - часть tgbotapi.BotAPI, которую использует обработчик
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Defaults - провайдер и голос для чатов без сохраненных настроек
type Defaults struct {
	Provider string
	Voice    string
}

// Handler представляет обработчик сообщений Telegram
type Handler struct {
	bot      Sender
	registry *registry.Registry
	prefs    store.PreferenceRepository
	defaults Defaults
	messages *Messages
	logger   *zap.Logger
}

// NewHandler создает новый обработчик
func NewHandler(bot Sender, reg *registry.Registry, prefs store.PreferenceRepository, defaults Defaults, logger *zap.Logger) *Handler {
	return &Handler{
		bot:      bot,
		registry: reg,
		prefs:    prefs,
		defaults: defaults,
		messages: NewMessages(),
		logger:   logger,
	}
}

// HandleUpdate обрабатывает входящее обновление
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	// Обрабатываем inline кнопки
	if update.CallbackQuery != nil {
		return h.handleCallbackQuery(ctx, update.CallbackQuery)
	}
	if update.Message == nil {
		return nil
	}

	h.logger.Debug("получено обновление",
		zap.Int64("chat_id", update.Message.Chat.ID),
		zap.Int("text_length", len(update.Message.Text)))

	if update.Message.IsCommand() {
		return h.handleCommand(ctx, update.Message)
	}

	return h.handleText(ctx, update.Message)
}

// handleCommand обрабатывает команды
func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := strings.Fields(message.CommandArguments())

	switch message.Command() {
	case "start":
		return h.sendMessage(chatID, h.messages.Welcome())
	case "help":
		return h.sendMessage(chatID, h.messages.Help())
	case "providers":
		return h.handleProvidersCommand(ctx, chatID)
	case "voices":
		return h.handleVoicesCommand(ctx, chatID, args)
	case "voice":
		if len(args) != 2 {
			return h.sendMessage(chatID, h.messages.VoiceUsage())
		}
		return h.selectVoice(ctx, chatID, args[0], args[1])
	default:
		return h.sendMessage(chatID, h.messages.UnknownCommand())
	}
}

func (h *Handler) handleProvidersCommand(ctx context.Context, chatID int64) error {
	pref, err := h.preference(ctx, chatID)
	if err != nil {
		h.logger.Error("ошибка получения настроек чата", zap.Int64("chat_id", chatID), zap.Error(err))
		return h.sendMessage(chatID, h.messages.InternalError())
	}
	return h.sendMessage(chatID, h.messages.Providers(h.registry.List(), pref.Provider))
}

// handleVoicesCommand показывает голоса провайдера кнопками
func (h *Handler) handleVoicesCommand(ctx context.Context, chatID int64, args []string) error {
	var providerID string
	if len(args) > 0 {
		providerID = args[0]
	} else {
		pref, err := h.preference(ctx, chatID)
		if err != nil {
			h.logger.Error("ошибка получения настроек чата", zap.Int64("chat_id", chatID), zap.Error(err))
			return h.sendMessage(chatID, h.messages.InternalError())
		}
		providerID = pref.Provider
	}

	p, err := h.registry.Get(providerID)
	if err != nil {
		return h.sendMessage(chatID, h.messages.UnknownProvider(providerID))
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, v := range p.Voices() {
		label := fmt.Sprintf("%s (%s)", v.Name, v.Language)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, voiceCallbackPrefix+p.ID()+":"+v.ID),
		))
	}

	msg := tgbotapi.NewMessage(chatID, h.messages.Voices(p))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)

	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("ошибка отправки списка голосов", zap.Int64("chat_id", chatID), zap.Error(err))
		return err
	}
	return nil
}

// handleCallbackQuery обрабатывает нажатие кнопки выбора голоса
func (h *Handler) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) error {
	data := callback.Data

	if !strings.HasPrefix(data, voiceCallbackPrefix) || callback.Message == nil {
		h.logger.Warn("неизвестный callback", zap.String("data", data))
		return nil
	}

	providerID, voiceID, ok := strings.Cut(strings.TrimPrefix(data, voiceCallbackPrefix), ":")
	if !ok {
		h.logger.Warn("некорректный callback выбора голоса", zap.String("data", data))
		return nil
	}

	if _, err := h.bot.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		h.logger.Warn("ошибка ответа на callback", zap.Error(err))
	}

	return h.selectVoice(ctx, callback.Message.Chat.ID, providerID, voiceID)
}

// selectVoice проверяет и сохраняет выбор голоса для чата
func (h *Handler) selectVoice(ctx context.Context, chatID int64, providerID, voiceID string) error {
	p, err := h.registry.Get(providerID)
	if err != nil {
		return h.sendMessage(chatID, h.messages.UnknownProvider(providerID))
	}

	voice, ok := tts.FindVoice(p, voiceID)
	if !ok {
		return h.sendMessage(chatID, h.messages.UnknownVoice(voiceID))
	}

	pref := &models.ChatPreference{ChatID: chatID, Provider: p.ID(), Voice: voice.ID}
	if err := h.prefs.Save(ctx, pref); err != nil {
		h.logger.Error("ошибка сохранения голоса", zap.Int64("chat_id", chatID), zap.Error(err))
		return h.sendMessage(chatID, h.messages.InternalError())
	}

	h.logger.Info("голос выбран",
		zap.Int64("chat_id", chatID),
		zap.String("provider", p.ID()),
		zap.String("voice", voice.ID))

	return h.sendMessage(chatID, h.messages.VoiceSelected(p, voice))
}

// handleText озвучивает текст выбранным в чате голосом
func (h *Handler) handleText(ctx context.Context, message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return h.sendMessage(chatID, h.messages.TextTooLong(MaxTextLength))
	}

	pref, err := h.preference(ctx, chatID)
	if err != nil {
		h.logger.Error("ошибка получения настроек чата", zap.Int64("chat_id", chatID), zap.Error(err))
		return h.sendMessage(chatID, h.messages.InternalError())
	}

	p, err := h.registry.Get(pref.Provider)
	if err != nil {
		return h.sendMessage(chatID, h.messages.UnknownProvider(pref.Provider))
	}

	h.logger.Info("🎵 озвучиваем сообщение",
		zap.Int64("chat_id", chatID),
		zap.String("provider", p.ID()),
		zap.String("voice", pref.Voice))

	switch resp := p.Synthesize(ctx, pref.Voice, text).(type) {
	case *tts.Audio:
		if _, err := h.bot.Send(audioMessage(chatID, resp)); err != nil {
			h.logger.Error("ошибка отправки голосового сообщения", zap.Int64("chat_id", chatID), zap.Error(err))
			return err
		}
		return nil
	case *tts.Failure:
		h.logger.Warn("синтез не удался",
			zap.Int64("chat_id", chatID),
			zap.String("provider", p.ID()),
			zap.String("message", resp.Message),
			zap.String("trace", resp.Trace))
		return h.sendPlain(chatID, h.messages.SynthesisFailed(resp.Message))
	default:
		return fmt.Errorf("неизвестный тип ответа провайдера %s: %T", p.ID(), resp)
	}
}

// audioMessage выбирает способ отправки аудио.
// sendVoice принимает только OGG/Opus, остальное уходит обычным аудиофайлом.
func audioMessage(chatID int64, audio *tts.Audio) tgbotapi.Chattable {
	file := tgbotapi.FileBytes{
		Name:  voiceFileName,
		Bytes: audio.Data,
	}
	if audio.Format == tts.FormatOGG && audio.Codec == tts.CodecOpus {
		return tgbotapi.NewVoice(chatID, file)
	}
	return tgbotapi.NewAudio(chatID, file)
}

// preference возвращает настройки чата или значения по умолчанию.
// Сохраненный провайдер, который больше не подключен, заменяется провайдером по умолчанию.
func (h *Handler) preference(ctx context.Context, chatID int64) (*models.ChatPreference, error) {
	pref, err := h.prefs.Get(ctx, chatID)
	switch {
	case err == nil:
		if _, getErr := h.registry.Get(pref.Provider); getErr == nil {
			return pref, nil
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	return h.defaultPreference(chatID), nil
}

// defaultPreference подбирает провайдер и голос по умолчанию независимо друг от друга:
// провайдер - из Defaults или первый в реестре, голос - из Defaults, если он есть
// у выбранного провайдера, иначе первый голос каталога.
func (h *Handler) defaultPreference(chatID int64) *models.ChatPreference {
	pref := &models.ChatPreference{ChatID: chatID, Provider: h.defaults.Provider, Voice: h.defaults.Voice}

	p, err := h.registry.Get(pref.Provider)
	if err != nil {
		providers := h.registry.List()
		if len(providers) == 0 {
			return pref
		}
		p = providers[0]
		pref.Provider = p.ID()
	}

	if _, ok := tts.FindVoice(p, pref.Voice); ok {
		return pref
	}

	pref.Voice = ""
	if voices := p.Voices(); len(voices) > 0 {
		pref.Voice = voices[0].ID
	}
	return pref
}

// sendMessage отправляет сообщение с HTML разметкой
func (h *Handler) sendMessage(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return h.send(chatID, msg)
}

// sendPlain отправляет сообщение без разметки
func (h *Handler) sendPlain(chatID int64, text string) error {
	return h.send(chatID, tgbotapi.NewMessage(chatID, text))
}

func (h *Handler) send(chatID int64, msg tgbotapi.MessageConfig) error {
	if _, err := h.bot.Send(msg); err != nil {
		h.logger.Error("ошибка отправки сообщения",
			zap.Int64("chat_id", chatID),
			zap.String("parse_mode", msg.ParseMode),
			zap.Error(err))
		return err
	}
	return nil
}
