package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"plant-bot/internal/container"
	"plant-bot/internal/domain/entity"
	"plant-bot/internal/infrastructure/i18n"
)

// botAPI часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
}

// Bot представляет Telegram-бота; один чат = одна сессия.
type Bot struct {
	client    *tgbotapi.BotAPI
	api       botAPI
	app       *container.Container
	http      *http.Client
	maxUpload int
	log       *zap.Logger
}

// NewBot создаёт нового бота
func NewBot(token string, c *container.Container, maxUpload int, log *zap.Logger) (*Bot, error) {
	client, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Info("authorized on telegram", zap.String("account", client.Self.UserName))

	b := newBot(client, c, maxUpload, log)
	b.client = client
	return b, nil
}

func newBot(api botAPI, c *container.Container, maxUpload int, log *zap.Logger) *Bot {
	return &Bot{
		api:       api,
		app:       c,
		http:      &http.Client{Timeout: 30 * time.Second},
		maxUpload: maxUpload,
		log:       log,
	}
}

// Run запускает основной цикл обработки сообщений до отмены ctx
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.client.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.client.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func sessionID(chatID int64) string {
	return "tg:" + strconv.FormatInt(chatID, 10)
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	sid := sessionID(msg.Chat.ID)
	session, err := b.app.SessionService.Get(ctx, sid)
	if err != nil {
		b.log.Error("error getting session", zap.String("session", sid), zap.Error(err))
		return
	}
	locale := session.Locale()

	// Обработка команд
	if msg.IsCommand() {
		b.handleCommand(ctx, msg, session)
		return
	}

	// Фото: канал камеры
	if len(msg.Photo) > 0 {
		photo := msg.Photo[len(msg.Photo)-1]
		b.handleImage(ctx, msg.Chat.ID, session, entity.SourceCamera, photo.FileID, "", photo.FileSize)
		return
	}

	// Документ: канал загрузки
	if msg.Document != nil {
		doc := msg.Document
		b.handleImage(ctx, msg.Chat.ID, session, entity.SourceUpload, doc.FileID, doc.FileName, doc.FileSize)
		return
	}

	// Текстовое сообщение (не команда)
	b.sendMessage(msg.Chat.ID, formatModePrompt(b.app.Translator, locale, session.Mode()))
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, session *entity.Session) {
	tr := b.app.Translator
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(chatID, formatWelcome(tr, session.Locale(), session.Mode()))
		reply.ReplyMarkup = menuKeyboard()
		b.send(reply)

	case "help":
		b.sendMessage(chatID, tr.Text(session.Locale(), i18n.KeyHelp))

	case "camera", "upload":
		mode := entity.SourceCamera
		if msg.Command() == "upload" {
			mode = entity.SourceUpload
		}
		updated, err := b.app.SessionService.SetMode(ctx, session.ID, mode)
		if err != nil {
			b.log.Error("error switching mode", zap.String("session", session.ID), zap.Error(err))
			return
		}
		locale := updated.Locale()
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyModeSwitched, modeLabel(tr, locale, mode))+"\n\n"+
			formatModePrompt(tr, locale, mode))

	case "lang":
		updated, err := b.app.SessionService.ToggleLocale(ctx, session.ID)
		if err != nil {
			b.log.Error("error switching language", zap.String("session", session.ID), zap.Error(err))
			return
		}
		b.sendMessage(chatID, tr.Text(updated.Locale(), i18n.KeyLanguageSwitched))

	case "history":
		b.sendHistory(ctx, chatID, session)

	case "eco":
		b.sendMessage(chatID, formatEco(tr, session.Locale()))

	case "end":
		if err := b.app.SessionService.End(ctx, session.ID); err != nil {
			b.log.Error("error ending session", zap.String("session", session.ID), zap.Error(err))
			return
		}
		b.sendMessage(chatID, tr.Text(session.Locale(), i18n.KeySessionEnded))

	default:
		b.sendMessage(chatID, tr.Text(session.Locale(), i18n.KeyUnknownCommand))
	}
}

// handleImage принимает изображение только из активного канала и запускает распознавание
func (b *Bot) handleImage(ctx context.Context, chatID int64, session *entity.Session, source entity.ImageSource, fileID, filename string, size int) {
	tr := b.app.Translator
	locale := session.Locale()

	if mode := session.Mode(); mode != source {
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyWrongChannel, modeLabel(tr, locale, mode)))
		return
	}

	b.sendMessage(chatID, tr.Text(locale, i18n.KeyProcessing))

	if b.maxUpload > 0 && size > b.maxUpload {
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyDecodeError))
		return
	}

	data, err := b.downloadFile(ctx, fileID)
	if err != nil {
		b.log.Error("error downloading image", zap.String("session", session.ID), zap.Error(err))
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyDecodeError))
		return
	}

	input := entity.CameraImage(data)
	if source == entity.SourceUpload {
		input = entity.UploadImage(filename, data)
	}

	out, err := b.app.RecognitionService.Recognize(ctx, session.ID, input)
	if err != nil {
		b.log.Error("recognition failed", zap.String("session", session.ID), zap.Error(err))
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyDetectionError))
		return
	}

	b.sendMessage(chatID, formatResult(tr, locale, out))
}

// sendHistory отправляет по сообщению на каждую запись истории
func (b *Bot) sendHistory(ctx context.Context, chatID int64, session *entity.Session) {
	tr := b.app.Translator
	locale := session.Locale()

	entries, err := b.app.SessionService.History(ctx, session.ID)
	if err != nil {
		b.log.Error("error reading history", zap.String("session", session.ID), zap.Error(err))
		return
	}
	if len(entries) == 0 {
		b.sendMessage(chatID, tr.Text(locale, i18n.KeyHistoryEmpty))
		return
	}

	b.sendMessage(chatID, tr.Text(locale, i18n.KeyHistoryLabel))
	for i, entry := range entries {
		caption := formatHistoryCaption(tr, locale, i+1, entry)
		if entry.Image == nil || len(entry.Image.Thumbnail) == 0 {
			b.sendMessage(chatID, caption)
			continue
		}
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
			Name:  fmt.Sprintf("record_%d.jpg", i+1),
			Bytes: entry.Image.Thumbnail,
		})
		photo.Caption = caption
		b.send(photo)
	}
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, errors.Wrap(err, "get file")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "download file")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	return data, nil
}

func menuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/camera"),
			tgbotapi.NewKeyboardButton("/upload"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/lang"),
			tgbotapi.NewKeyboardButton("/history"),
			tgbotapi.NewKeyboardButton("/eco"),
		),
	)
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.log.Error("error sending message", zap.Error(err))
	}
}
