package telegram

import (
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier defines the chat operations the bot needs.
//
//go:generate mockgen -package=mocks -destination=mocks/mock_client.go -source=client.go Notifier
type Notifier interface {
	SendMessage(text string) error
	SendPhoto(caption, photoURL string) error
	GetChatTopic() (string, error)
}

// client is an implementation of Notifier.
type client struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	mu     sync.Mutex
}

type clientOptions struct {
	apiEndpoint string
	httpClient  tgbotapi.HTTPClient
}

// Option configures the Telegram client.
type Option func(*clientOptions)

// WithAPIEndpoint overrides the Bot API endpoint, e.g. for a local bot API server.
func WithAPIEndpoint(endpoint string) Option {
	return func(o *clientOptions) {
		o.apiEndpoint = endpoint
	}
}

// WithHTTPClient sets the HTTP client used to talk to the Bot API.
func WithHTTPClient(httpClient tgbotapi.HTTPClient) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// NewClient creates a new Telegram notifier client.
func NewClient(botToken string, chatID int64, opts ...Option) (Notifier, error) {
	o := clientOptions{
		apiEndpoint: tgbotapi.APIEndpoint,
		httpClient:  &http.Client{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	bot, err := tgbotapi.NewBotAPIWithClient(botToken, o.apiEndpoint, o.httpClient)
	if err != nil {
		return nil, err
	}
	return &client{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends a message to the configured Telegram chat.
func (c *client) SendMessage(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(msg)
	return err
}

// SendPhoto sends an image by URL with caption to the configured chat.
func (c *client) SendPhoto(caption, photoURL string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	photo := tgbotapi.NewPhoto(c.chatID, tgbotapi.FileURL(photoURL))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeMarkdown
	_, err := c.bot.Send(photo)
	return err
}

// GetChatTopic returns the chat description, which holds the watched symbols.
func (c *client) GetChatTopic() (string, error) {
	chat, err := c.bot.GetChat(tgbotapi.ChatInfoConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: c.chatID},
	})
	if err != nil {
		return "", err
	}
	return chat.Description, nil
}
