package telegram

import (
	"golang-stock-bot/pkg/logger"
)

// DummyTopic is the chat topic reported by the dummy notifier.
const DummyTopic = "goog,VMW\nMSFT"

type dummyClient struct {
	log *logger.Logger
}

// NewDummyClient returns a Notifier that never talks to Telegram. Used in test mode.
func NewDummyClient(log *logger.Logger) Notifier {
	return &dummyClient{log: log}
}

func (d *dummyClient) SendMessage(text string) error {
	d.log.Debug("Not sending message to Telegram", logger.StringField("text", text))
	return nil
}

func (d *dummyClient) SendPhoto(caption, photoURL string) error {
	d.log.Debug("Not sending photo to Telegram", logger.StringField("caption", caption), logger.StringField("photo_url", photoURL))
	return nil
}

func (d *dummyClient) GetChatTopic() (string, error) {
	return DummyTopic, nil
}
