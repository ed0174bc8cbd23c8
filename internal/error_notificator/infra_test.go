package error_notificator

import (
	"context"
	"errors"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, f.err
}

func TestTelegramInfraNotify(t *testing.T) {
	s := &fakeSender{}
	infra := &TelegramInfra{bot: s, adminChatID: 42}

	err := infra.Notify(context.Background(), "echo", errors.New("murf down"), "status=502")
	require.NoError(t, err)

	require.Len(t, s.sent, 1)
	assert.Equal(t, int64(42), s.sent[0].ChatID)
	assert.Contains(t, s.sent[0].Text, "echo")
	assert.Contains(t, s.sent[0].Text, "murf down")
	assert.Contains(t, s.sent[0].Text, "status=502")
}

func TestTelegramInfraSendError(t *testing.T) {
	infra := &TelegramInfra{bot: &fakeSender{err: errors.New("blocked")}, adminChatID: 1}

	err := infra.Notify(context.Background(), "generate tts", errors.New("boom"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocked")
}

type countingInfra struct{ calls int }

func (c *countingInfra) Notify(context.Context, string, error, string) error {
	c.calls++
	return nil
}

func TestServiceSkipsNilError(t *testing.T) {
	infra := &countingInfra{}
	svc := NewService(infra)

	require.NoError(t, svc.Notify(context.Background(), "echo", nil, ""))
	require.NoError(t, svc.Notify(context.Background(), "echo", errors.New("x"), ""))

	assert.Equal(t, 1, infra.calls)
}

func TestLogInfraNeverFails(t *testing.T) {
	infra := NewLogInfra(logger.NewZapLogger(zap.NewNop().Sugar()))

	require.NoError(t, infra.Notify(context.Background(), "echo", errors.New("boom"), "details"))
}
