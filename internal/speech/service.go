package speech

import (
	"context"
	"errors"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/echo_bot/internal/config"
)

const (
	OpEcho     = "echo"
	OpGenerate = "generate tts"
)

// Notifier — куда сообщать о сбоях провайдеров (реализация в error_notificator)
type Notifier interface {
	Notify(ctx context.Context, source string, err error, details string) error
}

// === Единый сервис (и для стт и для ттс) ===

type service struct {
	stt    STTClient
	sttKey config.Credential
	tts    TTSClient
	ttsKey config.Credential
	notify Notifier
	log    *logger.ZapLogger
}

func NewService(
	stt STTClient,
	sttKey config.Credential,
	tts TTSClient,
	ttsKey config.Credential,
	notify Notifier,
	log *logger.ZapLogger,
) Service {
	return &service{
		stt:    stt,
		sttKey: sttKey,
		tts:    tts,
		ttsKey: ttsKey,
		notify: notify,
		log:    log,
	}
}

func (s *service) Echo(ctx context.Context, audio Audio) (*EchoResult, error) {
	res, err := s.echo(ctx, audio)
	if err != nil {
		err = wrapOp(OpEcho, err)
		s.report(ctx, OpEcho, err)
		return nil, err
	}
	return res, nil
}

func (s *service) echo(ctx context.Context, audio Audio) (*EchoResult, error) {
	// оба ключа проверяем до любого сетевого вызова
	if err := requireKey(s.sttKey); err != nil {
		return nil, err
	}
	if err := requireKey(s.ttsKey); err != nil {
		return nil, err
	}

	text, err := s.stt.Transcribe(ctx, audio)
	if err != nil {
		// статус STT-провайдера клиенту не пробрасываем: наружу это 500 операции echo
		var upErr *UpstreamError
		if errors.As(err, &upErr) {
			return nil, &OpError{
				Op:  OpEcho,
				Err: fmt.Errorf("transcribe: %s (status %d)", upErr.Error(), upErr.StatusCode),
			}
		}
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	if text == "" {
		return nil, ErrEmptyTranscript
	}

	url, err := s.tts.Synthesize(ctx, SynthesisRequest{
		Text:    text,
		VoiceID: EchoVoiceID,
		Format:  DefaultFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	if url == "" {
		return nil, ErrNoAudioURL
	}

	return &EchoResult{
		AudioURL:   url,
		Transcript: text,
		VoiceID:    EchoVoiceID,
	}, nil
}

func (s *service) Generate(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error) {
	if err := requireKey(s.ttsKey); err != nil {
		return nil, err
	}

	// дефолты voice_id и format подставляет delivery, только если поля нет в запросе
	req.VoiceID = NormalizeVoiceID(req.VoiceID)

	url, err := s.tts.Synthesize(ctx, req)
	if err != nil {
		err = wrapOp(OpGenerate, err)
		s.report(ctx, OpGenerate, err)
		return nil, err
	}

	return &SynthesisResult{
		AudioURL: url,
		Text:     req.Text,
		VoiceID:  req.VoiceID,
	}, nil
}

func (s *service) Voices() []Voice {
	return Catalog()
}

func requireKey(c config.Credential) error {
	if c.Value == "" {
		return &ConfigError{Var: c.Env}
	}
	return nil
}

// report шлёт уведомление о 5xx провайдеров и неожиданных ошибках.
// 4xx провайдера — это ввод клиента (например, кривой voice_id), админу не шлём.
func (s *service) report(ctx context.Context, op string, err error) {
	var (
		cfgErr *ConfigError
		inErr  *InputError
		upErr  *UpstreamError
	)
	if errors.As(err, &cfgErr) || errors.As(err, &inErr) {
		return
	}

	details := ""
	if errors.As(err, &upErr) {
		if upErr.StatusCode < 500 {
			s.log.Log(logger.LogEntry{Level: "warn", Message: op + " rejected by provider", Error: err})
			return
		}
		details = fmt.Sprintf("provider=%s status=%d", upErr.Provider, upErr.StatusCode)
	}

	s.log.Log(logger.LogEntry{Level: "error", Message: op + " failed", Error: err})

	if s.notify == nil {
		return
	}
	if nerr := s.notify.Notify(ctx, op, err, details); nerr != nil {
		s.log.Log(logger.LogEntry{Level: "warn", Message: "notify failed", Error: nerr})
	}
}
