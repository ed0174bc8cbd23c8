package speech

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTranscript = &InputError{Message: "No transcription result."}
	ErrNoAudioURL      = errors.New("no audio URL returned from Murf API")
)

// ConfigError — не задан ключ провайдера
type ConfigError struct {
	Var string
}

func (e *ConfigError) Error() string {
	return e.Var + " not found in environment variables"
}

// InputError — запрос клиента не даёт результата (например, пустая транскрипция)
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// UpstreamError — провайдер ответил не-успешным статусом, тело отдаём как есть.
// У OpenAI в Body только error.message: клиент go-openai сырое тело не отдаёт.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
}

// OpError привязывает неожиданную ошибку к операции, в которой она случилась
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// wrapOp оставляет типизированные ошибки как есть, остальные заворачивает в OpError
func wrapOp(op string, err error) error {
	var (
		cfgErr *ConfigError
		inErr  *InputError
		upErr  *UpstreamError
		opErr  *OpError
	)

	switch {
	case errors.As(err, &opErr):
		return err
	case errors.As(err, &cfgErr), errors.As(err, &inErr), errors.As(err, &upErr):
		return err
	}

	return &OpError{Op: op, Err: err}
}
