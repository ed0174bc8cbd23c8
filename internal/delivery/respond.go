package delivery

import (
	"errors"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/echo_bot/internal/speech"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]any{"detail": detail})
}

// statusOf — единая точка перевода ошибок сервиса в HTTP-статус
func statusOf(err error) int {
	var (
		cfgErr *speech.ConfigError
		inErr  *speech.InputError
		upErr  *speech.UpstreamError
	)

	switch {
	case errors.As(err, &upErr):
		return upErr.StatusCode
	case errors.As(err, &inErr):
		return http.StatusBadRequest
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// detailOf достаёт сообщение типизированной ошибки без обёрток "transcribe: ..."
func detailOf(err error) string {
	var (
		cfgErr *speech.ConfigError
		inErr  *speech.InputError
		upErr  *speech.UpstreamError
	)

	switch {
	case errors.As(err, &upErr):
		return upErr.Error()
	case errors.As(err, &inErr):
		return inErr.Error()
	case errors.As(err, &cfgErr):
		return cfgErr.Error()
	}

	return err.Error()
}

func (h *SpeechHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusOf(err)

	level := "error"
	if code < 500 {
		level = "warn"
	}
	h.log.Log(logger.LogEntry{
		Level:   level,
		Message: r.Method + " " + r.URL.Path + " failed, request_id=" + RequestID(r.Context()),
		Error:   err,
	})

	writeDetail(w, code, detailOf(err))
}
