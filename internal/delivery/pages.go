package delivery

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/echo_bot/internal/speech"
)

type PageHandler struct {
	index  *template.Template
	err    error
	voices []speech.Voice
	log    *logger.ZapLogger
}

// NewPageHandler не падает без шаблона: GET / тогда отвечает 500, API продолжает работать
func NewPageHandler(templatesDir string, voices []speech.Voice, log *logger.ZapLogger) *PageHandler {
	tmpl, err := template.ParseFiles(filepath.Join(templatesDir, "index.html"))
	if err != nil {
		log.Log(logger.LogEntry{Level: "warn", Message: "index template not loaded", Error: err})
	}

	return &PageHandler{index: tmpl, err: err, voices: voices, log: log}
}

// GET /
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if h.err != nil {
		writeDetail(w, http.StatusInternalServerError, "index template not available")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.index.Execute(w, map[string]any{"Voices": h.voices}); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render index", Error: err})
	}
}
