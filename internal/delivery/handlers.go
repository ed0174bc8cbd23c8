package delivery

import (
	"io"
	"mime"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"

	"github.com/Vovarama1992/echo_bot/internal/speech"
)

const maxMemory = 32 << 20

type SpeechHandler struct {
	svc speech.Service
	log *logger.ZapLogger
}

func NewSpeechHandler(svc speech.Service, log *logger.ZapLogger) *SpeechHandler {
	return &SpeechHandler{
		svc: svc,
		log: log,
	}
}

// POST /tts/echo
func (h *SpeechHandler) Echo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Error: err})
		writeDetail(w, http.StatusUnprocessableEntity, "missing file: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "failed to read file: "+err.Error())
		return
	}

	contentType := header.Header.Get("Content-Type")
	if mediatype, _, err := mime.ParseMediaType(contentType); err == nil {
		contentType = mediatype
	}

	res, err := h.svc.Echo(r.Context(), speech.Audio{
		Name:        header.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// POST /generate-tts
func (h *SpeechHandler) GenerateTTS(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text    *string `json:"text"`
		VoiceID *string `json:"voice_id"`
		Format  *string `json:"format"`
	}

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid json: "+err.Error())
		return
	}
	if body.Text == nil {
		writeDetail(w, http.StatusUnprocessableEntity, "missing text")
		return
	}

	// дефолт только для отсутствующего поля: явная пустая строка уходит в Murf как есть
	in := speech.SynthesisRequest{
		Text:    *body.Text,
		VoiceID: speech.DefaultVoiceID,
		Format:  speech.DefaultFormat,
	}
	if body.VoiceID != nil {
		in.VoiceID = *body.VoiceID
	}
	if body.Format != nil {
		in.Format = *body.Format
	}

	res, err := h.svc.Generate(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"audio_url": res.AudioURL,
		"message":   "Audio generated successfully",
		"text":      res.Text,
		"voice_id":  res.VoiceID,
	})
}

// GET /api/voices
func (h *SpeechHandler) ListVoices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"voices": h.svc.Voices()})
}

// GET /health
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "Echo Bot is running",
	})
}
