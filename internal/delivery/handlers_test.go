package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vovarama1992/echo_bot/internal/config"
	"github.com/Vovarama1992/echo_bot/internal/speech"
)

type fakeSTT struct {
	text string
	err  error
	got  speech.Audio
}

func (f *fakeSTT) Transcribe(_ context.Context, audio speech.Audio) (string, error) {
	f.got = audio
	return f.text, f.err
}

type murfStub struct {
	srv    *httptest.Server
	calls  int32
	status int
	body   string
	last   map[string]string
}

func newMurfStub(t *testing.T, status int, body string) *murfStub {
	t.Helper()

	m := &murfStub{status: status, body: body}
	m.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.calls, 1)

		raw, _ := io.ReadAll(r.Body)
		m.last = map[string]string{}
		_ = json.Unmarshal(raw, &m.last)

		w.WriteHeader(m.status)
		io.WriteString(w, m.body)
	}))
	t.Cleanup(m.srv.Close)

	return m
}

type testEnv struct {
	router http.Handler
	stt    *fakeSTT
	murf   *murfStub
}

func newTestEnv(t *testing.T, sttKey, ttsKey string, stt *fakeSTT, murf *murfStub) *testEnv {
	t.Helper()

	log := logger.NewZapLogger(zap.NewNop().Sugar())

	tts := speech.NewMurfClient(ttsKey, murf.srv.URL, murf.srv.Client(), log)
	svc := speech.NewService(
		stt, config.Credential{Env: "ASSEMBLYAI_API_KEY", Value: sttKey},
		tts, config.Credential{Env: "MURF_API_KEY", Value: ttsKey},
		nil,
		log,
	)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"),
		[]byte(`<html>{{range .Voices}}<option>{{.ID}}</option>{{end}}</html>`), 0o644))

	r := chi.NewRouter()
	RegisterRoutes(r, NewSpeechHandler(svc, log), NewPageHandler(dir, svc.Voices(), log), t.TempDir())

	return &testEnv{router: r, stt: stt, murf: murf}
}

func (e *testEnv) do(req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func echoRequest(t *testing.T, data []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", "recording.webm")
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/tts/echo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func generateRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/generate-tts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "a", "m", &fakeSTT{}, newMurfStub(t, 200, `{}`))

	rec, body := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestListVoices(t *testing.T) {
	env := newTestEnv(t, "", "", &fakeSTT{}, newMurfStub(t, 200, `{}`))

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/voices", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Voices []speech.Voice `json:"voices"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, speech.Catalog(), body.Voices)
}

func TestGenerateTTS(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"https://murf.ai/out.mp3"}`)
	env := newTestEnv(t, "a", "m", &fakeSTT{}, murf)

	rec, body := env.do(generateRequest(`{"text":"Hello world","voice_id":"en_US_charles"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "https://murf.ai/out.mp3", body["audio_url"])
	assert.Equal(t, "Audio generated successfully", body["message"])
	assert.Equal(t, "Hello world", body["text"])
	assert.Equal(t, "en-US-charles", body["voice_id"])

	assert.Equal(t, map[string]string{"text": "Hello world", "voiceId": "en-US-charles", "format": "mp3"}, murf.last)
}

func TestGenerateTTSExplicitEmptyFields(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"u"}`)
	env := newTestEnv(t, "a", "m", &fakeSTT{}, murf)

	rec, body := env.do(generateRequest(`{"text":"hi","voice_id":"","format":""}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", body["voice_id"])
	assert.Equal(t, map[string]string{"text": "hi", "voiceId": "", "format": ""}, murf.last)

	rec, _ = env.do(generateRequest(`{"text":"hi"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"text": "hi", "voiceId": "en-US-charles", "format": "mp3"}, murf.last)
}

func TestGenerateTTSUpstreamStatus(t *testing.T) {
	murf := newMurfStub(t, http.StatusServiceUnavailable, `upstream overloaded`)
	env := newTestEnv(t, "a", "m", &fakeSTT{}, murf)

	rec, body := env.do(generateRequest(`{"text":"hi"}`))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, body["detail"], "upstream overloaded")
}

func TestGenerateTTSMissingKey(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"u"}`)
	env := newTestEnv(t, "a", "", &fakeSTT{}, murf)

	rec, body := env.do(generateRequest(`{"text":"hi"}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body["detail"], "MURF_API_KEY")
	assert.Zero(t, atomic.LoadInt32(&murf.calls))
}

func TestGenerateTTSInvalidBody(t *testing.T) {
	env := newTestEnv(t, "a", "m", &fakeSTT{}, newMurfStub(t, 200, `{}`))

	for _, payload := range []string{`not json`, `{"voice_id":"en-US-julia"}`} {
		rec, body := env.do(generateRequest(payload))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, payload)
		assert.NotEmpty(t, body["detail"], payload)
	}
}

func TestEcho(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"https://murf.ai/echo.mp3"}`)
	stt := &fakeSTT{text: "testing one two"}
	env := newTestEnv(t, "a", "m", stt, murf)

	rec, body := env.do(echoRequest(t, []byte("webm-bytes")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://murf.ai/echo.mp3", body["audio_url"])
	assert.Equal(t, "testing one two", body["transcript"])
	assert.Equal(t, "en-US-charles", body["voice_id"])

	assert.Equal(t, "recording.webm", stt.got.Name)
	assert.Equal(t, []byte("webm-bytes"), stt.got.Data)
	assert.Equal(t, "en-US-charles", murf.last["voiceId"])
}

func TestEchoEmptyTranscript(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"u"}`)
	env := newTestEnv(t, "a", "m", &fakeSTT{text: ""}, murf)

	rec, body := env.do(echoRequest(t, []byte("silence")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No transcription result.", body["detail"])
	assert.Zero(t, atomic.LoadInt32(&murf.calls))
}

func TestEchoMissingSTTKey(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"u"}`)
	stt := &fakeSTT{text: "hi"}
	env := newTestEnv(t, "", "m", stt, murf)

	rec, body := env.do(echoRequest(t, []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "ASSEMBLYAI_API_KEY not found in environment variables", body["detail"])
	assert.Nil(t, stt.got.Data)
	assert.Zero(t, atomic.LoadInt32(&murf.calls))
}

func TestEchoUpstreamStatus(t *testing.T) {
	murf := newMurfStub(t, http.StatusBadRequest, `{"errorMessage":"Invalid voice"}`)
	env := newTestEnv(t, "a", "m", &fakeSTT{text: "hi"}, murf)

	rec, body := env.do(echoRequest(t, []byte("x")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["detail"], `{"errorMessage":"Invalid voice"}`)
}

func TestEchoTranscriberRejected(t *testing.T) {
	murf := newMurfStub(t, http.StatusOK, `{"audioFile":"u"}`)
	stt := &fakeSTT{err: &speech.UpstreamError{Provider: "AssemblyAI", StatusCode: http.StatusUnauthorized, Body: "Invalid API key"}}
	env := newTestEnv(t, "a", "m", stt, murf)

	rec, body := env.do(echoRequest(t, []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "echo failed: transcribe: AssemblyAI API error: Invalid API key (status 401)", body["detail"])
	assert.Zero(t, atomic.LoadInt32(&murf.calls))
}

func TestEchoMissingAudioURL(t *testing.T) {
	env := newTestEnv(t, "a", "m", &fakeSTT{text: "hi"}, newMurfStub(t, http.StatusOK, `{}`))

	rec, body := env.do(echoRequest(t, []byte("x")))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, body["detail"], "echo failed")
}

func TestEchoMissingFile(t *testing.T) {
	env := newTestEnv(t, "a", "m", &fakeSTT{text: "hi"}, newMurfStub(t, 200, `{}`))

	req := httptest.NewRequest(http.MethodPost, "/tts/echo", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")

	rec, _ := env.do(req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestIndex(t *testing.T) {
	env := newTestEnv(t, "", "", &fakeSTT{}, newMurfStub(t, 200, `{}`))

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<option>en-AU-kylie</option>")
}

func TestIndexMissingTemplate(t *testing.T) {
	log := logger.NewZapLogger(zap.NewNop().Sugar())
	h := NewPageHandler(t.TempDir(), nil, log)

	rec := httptest.NewRecorder()
	h.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
