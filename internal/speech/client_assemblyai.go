package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/dustin/go-humanize"
	json "github.com/goccy/go-json"
)

const (
	AssemblyAIDefaultURL      = "https://api.assemblyai.com"
	AssemblyAIDefaultInterval = 3 * time.Second
	AssemblyAIDefaultTimeout  = 5 * time.Minute
)

// AssemblyAIClient загружает аудио, создаёт транскрипцию и ждёт её готовности
type AssemblyAIClient struct {
	apiKey   string
	baseURL  string
	interval time.Duration
	timeout  time.Duration
	client   *http.Client
	log      *logger.ZapLogger
}

// timeout ограничивает весь Transcribe целиком: загрузку, создание и поллинг
func NewAssemblyAIClient(apiKey, baseURL string, interval, timeout time.Duration, client *http.Client, log *logger.ZapLogger) *AssemblyAIClient {
	if baseURL == "" {
		baseURL = AssemblyAIDefaultURL
	}
	if interval <= 0 {
		interval = AssemblyAIDefaultInterval
	}
	if timeout <= 0 {
		timeout = AssemblyAIDefaultTimeout
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &AssemblyAIClient{
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		interval: interval,
		timeout:  timeout,
		client:   client,
		log:      log,
	}
}

type assemblyTranscript struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio Audio) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[assemblyai] upload %s", humanize.Bytes(uint64(len(audio.Data)))),
	})

	var upload struct {
		UploadURL string `json:"upload_url"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/upload", "application/octet-stream", bytes.NewReader(audio.Data), &upload); err != nil {
		return "", fmt.Errorf("assemblyai upload: %w", err)
	}

	body, err := json.Marshal(map[string]any{"audio_url": upload.UploadURL})
	if err != nil {
		return "", err
	}

	var tr assemblyTranscript
	if err := c.do(ctx, http.MethodPost, "/v2/transcript", "application/json", bytes.NewReader(body), &tr); err != nil {
		return "", fmt.Errorf("assemblyai transcript: %w", err)
	}
	if tr.ID == "" {
		return "", fmt.Errorf("assemblyai transcript: empty id, status %q", tr.Status)
	}
	id := tr.ID

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		switch tr.Status {
		case "completed":
			c.log.Log(logger.LogEntry{
				Level:   "info",
				Message: fmt.Sprintf("[assemblyai] transcript %s completed", tr.ID),
			})
			return tr.Text, nil
		case "error":
			return "", fmt.Errorf("assemblyai transcript %s: %s", id, tr.Error)
		case "queued", "processing":
		default:
			return "", fmt.Errorf("assemblyai transcript %s: unexpected status %q", id, tr.Status)
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("assemblyai transcript %s: %w", id, ctx.Err())
		case <-ticker.C:
		}

		if err := c.do(ctx, http.MethodGet, "/v2/transcript/"+id, "", nil, &tr); err != nil {
			return "", fmt.Errorf("assemblyai poll: %w", err)
		}
	}
}

func (c *AssemblyAIClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 300 {
		return &UpstreamError{Provider: "AssemblyAI", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode assemblyai: %w", err)
	}

	return nil
}
