package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	json "github.com/goccy/go-json"
)

const MurfDefaultURL = "https://api.murf.ai/v1/speech/generate"

type MurfClient struct {
	apiKey  string
	url     string
	httpCli *http.Client
	log     *logger.ZapLogger
}

func NewMurfClient(apiKey, url string, httpCli *http.Client, log *logger.ZapLogger) *MurfClient {
	if url == "" {
		url = MurfDefaultURL
	}
	if httpCli == nil {
		httpCli = http.DefaultClient
	}

	return &MurfClient{
		apiKey:  apiKey,
		url:     url,
		httpCli: httpCli,
		log:     log,
	}
}

type murfRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
	Format  string `json:"format"`
}

// TEXT → SPEECH (URL)
func (c *MurfClient) Synthesize(ctx context.Context, in SynthesisRequest) (string, error) {
	payload, err := json.Marshal(murfRequest{
		Text:    in.Text,
		VoiceID: in.VoiceID,
		Format:  in.Format,
	})
	if err != nil {
		return "", fmt.Errorf("encode murf request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("murf request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read murf response: %w", err)
	}

	c.log.Log(logger.LogEntry{
		Level:   "info",
		Message: fmt.Sprintf("[murf] voice=%s format=%s status=%d", in.VoiceID, in.Format, resp.StatusCode),
	})

	if resp.StatusCode != http.StatusOK {
		return "", &UpstreamError{Provider: "Murf", StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var parsed struct {
		AudioFile string `json:"audioFile"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode murf: %w", err)
	}

	return parsed.AudioFile, nil
}
