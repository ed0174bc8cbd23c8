package speech

import "context"

// Audio — загруженный клиентом файл, передаётся провайдеру как есть
type Audio struct {
	Name        string
	ContentType string
	Data        []byte
}

type STTClient interface {
	Transcribe(ctx context.Context, audio Audio) (string, error) // голос → текст
}

type TTSClient interface {
	// Synthesize возвращает ссылку на аудио, которое хостит провайдер
	Synthesize(ctx context.Context, req SynthesisRequest) (string, error)
}

type SynthesisRequest struct {
	Text    string
	VoiceID string
	Format  string
}

type EchoResult struct {
	AudioURL   string `json:"audio_url"`
	Transcript string `json:"transcript"`
	VoiceID    string `json:"voice_id"`
}

type SynthesisResult struct {
	AudioURL string
	Text     string
	VoiceID  string
}

type Service interface {
	Echo(ctx context.Context, audio Audio) (*EchoResult, error)
	Generate(ctx context.Context, req SynthesisRequest) (*SynthesisResult, error)
	Voices() []Voice
}
