package speech

import "strings"

const (
	DefaultVoiceID = "en-US-charles"
	DefaultFormat  = "mp3"

	// EchoVoiceID не настраивается: эхо всегда отвечает одним голосом
	EchoVoiceID = "en-US-charles"
)

type Voice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

var catalog = []Voice{
	{ID: "en-US-charles", Name: "Charles (US English)", Language: "en-US"},
	{ID: "en-US-julia", Name: "Julia (US English)", Language: "en-US"},
	{ID: "en-IN-aarav", Name: "Aarav (Indian English)", Language: "en-IN"},
	{ID: "en-UK-juliet", Name: "Juliet (UK English)", Language: "en-UK"},
	{ID: "en-AU-kylie", Name: "Kylie (Australian English)", Language: "en-AU"},
}

// Catalog — копия статического списка голосов Murf
func Catalog() []Voice {
	out := make([]Voice, len(catalog))
	copy(out, catalog)
	return out
}

// NormalizeVoiceID — Murf ждёт дефисы: en_US_charles → en-US-charles
func NormalizeVoiceID(id string) string {
	return strings.ReplaceAll(id, "_", "-")
}
