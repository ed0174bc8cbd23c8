package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	STTAssemblyAI = "assemblyai"
	STTOpenAI     = "openai"
	STTDeepgram   = "deepgram"
)

// Credential — ключ провайдера вместе с именем переменной, из которой он взят.
// Пустое значение не ошибка при старте: сервис сообщит о нём на первом запросе.
type Credential struct {
	Env   string
	Value string
}

type Config struct {
	Port string

	STTProvider string
	STTKey      Credential
	TTSKey      Credential

	AssemblyAIURL          string
	AssemblyAIPollInterval time.Duration
	AssemblyAITimeout      time.Duration
	DeepgramURL            string
	OpenAIURL              string
	MurfURL                string

	ProviderTimeout time.Duration

	TemplatesDir string
	StaticDir    string

	TelegramToken       string
	TelegramAdminChatID int64
}

// Load читает окружение один раз при старте. godotenv.Load вызывается в main до этого.
func Load() (*Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (*Config, error) {
	env := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:          env("PORT", "8080"),
		STTProvider:   strings.ToLower(env("STT_PROVIDER", STTAssemblyAI)),
		TTSKey:        Credential{Env: "MURF_API_KEY", Value: getenv("MURF_API_KEY")},
		AssemblyAIURL: env("ASSEMBLYAI_API_URL", ""),
		DeepgramURL:   env("DEEPGRAM_API_URL", ""),
		OpenAIURL:     env("OPENAI_API_URL", ""),
		MurfURL:       env("MURF_API_URL", ""),
		TemplatesDir:  env("TEMPLATES_DIR", "templates"),
		StaticDir:     env("STATIC_DIR", "static"),
		TelegramToken: env("TELEGRAM_BOT_TOKEN", ""),
	}

	switch cfg.STTProvider {
	case STTAssemblyAI:
		cfg.STTKey = Credential{Env: "ASSEMBLYAI_API_KEY", Value: getenv("ASSEMBLYAI_API_KEY")}
	case STTOpenAI:
		cfg.STTKey = Credential{Env: "OPENAI_API_KEY", Value: getenv("OPENAI_API_KEY")}
	case STTDeepgram:
		cfg.STTKey = Credential{Env: "DEEPGRAM_API_KEY", Value: getenv("DEEPGRAM_API_KEY")}
	default:
		return nil, fmt.Errorf("unknown STT_PROVIDER %q", cfg.STTProvider)
	}

	var err error

	if cfg.ProviderTimeout, err = parseDuration(env("PROVIDER_TIMEOUT", "60s")); err != nil {
		return nil, fmt.Errorf("PROVIDER_TIMEOUT: %w", err)
	}
	if cfg.AssemblyAIPollInterval, err = parseDuration(env("ASSEMBLYAI_POLL_INTERVAL", "3s")); err != nil {
		return nil, fmt.Errorf("ASSEMBLYAI_POLL_INTERVAL: %w", err)
	}
	if cfg.AssemblyAITimeout, err = parseDuration(env("ASSEMBLYAI_TIMEOUT", "5m")); err != nil {
		return nil, fmt.Errorf("ASSEMBLYAI_TIMEOUT: %w", err)
	}

	if v := env("TELEGRAM_ADMIN_CHAT_ID", ""); v != "" {
		if cfg.TelegramAdminChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}

	return cfg, nil
}

func parseDuration(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", v)
	}
	return d, nil
}
