package main

import (
	"log"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/echo_bot/internal/config"
	"github.com/Vovarama1992/echo_bot/internal/delivery"
	"github.com/Vovarama1992/echo_bot/internal/error_notificator"
	"github.com/Vovarama1992/echo_bot/internal/speech"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// ключи не обязательны на старте — сервис вернёт 500 на первом запросе
	for _, c := range []config.Credential{cfg.STTKey, cfg.TTSKey} {
		if c.Value == "" {
			zl.Log(logger.LogEntry{Level: "warn", Message: c.Env + " is not set", Service: "echo_bot"})
		}
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var errInfra error_notificator.Notificator = error_notificator.NewLogInfra(zl)
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := error_notificator.NewTelegramInfra(cfg.TelegramToken, cfg.TelegramAdminChatID)
		if err != nil {
			zl.Log(logger.LogEntry{Level: "warn", Message: "telegram notifications disabled", Error: err})
		} else {
			errInfra = tg
		}
	}
	errService := error_notificator.NewService(errInfra)

	// =========================================================================
	// CLIENTS (STT / TTS)
	// =========================================================================

	httpCli := &http.Client{Timeout: cfg.ProviderTimeout}

	var sttClient speech.STTClient
	switch cfg.STTProvider {
	case config.STTOpenAI:
		sttClient = speech.NewWhisperClient(cfg.STTKey.Value, cfg.OpenAIURL, httpCli)
	case config.STTDeepgram:
		sttClient = speech.NewDeepgramClient(cfg.STTKey.Value, cfg.DeepgramURL, httpCli)
	default:
		// httpCli — таймаут одного запроса, AssemblyAITimeout — всей транскрипции с поллингом
		sttClient = speech.NewAssemblyAIClient(
			cfg.STTKey.Value, cfg.AssemblyAIURL,
			cfg.AssemblyAIPollInterval, cfg.AssemblyAITimeout,
			httpCli, zl,
		)
	}

	ttsClient := speech.NewMurfClient(cfg.TTSKey.Value, cfg.MurfURL, httpCli, zl)

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	speechService := speech.NewService(
		sttClient, cfg.STTKey,
		ttsClient, cfg.TTSKey,
		errService,
		zl,
	)

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", delivery.RequestIDHeader},
		ExposedHeaders: []string{delivery.RequestIDHeader},
	}))

	// HANDLERS
	speechHandler := delivery.NewSpeechHandler(speechService, zl)
	pageHandler := delivery.NewPageHandler(cfg.TemplatesDir, speechService.Voices(), zl)

	// ROUTES
	delivery.RegisterRoutes(r, speechHandler, pageHandler, cfg.StaticDir)

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + ", stt=" + cfg.STTProvider,
		Service: "echo_bot",
	})

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
