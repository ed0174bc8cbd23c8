package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hSpeech *SpeechHandler,
	hPages *PageHandler,
	staticDir string,
) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(
			httputil.RecoverMiddleware,
			RequestIDMiddleware,
		)

		// --- страница и статика ---
		pr.Get("/", hPages.Index)
		pr.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

		// --- речь ---
		pr.Post("/tts/echo", hSpeech.Echo)
		pr.Post("/generate-tts", hSpeech.GenerateTTS)

		// --- служебное ---
		pr.Get("/health", Health)
		pr.Get("/api/voices", hSpeech.ListVoices)
	})
}
