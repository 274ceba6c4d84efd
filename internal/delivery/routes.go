package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterRoutes mounts the relay. ratePerMinute <= 0 disables the per-IP
// limiter; /health is never limited.
func RegisterRoutes(r chi.Router, h *RelayHandler, ratePerMinute int) {
	// --- health ---
	r.With(httputil.RecoverMiddleware).Get("/health", h.Health)

	// --- pipeline ---
	r.Group(func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)
		if ratePerMinute > 0 {
			pr.Use(httprate.Limit(
				ratePerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
				}),
			))
		}

		pr.Post("/transcribe-file", h.TranscribeFile)
		pr.Post("/transcribe", h.Transcribe)
	})
}
