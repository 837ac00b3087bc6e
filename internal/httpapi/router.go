package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdelaire/postbridge/adapters/telegram_webhook"
	"github.com/jdelaire/postbridge/core"
	"github.com/jdelaire/postbridge/internal/httpapi/middleware"
)

// maxBodyBytes bounds a webhook delivery. Telegram updates are far smaller.
const maxBodyBytes = 1 << 20

// Version is reported by the health endpoint.
var Version = "dev"

// NewRouter creates the HTTP router serving the webhook, health and metrics
// endpoints.
func NewRouter(logger *slog.Logger, webhook *telegram_webhook.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Metrics first so every request is counted.
	r.Use(middleware.Metrics)
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", health)

	r.Post(core.WebhookPath, webhook.Deliver)
	r.Get(core.WebhookPath, webhook.Action)

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": Version,
	})
}
