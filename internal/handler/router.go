package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yosoybienestar/chat-bienestar/backend/internal/handler/chat"
	middlewarePkg "github.com/yosoybienestar/chat-bienestar/backend/internal/middleware"
	chatservice "github.com/yosoybienestar/chat-bienestar/backend/internal/service/chat"
	"github.com/yosoybienestar/chat-bienestar/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the session registry.
func NewRouter(chatSvc *chatservice.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler := chat.New(chatSvc)

	r.Route("/api", func(api chi.Router) {
		chatHandler.RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]any{
				"status":   "ok",
				"sessions": chatSvc.Count(),
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
