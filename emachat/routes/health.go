package routes

import (
	"emachat/emachat/controllers"

	"github.com/go-chi/chi/v5"
)

func HealthRoutes(ctrl *controllers.HealthController) chi.Router {
	r := chi.NewRouter()
	r.Get("/", ctrl.HealthCheck)
	return r
}

// NewRouter wires the companion bot under /stream/chatbot and health under
// /health.
func NewRouter(bot *controllers.BotController) chi.Router {
	r := chi.NewRouter()
	r.Mount("/stream/chatbot", ChatbotRoutes(bot))
	r.Mount("/health", HealthRoutes(controllers.NewHealthController(bot.Sessions)))
	return r
}
