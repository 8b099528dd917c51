package routers

import (
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachRealtimeRoutes(router chi.Router, middlewares *middlewares.Middlewares, realtimeController *controllers.RealtimeController) {
	router.With(middlewares.Authenticate).Get("/", realtimeController.Connect)
}
