package routers

import (
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachSlotRoutes(router chi.Router, middlewares *middlewares.Middlewares, slotController *controllers.SlotController) {
	router.With(middlewares.Authenticate).Get("/availability", slotController.GetAvailability)
	router.With(middlewares.Authenticate).Post("/availability/search", slotController.SearchSlots)
}
