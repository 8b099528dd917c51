package routers

import (
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachNotificationRoutes(router chi.Router, middlewares *middlewares.Middlewares, notificationController *controllers.NotificationController) {
	router.Use(middlewares.Authenticate)

	router.Get("/my", notificationController.ListMine)
	router.Put("/read-all", notificationController.MarkAllRead)
	router.Put("/{notificationId}/read", notificationController.MarkRead)
	router.Delete("/delete-read", notificationController.DeleteRead)
}
