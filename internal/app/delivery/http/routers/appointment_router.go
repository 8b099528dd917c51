package routers

import (
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"
	"meetocure-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	router.Use(middlewares.Authenticate)

	router.With(middlewares.RequireRoles(constvars.RolePatient), middlewares.BookingRateLimiter()).Post("/", appointmentController.Book)
	router.With(middlewares.RequireRoles(constvars.RolePatient)).Get("/my", appointmentController.ListMine)
	router.With(middlewares.RequireRoles(constvars.RoleDoctor)).Get("/doctor", appointmentController.ListForDoctor)

	router.Route("/{appointmentId}", func(r chi.Router) {
		r.Get("/", appointmentController.FindByID)
		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Put("/accept", appointmentController.Accept)
		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Put("/complete", appointmentController.Complete)
		r.With(middlewares.RequireRoles(constvars.RolePatient, constvars.RoleDoctor)).Put("/cancel", appointmentController.Cancel)
	})
}
