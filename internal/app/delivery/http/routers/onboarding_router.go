package routers

import (
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"
	"meetocure-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachOnboardingRoutes(router chi.Router, middlewares *middlewares.Middlewares, onboardingController *controllers.OnboardingController) {
	router.Route("/verification", func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.With(middlewares.RequireRoles(constvars.RoleDoctor)).Post("/", onboardingController.Submit)
		r.With(middlewares.RequireRoles(constvars.RoleHospital, constvars.RoleAdmin)).Put("/approve", onboardingController.Approve)
		r.With(middlewares.RequireRoles(constvars.RoleHospital, constvars.RoleAdmin)).Put("/reject", onboardingController.Reject)
	})
}

func attachVerificationStatusRoutes(router chi.Router, middlewares *middlewares.Middlewares, onboardingController *controllers.OnboardingController) {
	router.With(middlewares.Authenticate).Get("/verification-status/{doctorId}", onboardingController.GetStatus)
}
