package routers

import (
	"fmt"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/delivery/http/controllers"
	"meetocure-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	slotController *controllers.SlotController,
	appointmentController *controllers.AppointmentController,
	notificationController *controllers.NotificationController,
	onboardingController *controllers.OnboardingController,
	realtimeController *controllers.RealtimeController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.Realtime.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))
	router.Use(middlewares.GlobalRateLimiter())
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/doctors/{doctorId}", func(r chi.Router) {
				attachSlotRoutes(r, middlewares, slotController)
				attachOnboardingRoutes(r, middlewares, onboardingController)
			})

			r.Route("/doctor", func(r chi.Router) {
				attachVerificationStatusRoutes(r, middlewares, onboardingController)
			})

			r.Route("/appointments", func(r chi.Router) {
				attachAppointmentRoutes(r, middlewares, appointmentController)
			})

			r.Route("/notifications", func(r chi.Router) {
				attachNotificationRoutes(r, middlewares, notificationController)
			})

			r.Route("/ws", func(r chi.Router) {
				attachRealtimeRoutes(r, middlewares, realtimeController)
			})
		})
	})
}
