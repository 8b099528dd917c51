package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
)

type AvailabilityRepository interface {
	FindByDoctorID(ctx context.Context, doctorID string) (*models.Availability, error)
}

type SlotUsecase interface {
	GetAvailability(ctx context.Context, doctorID string) (*responses.Availability, error)
	GetSlotsForDate(ctx context.Context, doctorID, date string) ([]string, error)
	SearchSlots(ctx context.Context, doctorID string, request *requests.SearchSlots) (*responses.SearchSlots, error)
}
