package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
)

type DoctorRepository interface {
	FindByID(ctx context.Context, doctorID string) (*models.Doctor, error)
	UpdateRegistrationStatus(ctx context.Context, doctorID string, status models.RegistrationStatus) error
}

type PatientRepository interface {
	FindByID(ctx context.Context, patientID string) (*models.Patient, error)
}
