package contracts

import (
	"context"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
)

type OnboardingRepository interface {
	FindByDoctorID(ctx context.Context, doctorID string) (*models.DoctorVerification, error)
	// Insert fails with a DuplicateError when a record for the
	// doctor already exists.
	Insert(ctx context.Context, record *models.DoctorVerification) error
	// ReplaceIfStatus overwrites the stored record only while its status still
	// equals from. It reports whether the write happened.
	ReplaceIfStatus(ctx context.Context, record *models.DoctorVerification, from models.RegistrationStatus) (bool, error)
	CompareAndSetStatus(ctx context.Context, doctorID string, from, to models.RegistrationStatus, reviewMessage, reviewedBy string) (bool, error)
}

type OnboardingUsecase interface {
	Submit(ctx context.Context, session *models.Session, doctorID string, request *requests.SubmitVerification) (*models.DoctorVerification, error)
	Approve(ctx context.Context, session *models.Session, doctorID string) (*responses.VerificationStatus, error)
	Reject(ctx context.Context, session *models.Session, doctorID string, request *requests.RejectVerification) (*responses.VerificationStatus, error)
	GetStatus(ctx context.Context, doctorID string) (*responses.VerificationStatus, error)
}
