package onboarding

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/app/models"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/dto/responses"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type onboardingUsecase struct {
	OnboardingRepository contracts.OnboardingRepository
	DoctorRepository     contracts.DoctorRepository
	Storage              contracts.Storage
	EventPublisher       contracts.LifecycleEventPublisher
	InternalConfig       *config.InternalConfig
	Log                  *zap.Logger
	now                  func() time.Time
	newSubmissionID      func() string
}

var (
	onboardingUsecaseInstance contracts.OnboardingUsecase
	onceOnboardingUsecase     sync.Once
)

func NewOnboardingUsecase(
	onboardingRepository contracts.OnboardingRepository,
	doctorRepository contracts.DoctorRepository,
	storage contracts.Storage,
	eventPublisher contracts.LifecycleEventPublisher,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.OnboardingUsecase {
	onceOnboardingUsecase.Do(func() {
		onboardingUsecaseInstance = &onboardingUsecase{
			OnboardingRepository: onboardingRepository,
			DoctorRepository:     doctorRepository,
			Storage:              storage,
			EventPublisher:       eventPublisher,
			InternalConfig:       internalConfig,
			Log:                  logger,
			now:                  time.Now,
			newSubmissionID:      uuid.NewString,
		}
	})
	return onboardingUsecaseInstance
}

// Submit creates the doctor's verification record under review, or moves a
// rejected record back under review with the newly uploaded documents.
func (uc *onboardingUsecase) Submit(ctx context.Context, session *models.Session, doctorID string, request *requests.SubmitVerification) (*models.DoctorVerification, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	if !session.HasRole(constvars.RoleDoctor) || session.UserID != doctorID {
		return nil, exceptions.ErrActorNotAuthorized(nil, session.UserID, "verification submit")
	}

	utils.SanitizeSubmitVerificationRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	if err := checkDocuments(request.Documents, uc.maxDocumentSize()); err != nil {
		return nil, exceptions.ErrInvalidDocument(err)
	}

	doctor, err := uc.DoctorRepository.FindByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, exceptions.ErrDoctorNotFound(nil, doctorID)
	}

	existing, err := uc.OnboardingRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	var from models.RegistrationStatus
	if existing != nil {
		from = existing.RegistrationStatus
		switch from {
		case models.RegistrationStatusRejected:
		case models.RegistrationStatusVerified:
			return nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientVerificationAlreadyVerified, string(from), string(models.RegistrationStatusUnderReview))
		default:
			return nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientVerificationAlreadySubmitted, string(from), string(models.RegistrationStatusUnderReview))
		}
	}

	record, err := uc.buildRecord(doctorID, request)
	if err != nil {
		return nil, err
	}
	record.SubmissionID = uc.newSubmissionID()
	record.Documents, err = uc.uploadDocuments(ctx, doctorID, record.SubmissionID, request.Documents)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	if existing == nil {
		record.ID = utils.GenerateDocumentID()
		record.SetCreatedAtUpdatedAt(now)
		err = uc.OnboardingRepository.Insert(ctx, record)
		if err != nil {
			uc.discardDocuments(ctx, record.Documents)
		}
		if exceptions.IsKind(err, exceptions.KindDuplicate) {
			return nil, exceptions.ErrIllegalTransition(err, constvars.ErrClientVerificationAlreadySubmitted, string(models.RegistrationStatusUnderReview), string(models.RegistrationStatusUnderReview))
		}
		if err != nil {
			return nil, err
		}
	} else {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.SetUpdatedAt(now)
		replaced, err := uc.OnboardingRepository.ReplaceIfStatus(ctx, record, models.RegistrationStatusRejected)
		if err != nil || !replaced {
			uc.discardDocuments(ctx, record.Documents)
		}
		if err != nil {
			return nil, err
		}
		if !replaced {
			return nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientVerificationAlreadySubmitted, string(from), string(models.RegistrationStatusUnderReview))
		}
	}

	uc.mirrorDoctorStatus(ctx, doctorID, record.RegistrationStatus)
	uc.publish(ctx, uc.buildEvent(doctorID, from, record.RegistrationStatus, "", session, now))
	uc.presignDocuments(ctx, record.Documents)
	return record, nil
}

func (uc *onboardingUsecase) Approve(ctx context.Context, session *models.Session, doctorID string) (*responses.VerificationStatus, error) {
	return uc.review(ctx, session, doctorID, models.RegistrationStatusVerified, "")
}

func (uc *onboardingUsecase) Reject(ctx context.Context, session *models.Session, doctorID string, request *requests.RejectVerification) (*responses.VerificationStatus, error) {
	if !session.HasRole(constvars.RoleHospital, constvars.RoleAdmin) {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role)
	}
	utils.SanitizeRejectVerificationRequest(request)
	if err := utils.ValidateStruct(request); err != nil {
		return nil, exceptions.ErrInputValidation(err)
	}
	return uc.review(ctx, session, doctorID, models.RegistrationStatusRejected, request.Message)
}

// review moves a record out of review. Reviewers are hospital or admin
// accounts; the record must still be under review when the write lands.
func (uc *onboardingUsecase) review(ctx context.Context, session *models.Session, doctorID string, to models.RegistrationStatus, message string) (*responses.VerificationStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.review called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingToStatusKey, string(to)),
	)

	if !session.HasRole(constvars.RoleHospital, constvars.RoleAdmin) {
		return nil, exceptions.ErrRoleNotAllowed(nil, session.Role)
	}

	record, err := uc.OnboardingRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrVerificationNotFound(nil, doctorID)
	}

	from := record.RegistrationStatus
	if from != models.RegistrationStatusUnderReview {
		return nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientVerificationNotUnderReview, string(from), string(to))
	}

	swapped, err := uc.OnboardingRepository.CompareAndSetStatus(ctx, doctorID, from, to, message, session.UserID)
	if err != nil {
		return nil, err
	}
	if !swapped {
		current := from
		if latest, err := uc.OnboardingRepository.FindByDoctorID(ctx, doctorID); err == nil && latest != nil {
			current = latest.RegistrationStatus
		}
		return nil, exceptions.ErrIllegalTransition(nil, constvars.ErrClientVerificationNotUnderReview, string(current), string(to))
	}

	uc.mirrorDoctorStatus(ctx, doctorID, to)
	uc.publish(ctx, uc.buildEvent(doctorID, from, to, message, session, uc.now()))
	return &responses.VerificationStatus{
		DoctorID:           doctorID,
		RegistrationStatus: string(to),
		Message:            message,
	}, nil
}

func (uc *onboardingUsecase) GetStatus(ctx context.Context, doctorID string) (*responses.VerificationStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.GetStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	record, err := uc.OnboardingRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, exceptions.ErrVerificationNotFound(nil, doctorID)
	}

	status := &responses.VerificationStatus{
		DoctorID:           doctorID,
		RegistrationStatus: string(record.RegistrationStatus),
	}
	if record.RegistrationStatus == models.RegistrationStatusRejected {
		status.Message = record.ReviewMessage
	}
	return status, nil
}

func (uc *onboardingUsecase) buildRecord(doctorID string, request *requests.SubmitVerification) (*models.DoctorVerification, error) {
	aadhaarHash, err := utils.HashIdentityNumber(request.AadhaarNumber)
	if err != nil {
		return nil, exceptions.ErrHashIdentityNumber(err)
	}
	panHash, err := utils.HashIdentityNumber(request.PanNumber)
	if err != nil {
		return nil, exceptions.ErrHashIdentityNumber(err)
	}

	return &models.DoctorVerification{
		DoctorID:                         doctorID,
		FullName:                         request.FullName,
		Gender:                           request.Gender,
		DateOfBirth:                      request.DateOfBirth,
		MedicalCouncilRegistrationNumber: request.MedicalCouncilRegistrationNumber,
		MedicalCouncilName:               request.MedicalCouncilName,
		YearOfRegistration:               request.YearOfRegistration,
		PrimarySpecialization:            request.PrimarySpecialization,
		AdditionalSpecializations:        splitSpecializations(request.AdditionalSpecializations),
		Category:                         request.Category,
		Qualifications:                   toQualifications(request.Qualifications),
		ExperienceYears:                  request.ExperienceYears,
		Affiliations:                     toAffiliations(request.Affiliations),
		AadhaarNumberHash:                aadhaarHash,
		AadhaarNumberMasked:              utils.MaskIdentityNumber(request.AadhaarNumber),
		PanNumberHash:                    panHash,
		PanNumberMasked:                  utils.MaskIdentityNumber(request.PanNumber),
		DigitalSignatureCertificateID:    request.DigitalSignatureCertificateID,
		RegistrationStatus:               models.RegistrationStatusUnderReview,
	}, nil
}

func (uc *onboardingUsecase) uploadDocuments(ctx context.Context, doctorID, submissionID string, documents []requests.UploadedDocument) ([]models.VerificationDocument, error) {
	bucket := uc.bucketName()
	indexes := make(map[string]int)
	uploaded := make([]models.VerificationDocument, 0, len(documents))
	for _, document := range documents {
		index := indexes[document.Field]
		indexes[document.Field]++

		name, err := uc.Storage.UploadFile(ctx, bucket, objectName(doctorID, submissionID, document.Field, index, document.FileName), document.Content, document.Size, document.ContentType)
		if err != nil {
			uc.Log.Error("onboardingUsecase.uploadDocuments upload failed",
				zap.String(constvars.LoggingBucketNameKey, bucket),
				zap.String(constvars.LoggingDoctorIDKey, doctorID),
				zap.Error(err),
			)
			uc.discardDocuments(ctx, uploaded)
			return nil, err
		}
		uploaded = append(uploaded, models.VerificationDocument{
			Field:       document.Field,
			ObjectName:  name,
			ContentType: document.ContentType,
			Size:        document.Size,
		})
	}
	return uploaded, nil
}

// discardDocuments removes uploads that no stored record points at. A failed
// removal is logged and left for the bucket lifecycle policy.
func (uc *onboardingUsecase) discardDocuments(ctx context.Context, documents []models.VerificationDocument) {
	for _, document := range documents {
		if err := uc.Storage.RemoveFile(ctx, uc.bucketName(), document.ObjectName); err != nil {
			uc.Log.Warn("onboardingUsecase.discardDocuments failed",
				zap.String(constvars.LoggingObjectNameKey, document.ObjectName),
				zap.Error(err),
			)
		}
	}
}

// presignDocuments fills short-lived download links for the response. A link
// that cannot be signed is left empty.
func (uc *onboardingUsecase) presignDocuments(ctx context.Context, documents []models.VerificationDocument) {
	expiry := time.Hour
	if uc.InternalConfig != nil && uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHour > 0 {
		expiry = time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryTimeInHour) * time.Hour
	}
	for i := range documents {
		url, err := uc.Storage.GetObjectUrlWithExpiryTime(ctx, uc.bucketName(), documents[i].ObjectName, expiry)
		if err != nil {
			uc.Log.Warn("onboardingUsecase.presignDocuments failed",
				zap.String(constvars.LoggingObjectNameKey, documents[i].ObjectName),
				zap.Error(err),
			)
			continue
		}
		documents[i].URL = url
	}
}

// mirrorDoctorStatus copies the outcome onto the doctor profile. The
// verification record stays authoritative, so a failed copy is only logged.
func (uc *onboardingUsecase) mirrorDoctorStatus(ctx context.Context, doctorID string, status models.RegistrationStatus) {
	if err := uc.DoctorRepository.UpdateRegistrationStatus(ctx, doctorID, status); err != nil {
		uc.Log.Error("onboardingUsecase.mirrorDoctorStatus failed",
			zap.String(constvars.LoggingDoctorIDKey, doctorID),
			zap.Error(err),
		)
	}
}

func (uc *onboardingUsecase) buildEvent(doctorID string, from, to models.RegistrationStatus, message string, session *models.Session, now time.Time) *models.LifecycleEvent {
	return &models.LifecycleEvent{
		EventID:       utils.GenerateDeterministicID(string(models.LifecycleEventOnboarding), doctorID, string(to), strconv.FormatInt(now.UnixNano(), 10)),
		Kind:          models.LifecycleEventOnboarding,
		DoctorID:      doctorID,
		FromStatus:    string(from),
		ToStatus:      string(to),
		ActorID:       session.UserID,
		ActorRole:     session.Role,
		ReviewMessage: message,
		OccurredAt:    now,
	}
}

func (uc *onboardingUsecase) publish(ctx context.Context, event *models.LifecycleEvent) {
	if uc.EventPublisher == nil {
		return
	}
	if err := uc.EventPublisher.Publish(ctx, event); err != nil {
		uc.Log.Error("onboardingUsecase.publish lifecycle event lost",
			zap.String(constvars.LoggingEventIDKey, event.EventID),
			zap.String(constvars.LoggingDoctorIDKey, event.DoctorID),
			zap.Error(err),
		)
	}
}

func (uc *onboardingUsecase) bucketName() string {
	if uc.InternalConfig == nil {
		return ""
	}
	return uc.InternalConfig.Minio.BucketName
}

func (uc *onboardingUsecase) maxDocumentSize() int64 {
	if uc.InternalConfig == nil || uc.InternalConfig.Minio.DocumentMaxUploadSizeInMB <= 0 {
		return 0
	}
	return uc.InternalConfig.Minio.DocumentMaxUploadSizeInMB << 20
}
