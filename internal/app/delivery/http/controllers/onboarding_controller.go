package controllers

import (
	"context"
	"fmt"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const multipartMemoryLimit = 32 << 20

type OnboardingController struct {
	Log               *zap.Logger
	OnboardingUsecase contracts.OnboardingUsecase
	InternalConfig    *config.InternalConfig
}

func NewOnboardingController(logger *zap.Logger, onboardingUsecase contracts.OnboardingUsecase, internalConfig *config.InternalConfig) *OnboardingController {
	return &OnboardingController{
		Log:               logger,
		OnboardingUsecase: onboardingUsecase,
		InternalConfig:    internalConfig,
	}
}

func (ctrl *OnboardingController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "OnboardingController.Submit")
	if !ok {
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		ctrl.Log.Error("OnboardingController.Submit error parsing multipart form",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	request, err := parseSubmitVerificationForm(r.MultipartForm)
	if err != nil {
		ctrl.Log.Error("OnboardingController.Submit error reading form fields",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}

	documents, closeDocuments, err := openUploadedDocuments(r.MultipartForm)
	if err != nil {
		ctrl.Log.Error("OnboardingController.Submit error opening uploaded files",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseMultipartForm(err))
		return
	}
	defer closeDocuments()
	request.Documents = documents

	ctx, cancel := context.WithTimeout(r.Context(), 4*requestTimeout(ctrl.InternalConfig))
	defer cancel()

	record, err := ctrl.OnboardingUsecase.Submit(ctx, session, doctorID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "OnboardingUsecase.Submit", err)
		return
	}

	ctrl.Log.Info("OnboardingController.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingCountKey, len(record.Documents)))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitVerificationSuccessMessage, record)
}

func (ctrl *OnboardingController) Approve(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "OnboardingController.Approve")
	if !ok {
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	response, err := ctrl.OnboardingUsecase.Approve(ctx, session, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "OnboardingUsecase.Approve", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApproveVerificationSuccessMessage, response)
}

func (ctrl *OnboardingController) Reject(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "OnboardingController.Reject")
	if !ok {
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	request := new(requests.RejectVerification)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("OnboardingController.Reject error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	response, err := ctrl.OnboardingUsecase.Reject(ctx, session, doctorID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "OnboardingUsecase.Reject", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RejectVerificationSuccessMessage, response)
}

func (ctrl *OnboardingController) GetStatus(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r, "OnboardingController.GetStatus")
	if !ok {
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	response, err := ctrl.OnboardingUsecase.GetStatus(ctx, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "OnboardingUsecase.GetStatus", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetVerificationStatusSuccessMessage, response)
}

// parseSubmitVerificationForm reads the text parts of the onboarding form.
// Qualifications and affiliations arrive as JSON encoded strings.
func parseSubmitVerificationForm(form *multipart.Form) (*requests.SubmitVerification, error) {
	value := func(key string) string {
		if values := form.Value[key]; len(values) > 0 {
			return strings.TrimSpace(values[0])
		}
		return ""
	}
	number := func(key string) (int, error) {
		raw := value(key)
		if raw == "" {
			return 0, nil
		}
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("field %s must be a number", key)
		}
		return parsed, nil
	}

	request := &requests.SubmitVerification{
		FullName:                         value("fullName"),
		Gender:                           value("gender"),
		DateOfBirth:                      value("dateOfBirth"),
		MedicalCouncilRegistrationNumber: value("medicalCouncilRegistrationNumber"),
		MedicalCouncilName:               value("medicalCouncilName"),
		PrimarySpecialization:            value("primarySpecialization"),
		AdditionalSpecializations:        value("additionalSpecializations"),
		Category:                         value("category"),
		AadhaarNumber:                    value("aadhaarNumber"),
		PanNumber:                        value("panNumber"),
		DigitalSignatureCertificateID:    value("digitalSignatureCertificateId"),
	}

	var err error
	if request.YearOfRegistration, err = number("yearOfRegistration"); err != nil {
		return nil, err
	}
	if request.ExperienceYears, err = number("experienceYears"); err != nil {
		return nil, err
	}
	if raw := value("qualifications"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &request.Qualifications); err != nil {
			return nil, fmt.Errorf("field qualifications: %w", err)
		}
	}
	if raw := value("clinicHospitalAffiliations"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &request.Affiliations); err != nil {
			return nil, fmt.Errorf("field clinicHospitalAffiliations: %w", err)
		}
	}
	return request, nil
}

// openUploadedDocuments opens every file part. The returned func closes them
// and must run after the upload finished.
func openUploadedDocuments(form *multipart.Form) ([]requests.UploadedDocument, func(), error) {
	var (
		documents []requests.UploadedDocument
		opened    []multipart.File
	)
	closeAll := func() {
		for _, file := range opened {
			file.Close()
		}
	}

	for field, headers := range form.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				closeAll()
				return nil, func() {}, err
			}
			opened = append(opened, file)

			contentType := header.Header.Get(constvars.HeaderContentType)
			if contentType == "" {
				contentType = constvars.MIMEOctetStream
			}
			documents = append(documents, requests.UploadedDocument{
				Field:       field,
				FileName:    header.Filename,
				ContentType: contentType,
				Size:        header.Size,
				Content:     file,
			})
		}
	}
	return documents, closeAll, nil
}
