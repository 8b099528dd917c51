package controllers

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
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
	InternalConfig     *config.InternalConfig
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase, internalConfig *config.InternalConfig) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
		InternalConfig:     internalConfig,
	}
}

func (ctrl *AppointmentController) Book(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "AppointmentController.Book")
	if !ok {
		return
	}

	request := new(requests.BookAppointment)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("AppointmentController.Book error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.Book(ctx, session, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.Book", err)
		return
	}

	ctrl.Log.Info("AppointmentController.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.BookAppointmentSuccessMessage, &responses.BookAppointment{
		AppointmentID: appointment.ID,
		Status:        string(appointment.Status),
	})
}

func (ctrl *AppointmentController) ListMine(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "AppointmentController.ListMine")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	appointments, err := ctrl.AppointmentUsecase.ListForPatient(ctx, session)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.ListForPatient", err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListMine succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointments)
}

func (ctrl *AppointmentController) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "AppointmentController.ListForDoctor")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	query := &requests.DoctorAppointmentsQuery{Date: r.URL.Query().Get(constvars.QueryParamDate)}
	appointments, err := ctrl.AppointmentUsecase.ListForDoctor(ctx, session, query)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.ListForDoctor", err)
		return
	}

	ctrl.Log.Info("AppointmentController.ListForDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(appointments)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointments)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, "AppointmentController.FindByID")
	if !ok {
		return
	}

	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamAppointmentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	appointment, err := ctrl.AppointmentUsecase.FindByID(ctx, session, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "AppointmentUsecase.FindByID", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) Accept(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.Accept", ctrl.AppointmentUsecase.Accept, constvars.AcceptAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) Complete(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.Complete", ctrl.AppointmentUsecase.Complete, constvars.CompleteAppointmentSuccessMessage)
}

func (ctrl *AppointmentController) Cancel(w http.ResponseWriter, r *http.Request) {
	ctrl.transition(w, r, "AppointmentController.Cancel", ctrl.AppointmentUsecase.Cancel, constvars.CancelAppointmentSuccessMessage)
}

type transitionFunc func(ctx context.Context, session *models.Session, appointmentID string) (*models.Appointment, error)

func (ctrl *AppointmentController) transition(w http.ResponseWriter, r *http.Request, method string, apply transitionFunc, successMessage string) {
	requestID, session, ok := requestScope(ctrl.Log, w, r, method)
	if !ok {
		return
	}

	appointmentID := chi.URLParam(r, constvars.URLParamAppointmentID)
	if appointmentID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamAppointmentID))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	appointment, err := apply(ctx, session, appointmentID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, method, err)
		return
	}

	ctrl.Log.Info(method+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointment.ID),
		zap.String(constvars.LoggingToStatusKey, string(appointment.Status)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, successMessage, &responses.AppointmentTransition{
		AppointmentID: appointment.ID,
		Status:        string(appointment.Status),
	})
}
