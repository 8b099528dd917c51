package controllers

import (
	"context"
	"meetocure-service/internal/app/config"
	"meetocure-service/internal/app/contracts"
	"meetocure-service/internal/pkg/constvars"
	"meetocure-service/internal/pkg/dto/requests"
	"meetocure-service/internal/pkg/exceptions"
	"meetocure-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SlotController struct {
	Log            *zap.Logger
	SlotUsecase    contracts.SlotUsecase
	InternalConfig *config.InternalConfig
}

func NewSlotController(logger *zap.Logger, slotUsecase contracts.SlotUsecase, internalConfig *config.InternalConfig) *SlotController {
	return &SlotController{
		Log:            logger,
		SlotUsecase:    slotUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *SlotController) GetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r, "SlotController.GetAvailability")
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

	response, err := ctrl.SlotUsecase.GetAvailability(ctx, doctorID)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "SlotUsecase.GetAvailability", err)
		return
	}

	ctrl.Log.Info("SlotController.GetAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.Int(constvars.LoggingResponseLengthKey, len(response.Days)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, response)
}

func (ctrl *SlotController) SearchSlots(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r, "SlotController.SearchSlots")
	if !ok {
		return
	}

	doctorID := chi.URLParam(r, constvars.URLParamDoctorID)
	if doctorID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, constvars.URLParamDoctorID))
		return
	}

	request := new(requests.SearchSlots)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("SlotController.SearchSlots error parsing body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	response, err := ctrl.SlotUsecase.SearchSlots(ctx, doctorID, request)
	if err != nil {
		writeUsecaseError(ctrl.Log, w, requestID, "SlotUsecase.SearchSlots", err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SearchSlotsSuccessMessage, response)
}
