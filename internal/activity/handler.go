package activity

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/carbon-tracker/internal/auth"
	"github.com/redmonkez12/carbon-tracker/internal/httputil"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateActivityRequest represents the log-activity request body.
// Amount may be sent as a JSON number or a numeric string.
type CreateActivityRequest struct {
	ActivityType string      `json:"activity_type"`
	Amount       json.Number `json:"amount" swaggertype:"number"`
}

// List returns the caller's activities
// @Summary      List activities
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Activity
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      403 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /activities [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	activities, err := h.service.List(r.Context(), userID)
	if err != nil {
		logger.Error("failed to list activities", "user_id", userID.String(), "error", err.Error())
		httputil.RespondErrorWithCode(w, "Failed to retrieve activities", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, activities, http.StatusOK)
}

// Create logs a new activity
// @Summary      Log an activity
// @Description  Computes emission = amount x factor for the activity type, rounded to 2 decimals
// @Tags         activities
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body CreateActivityRequest true "Activity"
// @Success      201 {object} Activity
// @Failure      400 {object} httputil.ErrorResponse "Missing type or bad amount"
// @Failure      404 {object} httputil.ErrorResponse "Emission factor not found"
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /activities [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid activity request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	amount, err := req.Amount.Float64()
	if err != nil {
		httputil.RespondErrorWithCode(w, ErrInvalidAmount.Error(), httputil.CodeInvalidAmount, http.StatusBadRequest)
		return
	}

	a, err := h.service.Log(r.Context(), userID, req.ActivityType, amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrActivityTypeRequired):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeActivityTypeRequired, http.StatusBadRequest)
		case errors.Is(err, ErrInvalidAmount):
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeInvalidAmount, http.StatusBadRequest)
		case errors.Is(err, ErrFactorNotFound):
			httputil.RespondErrorWithCode(w, "Emission factor not found.", httputil.CodeEmissionFactorNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to log activity", "user_id", userID.String(), "error", err.Error())
			httputil.RespondErrorWithCode(w, "Failed to log activity.", httputil.CodeInternalError, http.StatusInternalServerError)
		}
		return
	}

	httputil.RespondJSON(w, a, http.StatusCreated)
}

// Summary returns emission totals for the caller
// @Summary      Activity summary
// @Tags         activities
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} Summary
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      403 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /activities/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to summarize activities", "error", err.Error())
		httputil.RespondErrorWithCode(w, "failed to summarize activities", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, summary, http.StatusOK)
}
