package advice

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

type RecommendationResponse struct {
	Tip string `json:"tip"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

// Recommendation returns a personalized reduction tip
// @Summary      Get a recommendation
// @Tags         advice
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} RecommendationResponse
// @Failure      401 {object} httputil.ErrorResponse
// @Failure      403 {object} httputil.ErrorResponse
// @Failure      500 {object} httputil.ErrorResponse
// @Router       /api/recommendation [get]
func (h *Handler) Recommendation(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	tip, err := h.service.Recommendation(r.Context(), userID)
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).Error("failed to build recommendation", "user_id", userID.String(), "error", err.Error())
		httputil.RespondErrorWithCode(w, "Could not fetch recommendation.", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, RecommendationResponse{Tip: tip}, http.StatusOK)
}

// Chat answers a sustainability question
// @Summary      Ask the chatbot
// @Tags         advice
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body ChatRequest true "Message"
// @Success      200 {object} ChatResponse
// @Failure      400 {object} httputil.ErrorResponse "Message is required"
// @Router       /api/chatbot [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.RespondErrorWithCode(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	reply, err := h.service.Chat(req.Message)
	if err != nil {
		if errors.Is(err, ErrMessageRequired) {
			httputil.RespondErrorWithCode(w, err.Error(), httputil.CodeMessageRequired, http.StatusBadRequest)
			return
		}
		httputil.RespondErrorWithCode(w, "failed to answer", httputil.CodeInternalError, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ChatResponse{Reply: reply}, http.StatusOK)
}
