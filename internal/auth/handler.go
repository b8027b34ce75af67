package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/carbon-tracker/internal/httputil"
	"github.com/redmonkez12/carbon-tracker/internal/logging"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email string `json:"email"`
}

// VerifyOTPRequest represents the login code verification request body
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// MessageResponse carries a human-readable acknowledgement
type MessageResponse struct {
	Message string `json:"message"`
}

// VerifyOTPResponse is returned once a login code has been accepted
type VerifyOTPResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ProfileResponse describes the authenticated user
type ProfileResponse struct {
	Email string `json:"email"`
}

// Login sends a one-time login code to the given address
// @Summary      Request a login code
// @Description  Creates the account on first use and e-mails a 6-digit code valid for 10 minutes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Email address"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Email is required"
// @Failure      500 {object} httputil.ErrorResponse "Code could not be stored or sent"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.RequestLoginCode(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrEmailRequired) {
			logger.Warn("login failed: validation error", "error", err.Error())
			respondError(w, "Email is required.", httputil.CodeEmailRequired, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		respondError(w, "Failed to send OTP.", httputil.CodeLoginCodeDelivery, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, MessageResponse{Message: "OTP sent to your email."}, http.StatusOK)
}

// VerifyOTP exchanges a login code for a session token
// @Summary      Verify a login code
// @Description  Consumes the pending code and returns a bearer token valid for 7 days
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body VerifyOTPRequest true "Email and code"
// @Success      200 {object} VerifyOTPResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields, wrong code or expired code"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/verify-otp [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid verify request body", "error", err.Error())
		respondError(w, "invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	token, err := h.service.VerifyLoginCode(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailAndCodeRequired):
			respondError(w, "Email and OTP are required.", httputil.CodeEmailAndOTPRequired, http.StatusBadRequest)
		case errors.Is(err, ErrUserNotFound):
			respondError(w, "User not found.", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrInvalidCode):
			respondError(w, "Invalid OTP.", httputil.CodeInvalidOTP, http.StatusBadRequest)
		case errors.Is(err, ErrCodeExpired):
			respondError(w, "OTP has expired.", httputil.CodeOTPExpired, http.StatusBadRequest)
		default:
			logger.Error("verify failed: internal error", "error", err.Error())
			respondError(w, "Failed to verify OTP.", httputil.CodeLoginVerification, http.StatusInternalServerError)
			return
		}
		logger.Warn("verify failed", "error", err.Error())
		return
	}

	httputil.RespondJSON(w, VerifyOTPResponse{Message: "Login successful!", Token: token}, http.StatusOK)
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ProfileResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing token"
// @Failure      403 {object} httputil.ErrorResponse "Invalid or expired token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, "missing authentication", httputil.CodeMissingAuth, http.StatusUnauthorized)
		return
	}

	u, err := h.service.Profile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			respondError(w, "User not found.", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load profile", "user_id", userID.String(), "error", err.Error())
		respondError(w, "failed to load profile", httputil.CodeProfileUnavailable, http.StatusInternalServerError)
		return
	}

	httputil.RespondJSON(w, ProfileResponse{Email: u.Email}, http.StatusOK)
}

func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
