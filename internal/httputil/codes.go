package httputil

// Machine-readable error codes returned alongside error messages
const (
	CodeInvalidRequestBody = "INVALID_REQUEST_BODY"
	CodeInternalError      = "INTERNAL_ERROR"

	// Auth
	CodeEmailRequired       = "EMAIL_REQUIRED"
	CodeEmailAndOTPRequired = "EMAIL_AND_OTP_REQUIRED"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidOTP          = "INVALID_OTP"
	CodeOTPExpired          = "OTP_EXPIRED"
	CodeMissingAuth         = "MISSING_AUTHENTICATION"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeLoginCodeDelivery   = "LOGIN_CODE_DELIVERY_FAILED"
	CodeLoginVerification   = "LOGIN_VERIFICATION_FAILED"
	CodeProfileUnavailable  = "PROFILE_UNAVAILABLE"

	// Activities
	CodeEmissionFactorNotFound = "EMISSION_FACTOR_NOT_FOUND"
	CodeActivityTypeRequired   = "ACTIVITY_TYPE_REQUIRED"
	CodeInvalidAmount          = "INVALID_AMOUNT"

	// Advice
	CodeMessageRequired = "MESSAGE_REQUIRED"
)
