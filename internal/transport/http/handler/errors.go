package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid credentials"
	errUserNotFound       = "User not found"
	errUserExists         = "User already exists"
	errAlreadyVerified    = "Email is already verified"
	errInvalidCode        = "Invalid verification code"
	errCodeExpired        = "Verification code has expired"
	errMailNotConfigured  = "Email service unavailable"
	errMailDelivery       = "Failed to send verification email"
	errAINotConfigured    = "AI service unavailable"
	errNoUpdatableFields  = "No valid fields to update"
)
