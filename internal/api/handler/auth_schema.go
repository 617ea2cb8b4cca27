package handler

type sendOTPRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	OTP      string `json:"otp"      validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resetResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}
