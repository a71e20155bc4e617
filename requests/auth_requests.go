package requests

// LoginRequest is the validated body for exchanging credentials for a token
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var loginMessages = map[string]string{
	"email.required":    "Email is required.",
	"email.email":       "Enter a valid email address.",
	"password.required": "Password is required.",
}

// Validate runs the declarative rules
func (r *LoginRequest) Validate() Errors {
	return runValidation(r, loginMessages)
}
