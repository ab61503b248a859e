package auth

// LoginRequest represents the request body for a PIN login
type LoginRequest struct {
	PIN string `json:"pin" validate:"required"`
}

// LoginResponse carries the resolved role and its session token
type LoginResponse struct {
	Role  string `json:"role"`
	Token string `json:"token"`
}

// UpdatePINsRequest represents the request body for rotating PINs.
// Omitted fields are left unchanged.
type UpdatePINsRequest struct {
	AdminPIN *string `json:"admin_pin,omitempty"`
	UserPIN  *string `json:"user_pin,omitempty"`
}
