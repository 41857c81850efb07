package dto

// RegisterRequest is the payload for user registration. College and
// student number are conditionally required depending on the role; the
// service enforces that after binding.
type RegisterRequest struct {
	Email         string  `json:"email" binding:"required,email" example:"s.nakato@students.mak.ac.ug"`
	Password      string  `json:"password" binding:"required,min=8" example:"Password123!"`
	FirstName     string  `json:"firstName" binding:"required" example:"Sarah"`
	LastName      string  `json:"lastName" binding:"required" example:"Nakato"`
	RoleType      string  `json:"roleType" binding:"required" example:"STUDENT"`
	College       *string `json:"college,omitempty" example:"COCIS"`
	PhoneNumber   string  `json:"phoneNumber,omitempty" example:"+256700000000"`
	StudentNumber *string `json:"studentNumber,omitempty" example:"2300701234"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"s.nakato@students.mak.ac.ug"`
	Password string `json:"password" binding:"required" example:"Password123!"`
}

// RefreshTokenRequest redeems a refresh token for a new pair
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// TokenResponse carries the issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"` // Access token lifetime in seconds
}

// AuthResponse is returned on successful registration or login
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
