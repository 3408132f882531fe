package auth

import "campus/internal/users"

// TokenPair is an access+refresh token pair issued together.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// authentication response returned by login and refresh flows
type AuthResponse struct {
	User         *users.ProfileResponse `json:"user"`
	AccessToken  string                 `json:"access_token"`
	RefreshToken string                 `json:"refresh_token"`
	ExpiresIn    int64                  `json:"expires_in"`
}

// registration response; no tokens until the email is verified
type RegisterResponse struct {
	User    *users.ProfileResponse `json:"user"`
	Message string                 `json:"message"`
}
