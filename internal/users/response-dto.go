package users

import "time"

// user data in responses, without credential or token material
type ProfileResponse struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	NationalID   string     `json:"national_id"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Gender       string     `json:"gender,omitempty"`
	PhoneNumber  string     `json:"phone_number,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	Country      string     `json:"country,omitempty"`
	ProfileImage string     `json:"profile_image,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToProfileResponse(u *User) *ProfileResponse {
	return &ProfileResponse{
		ID:           u.ID.String(),
		Email:        u.Email,
		Role:         string(u.Role),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		NationalID:   u.NationalID,
		DateOfBirth:  u.DateOfBirth,
		Gender:       u.Gender,
		PhoneNumber:  u.PhoneNumber,
		Address:      u.Address,
		City:         u.City,
		Country:      u.Country,
		ProfileImage: u.ProfileImage,
		IsVerified:   u.IsVerified,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
