package users

// profile update payload; identity fields (email, role, national id) are immutable here
type UpdateProfileRequest struct {
	FirstName   string `json:"first_name,omitempty" validate:"omitempty,min=2,max=50"`
	LastName    string `json:"last_name,omitempty" validate:"omitempty,min=2,max=50"`
	Gender      string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}
