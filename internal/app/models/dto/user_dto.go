package dto

// UpdateProfileRequest represents profile update data
type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required"`
	Mobile    *string `json:"mobile,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
