package user

// Discriminator for UpdateRequest. Anything outside these two values is
// rejected, both by binding and by the service.
type UpdateType string

const (
	UpdateName  UpdateType = "NAME"
	UpdateEmail UpdateType = "EMAIL"
)

type SignUpRequest struct {
	FirstName string `json:"firstName" binding:"required,min=1,max=80"`
	LastName  string `json:"lastName" binding:"required,min=1,max=80"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8,max=72"`
}

type UpdateRequest struct {
	Type      UpdateType `json:"type" binding:"required,oneof=NAME EMAIL"`
	FirstName string     `json:"firstName" binding:"omitempty,max=80"`
	LastName  string     `json:"lastName" binding:"omitempty,max=80"`
	Email     string     `json:"email" binding:"omitempty,email"`
}
