package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role controls what a signed-in user may see in the UI.
// Storage only; no server-side authorization is derived from it.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleVolunteer Role = "Volunteer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVolunteer
}

// TwoFactorAuth holds the TOTP enrollment state for a user.
// TempSecret is set during enrollment and promoted to Secret once confirmed.
type TwoFactorAuth struct {
	Enabled    bool    `bson:"enabled" json:"enabled"`
	Secret     *string `bson:"secret" json:"-"`
	TempSecret *string `bson:"temp_secret" json:"-"`
}

// User represents a volunteer or admin account.
// PasswordHash is the only form the password ever takes at rest.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty" example:"683cdb8aa96ad71e8e075bd1"`
	FirstName     string        `bson:"first_name,omitempty" json:"first_name,omitempty" example:"Dana"`
	LastName      string        `bson:"last_name,omitempty" json:"last_name,omitempty" example:"Reyes"`
	Username      string        `bson:"username" json:"username" example:"dreyes"`
	Email         string        `bson:"email" json:"email" example:"dana@example.com"`
	PasswordHash  string        `bson:"password_hash" json:"-" example:"$2a$12$1234567890"`
	Role          Role          `bson:"role" json:"role" example:"Volunteer"`
	TwoFactorAuth TwoFactorAuth `bson:"two_factor_auth" json:"two_factor_auth"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at" example:"2025-06-01T23:00:26.005703677Z"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at" example:"2025-06-01T23:00:26.005703677Z"`
}

// UpdateUser carries a partial profile update. A nil field is left untouched.
// Password, when set, is a new plaintext; the service hashes it exactly once
// before it reaches a repository.
type UpdateUser struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Username  *string `json:"username,omitempty" validate:"omitempty,min=1"`
	Password  *string `json:"password,omitempty" validate:"omitempty,password"`
	Role      *Role   `json:"role,omitempty"`
}
