package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// Patch lists the mutable fields of a User. Nil fields are left unchanged.
type Patch struct {
	Name *string
}

// Profile is the public view of a User returned by the API.
type Profile struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  *string   `json:"name"`
}

// Profile returns the public view of u. An empty name is reported as null.
func (u *User) Profile() Profile {
	p := Profile{ID: u.ID, Email: u.Email}
	if u.Name != "" {
		name := u.Name
		p.Name = &name
	}
	return p
}
