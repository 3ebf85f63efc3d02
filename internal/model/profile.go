package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient Role = "client"
	RoleDoctor Role = "doctor"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleDoctor
}

// Profile is an identity record. Immutable after creation except by the
// owning user. Exactly one doctor profile is expected per clinic instance;
// that is an operational invariant, not a schema constraint.
type Profile struct {
	ID           uuid.UUID `db:"id" json:"id"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Email        string    `db:"email" json:"email"`
	Role         Role      `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

func (p *Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
