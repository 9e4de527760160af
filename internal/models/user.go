package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row in PostgreSQL. Journal entries reference it by the
// string form of ID and live in MongoDB.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}
