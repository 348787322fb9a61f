package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	Username       string
	Email          *string // nil if user didn't provide it
	HashedPassword string
}
