package models

import (
	"time"
)

// Token issued by TokenManager on successful login
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
