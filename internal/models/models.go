package models

import "encoding/json"

// Inspection types accepted by the store. The payload itself is opaque; only
// the discriminator is validated.
const (
	TypeLidar = "lidar"
	TypeSAR   = "sar"
)

// StatusCompleted is the default lifecycle status for new inspections.
const StatusCompleted = "completed"

// ValidType reports whether t is a known inspection discriminator.
func ValidType(t string) bool {
	return t == TypeLidar || t == TypeSAR
}

type User struct {
	ID           int64  `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	Name         string `json:"name" db:"name"`
	PasswordHash string `json:"-" db:"password_hash"`
	Created      int64  `json:"createdAt" db:"created_at"`
}

// Inspection is one survey record. Data is stored verbatim and never
// interpreted; Created and Updated are unix epoch milliseconds.
type Inspection struct {
	ID      int64           `json:"id" db:"id"`
	UserID  int64           `json:"userId" db:"user_id"`
	Type    string          `json:"type" db:"type"`
	Data    json.RawMessage `json:"data" db:"data"`
	Status  string          `json:"status" db:"status"`
	Created int64           `json:"createdAt" db:"created_at"`
	Updated int64           `json:"updatedAt" db:"updated_at"`
}
