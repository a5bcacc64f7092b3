package models

import "github.com/google/uuid"

// SessionUser is the authenticated principal resolved from the request's
// JWT once per request and passed explicitly into the service functions.
type SessionUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Image string    `json:"image"`
}
