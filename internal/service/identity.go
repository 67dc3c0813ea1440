package service

import "github.com/google/uuid"

// Identity is the authenticated operator, passed explicitly through every
// service boundary instead of living in a package-level session singleton.
type Identity struct {
	ID   string
	Name string
	Role string
}

// UserUUID parses the identity id, returning nil for system/automated callers
func (i Identity) UserUUID() *uuid.UUID {
	if parsed, err := uuid.Parse(i.ID); err == nil {
		return &parsed
	}
	return nil
}
