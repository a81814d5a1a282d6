package models

import "github.com/google/uuid"

// ensureID assigns a random id when the caller did not provide one, so
// inserts behave the same on postgres and sqlite.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
