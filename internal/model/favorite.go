package model

import (
	"time"

	"github.com/google/uuid"
)

// Favorite links a user to one of their favorite movies.
// The (UserID, MovieID) pair is unique.
type Favorite struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	MovieID   uuid.UUID
	CreatedAt time.Time

	// Movie is filled when the favorite is loaded expanded.
	Movie *Movie
}
