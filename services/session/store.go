// Package session provides the conversation session store. The agent mutates
// a session only through the turn controller; the store's job is durable
// get/put with eviction after inactivity.
package session

import (
	"context"

	"tablebooker/models"
)

// Store is the session lifecycle interface. Get returns a fresh session for
// an unknown id, so callers never handle a not-found case.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, sess *models.Session) error
	Expire(ctx context.Context, id string) error

	// Lock serializes turns for one session: no two turns for the same
	// session may interleave, since the merge policy is not safe under
	// concurrent mutation. Different sessions proceed independently.
	Lock(id string) (unlock func())
}
