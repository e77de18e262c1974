package session

import "context"

// Store persists sessions. Implementations: Redis (deployed) and in-mem
// (dev/tests). Get must return ErrNotFound for unknown or expired IDs.
type Store interface {
	Create(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	// Save overwrites an existing session (e.g. after a profile update
	// refreshes the cached user blob).
	Save(ctx context.Context, sess Session) error
	// SaveAccessToken persists the outcome of a refresh-token exchange
	// without touching the rest of the session.
	SaveAccessToken(ctx context.Context, id, access string) error
	Delete(ctx context.Context, id string) error
}
