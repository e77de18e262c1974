package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session not found")

// Session is a browser session's token vault: the access/refresh tokens and
// the serialized user blob obtained from the upstream login endpoint. It is
// the server-side counterpart of the SPA's access_token/refresh_token/user
// local-storage keys and is cleared as one unit on logout or on an
// unrecoverable 401.
type Session struct {
	ID           string    `json:"id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserJSON     []byte    `json:"user"`
	CreatedAt    time.Time `json:"created_at"` // UTC
	LastSeenAt   time.Time `json:"last_seen_at"`
}

func New(access, refresh string, userJSON []byte) Session {
	now := time.Now().UTC()
	return Session{
		ID:           uuid.New().String(),
		AccessToken:  access,
		RefreshToken: refresh,
		UserJSON:     userJSON,
		CreatedAt:    now,
		LastSeenAt:   now,
	}
}
