// Package session keeps rendered charts alive between requests so clients
// can ask pick queries against them.
//
// A [Session] holds the SVG of one render together with the pick function
// the render produced. Pick functions are closures over the drawn layout,
// so sessions live in process memory: [MemoryStore] is the only backend.
//
// # Usage
//
//	res, err := runner.Draw(ctx, opts)
//	if err != nil {
//	    return err
//	}
//	sess := session.New(res, session.DefaultTTL)
//	store.Put(ctx, sess)
//
//	// Later, on a pointer event
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err // SESSION_NOT_FOUND when unknown or expired
//	}
//	p, ok := sess.Pick(canvas.Point{X: x, Y: y})
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
)

// Default limits.
const (
	// DefaultTTL is how long a session lives after it is created.
	DefaultTTL = 30 * time.Minute

	// DefaultMaxSessions bounds a MemoryStore.
	DefaultMaxSessions = 1024
)

// Session is one rendered chart that answers pick queries.
type Session struct {
	ID        string          `json:"id"`
	Title     string          `json:"title,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	SVG       []byte          `json:"-"`
	Pick      pipeline.PickFn `json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// New creates a session for a render result. res must carry a pick
// function, as results of [pipeline.Runner.Draw] do.
func New(res *pipeline.Result, ttl time.Duration) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Width:     res.Width,
		Height:    res.Height,
		SVG:       res.Artifacts["svg"],
		Pick:      res.Pick,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if res.Document != nil {
		s.Title = res.Document.Title
	}
	return s
}

// IsExpired reports whether the session has passed its expiry at now.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID. Unknown and expired sessions are
	// SESSION_NOT_FOUND errors.
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores a session, replacing any session with the same ID.
	Put(ctx context.Context, s *Session) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions and returns how many it removed.
	Cleanup(ctx context.Context) (int, error)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeSessionNotFound, "session %q not found", id)
}

// ValidID reports whether id is a well-formed session ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
