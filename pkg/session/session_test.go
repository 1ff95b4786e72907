package session

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/chartgrid/pkg/chart/layout"
	"github.com/matzehuels/chartgrid/pkg/document"
	"github.com/matzehuels/chartgrid/pkg/errors"
	"github.com/matzehuels/chartgrid/pkg/pipeline"
	"github.com/matzehuels/chartgrid/pkg/render/canvas"
)

func stub(id string, expires time.Time) *Session {
	return &Session{ID: id, ExpiresAt: expires}
}

func TestNew(t *testing.T) {
	res := &pipeline.Result{
		Document:  &document.Document{Title: "T"},
		Width:     300,
		Height:    200,
		Artifacts: map[string][]byte{"svg": []byte("<svg/>")},
		Pick: func(canvas.Point) (pipeline.Pick, bool) {
			return pipeline.Pick{Kind: layout.PickTitle, Text: "T"}, true
		},
	}
	s := New(res, time.Minute)
	if !ValidID(s.ID) {
		t.Errorf("ID %q is not a uuid", s.ID)
	}
	if s.Title != "T" || s.Width != 300 || s.Height != 200 || string(s.SVG) != "<svg/>" {
		t.Errorf("New() = %+v", s)
	}
	if got := s.ExpiresAt.Sub(s.CreatedAt); got != time.Minute {
		t.Errorf("ttl = %v, want %v", got, time.Minute)
	}
	if p, ok := s.Pick(canvas.Point{}); !ok || p.Text != "T" {
		t.Errorf("Pick() = %v, %v", p, ok)
	}
	if other := New(res, time.Minute); other.ID == s.ID {
		t.Error("session IDs should be unique")
	}
}

func TestValidID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"", false},
		{"../etc/passwd", false},
	}
	for _, tt := range tests {
		if got := ValidID(tt.id); got != tt.want {
			t.Errorf("ValidID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore(0)
	m.now = func() time.Time { return now }

	if err := m.Put(ctx, stub("a", now.Add(time.Minute))); err != nil {
		t.Fatal(err)
	}
	s, err := m.Get(ctx, "a")
	if err != nil || s.ID != "a" {
		t.Fatalf("Get(a) = %v, %v", s, err)
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want %s", err, errors.ErrCodeSessionNotFound)
	}

	if err := m.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(ctx, "a"); err == nil {
		t.Error("Get() after Delete() should fail")
	}
	if err := m.Delete(ctx, "a"); err != nil {
		t.Errorf("Delete() of unknown session error = %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore(0)
	m.now = func() time.Time { return now }

	_ = m.Put(ctx, stub("old", now.Add(time.Second)))
	_ = m.Put(ctx, stub("new", now.Add(time.Hour)))

	now = now.Add(time.Minute)
	if _, err := m.Get(ctx, "old"); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("expired Get() error = %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1 after expired Get()", m.Len())
	}

	_ = m.Put(ctx, stub("old2", now.Add(-time.Second)))
	n, err := m.Cleanup(ctx)
	if err != nil || n != 1 {
		t.Errorf("Cleanup() = %d, %v, want 1", n, err)
	}
	if _, err := m.Get(ctx, "new"); err != nil {
		t.Errorf("Get(new) error = %v", err)
	}
}

func TestMemoryStoreExpiredGetKeepsReplacement(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore(0)
	m.now = func() time.Time { return now }

	stale := stub("id", now.Add(-time.Second))
	_ = m.Put(ctx, stale)
	fresh := stub("id", now.Add(time.Hour))
	_ = m.Put(ctx, fresh)

	// A Get that read stale before fresh was stored removes it afterwards.
	m.removeExpired(stale)
	got, err := m.Get(ctx, "id")
	if err != nil {
		t.Fatalf("Get() error = %v, replacement was dropped", err)
	}
	if got != fresh {
		t.Error("Get() should return the replacement session")
	}

	m.removeExpired(fresh)
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}

func TestMemoryStoreEviction(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore(2)
	m.now = func() time.Time { return now }

	_ = m.Put(ctx, stub("soon", now.Add(time.Minute)))
	_ = m.Put(ctx, stub("late", now.Add(time.Hour)))
	_ = m.Put(ctx, stub("third", now.Add(2*time.Hour)))

	if m.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", m.Len())
	}
	if _, err := m.Get(ctx, "soon"); err == nil {
		t.Error("the session closest to expiry should be evicted")
	}

	// Replacing an existing ID never evicts.
	_ = m.Put(ctx, stub("late", now.Add(3*time.Hour)))
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMemoryStoreRun(t *testing.T) {
	m := NewMemoryStore(0)
	_ = m.Put(context.Background(), stub("gone", time.Now().Add(-time.Second)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for m.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
}
