package store

import (
	"context"
	"maps"
	"slices"

	"fjacquet/gl-analyzer/internal/models"
)

var _ SessionStore = (*MockSessionStore)(nil)

// MockSessionStore is an in-memory SessionStore for tests.
type MockSessionStore struct {
	Session *Session

	LoadError  error
	SaveError  error
	ResetError error

	SaveCalls int
}

// Load returns a copy of the stored session, or a fresh one.
func (m *MockSessionStore) Load(_ context.Context) (Session, error) {
	if m.LoadError != nil {
		return Session{}, m.LoadError
	}
	if m.Session == nil {
		return NewSession(), nil
	}
	return cloneSession(*m.Session), nil
}

// Save stores a copy of s.
func (m *MockSessionStore) Save(_ context.Context, s Session) error {
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	c := cloneSession(s)
	m.Session = &c
	return nil
}

// Reset forgets the stored session.
func (m *MockSessionStore) Reset(_ context.Context) error {
	if m.ResetError != nil {
		return m.ResetError
	}
	m.Session = nil
	return nil
}

// Close is a no-op.
func (m *MockSessionStore) Close() error { return nil }

func cloneSession(s Session) Session {
	out := s
	out.Overrides = maps.Clone(s.Overrides)
	out.KPIAdjustments = maps.Clone(s.KPIAdjustments)
	out.Goals = slices.Clone(s.Goals)
	out.SortOrder = make(map[models.BucketID][]string, len(s.SortOrder))
	for k, v := range s.SortOrder {
		out.SortOrder[k] = slices.Clone(v)
	}
	out.normalize()
	return out
}
