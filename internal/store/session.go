// Package store persists the user's analysis session: category overrides,
// manual sort order, KPI adjustments, custom goals and materiality settings.
package store

import (
	"context"
	"fmt"

	"fjacquet/gl-analyzer/internal/models"

	"github.com/shopspring/decimal"
)

// Backends.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Session is the user state kept between invocations.
type Session struct {
	Overrides      map[string]models.BucketID   `json:"overrides" yaml:"overrides"`
	SortOrder      map[models.BucketID][]string `json:"sortOrder" yaml:"sort_order"`
	KPIAdjustments map[string]decimal.Decimal   `json:"kpiAdjustments" yaml:"kpi_adjustments"`
	Goals          []models.Goal                `json:"goals" yaml:"goals"`
	Materiality    models.MaterialitySettings   `json:"materiality" yaml:"materiality"`
}

// NewSession returns an empty session with default materiality settings.
func NewSession() Session {
	return Session{
		Overrides:      map[string]models.BucketID{},
		SortOrder:      map[models.BucketID][]string{},
		KPIAdjustments: map[string]decimal.Decimal{},
		Goals:          []models.Goal{},
		Materiality:    models.DefaultMaterialitySettings(),
	}
}

// normalize fills nil maps and slices and default settings after decoding.
func (s *Session) normalize() {
	if s.Overrides == nil {
		s.Overrides = map[string]models.BucketID{}
	}
	if s.SortOrder == nil {
		s.SortOrder = map[models.BucketID][]string{}
	}
	if s.KPIAdjustments == nil {
		s.KPIAdjustments = map[string]decimal.Decimal{}
	}
	if s.Goals == nil {
		s.Goals = []models.Goal{}
	}
	if s.Materiality.Benchmark == "" {
		s.Materiality = models.DefaultMaterialitySettings()
	}
}

// SetOverride moves every record with the given description to bucket.
func (s *Session) SetOverride(description string, bucket models.BucketID) error {
	if !bucket.Valid() {
		return fmt.Errorf("unknown bucket %q", bucket)
	}
	s.Overrides[description] = bucket
	return nil
}

// ClearOverride removes the override of a description.
func (s *Session) ClearOverride(description string) {
	delete(s.Overrides, description)
}

// SessionStore loads and saves sessions.
type SessionStore interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Reset(ctx context.Context) error
	Close() error
}
