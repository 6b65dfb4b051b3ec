// Package store persists computed indicator reports for later retrieval.
// The engine itself is stateless; persistence is a caller-side concern and
// lives entirely here.
package store

import (
	"context"
	"time"

	"github.com/lumir-ai/tbi-engine/internal/tbi"
)

// ReportRecord is one persisted report with its storage metadata.
type ReportRecord struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"` // normalized profile name
	Report    *tbi.Report `json:"report"`
	CreatedAt time.Time   `json:"created_at"`
}

// ReportFilter specifies criteria for listing stored reports. From bounds
// the creation time from below when set.
type ReportFilter struct {
	Name   string    `json:"name,omitempty"`
	From   time.Time `json:"from,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Offset int       `json:"offset,omitempty"`
}

// Store defines the persistence interface for computed reports.
type Store interface {
	SaveReport(ctx context.Context, report *tbi.Report) (*ReportRecord, error)
	GetReport(ctx context.Context, id string) (*ReportRecord, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]ReportRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
