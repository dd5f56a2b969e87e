package service

import (
	"context"

	"github.com/okian/swingsheet/internal/adapters/workbook"
	"github.com/okian/swingsheet/internal/domain/model"
)

// Discoverer finds report candidates in a browser history store.
type Discoverer interface {
	Discover(ctx context.Context, path string) ([]model.ReportCandidate, error)
}

// TokenSource resolves and saves the vendor bearer token.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Save(token string) error
}

// ReportAPI is the vendor report service.
type ReportAPI interface {
	Metadata(ctx context.Context, token, id string) (model.ReportMetadata, error)
	FetchReport(ctx context.Context, token, id string) ([]byte, error)
}

// RawStore keeps the raw report payload.
type RawStore interface {
	Save(ctx context.Context, body []byte) (string, error)
	Load(ctx context.Context, path string) ([]byte, error)
}

// Synthesizer builds a workbook from a raw payload.
type Synthesizer interface {
	SynthesizeJSON(ctx context.Context, raw []byte) (*workbook.Workbook, error)
}
