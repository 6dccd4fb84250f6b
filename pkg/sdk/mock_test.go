package prodsearch

import (
	"context"
	"time"

	"github.com/kailas-cloud/prodsearch/internal/db"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/request"
	"github.com/kailas-cloud/prodsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/prodsearch/internal/usecase/health"
	indexinguc "github.com/kailas-cloud/prodsearch/internal/usecase/indexing"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, p request.Params) result.Result
}

func (m *mockSearchUC) Search(ctx context.Context, p request.Params) result.Result {
	return m.searchFn(ctx, p)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- indexingUseCase mock ---

type mockIndexingUC struct {
	recreateFn func(ctx context.Context, now time.Time) (*indexinguc.Report, error)
}

func (m *mockIndexingUC) Recreate(ctx context.Context, now time.Time) (*indexinguc.Report, error) {
	return m.recreateFn(ctx, now)
}

// --- db.Engine mock ---

type mockEngine struct {
	db.Engine
	pingErr error
	closed  bool
}

func (m *mockEngine) Ping(_ context.Context) error { return m.pingErr }

func (m *mockEngine) Close() { m.closed = true }
