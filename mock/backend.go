// Package mock provides test doubles for evalconsole interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.Backend = (*Backend)(nil)

// Backend is a mock implementation of evalconsole.Backend.
type Backend struct {
	GenerateFn        func(ctx context.Context, req evalconsole.GenerateRequest) (*evalconsole.GenerateResponse, error)
	EvaluateFn        func(ctx context.Context, req evalconsole.EvaluateRequest) (*evalconsole.ReportResponse, error)
	EvaluateOnlyFn    func(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.EvaluationResponse, error)
	MarkdownReportFn  func(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.ReportResponse, error)
	CompareFn         func(ctx context.Context, req evalconsole.CompareRequest) (*evalconsole.CompareResponse, error)
	SaveGoldenCasesFn func(ctx context.Context, req evalconsole.SaveGoldenRequest) error
	UploadCasesFn     func(ctx context.Context, req evalconsole.UploadRequest) (*evalconsole.UploadResponse, error)
	HealthFn          func(ctx context.Context) (*evalconsole.Health, error)
}

func (b *Backend) Generate(ctx context.Context, req evalconsole.GenerateRequest) (*evalconsole.GenerateResponse, error) {
	return b.GenerateFn(ctx, req)
}

func (b *Backend) Evaluate(ctx context.Context, req evalconsole.EvaluateRequest) (*evalconsole.ReportResponse, error) {
	return b.EvaluateFn(ctx, req)
}

func (b *Backend) EvaluateOnly(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.EvaluationResponse, error) {
	return b.EvaluateOnlyFn(ctx, req)
}

func (b *Backend) MarkdownReport(ctx context.Context, req evalconsole.CasesRequest) (*evalconsole.ReportResponse, error) {
	return b.MarkdownReportFn(ctx, req)
}

func (b *Backend) Compare(ctx context.Context, req evalconsole.CompareRequest) (*evalconsole.CompareResponse, error) {
	return b.CompareFn(ctx, req)
}

func (b *Backend) SaveGoldenCases(ctx context.Context, req evalconsole.SaveGoldenRequest) error {
	return b.SaveGoldenCasesFn(ctx, req)
}

func (b *Backend) UploadCases(ctx context.Context, req evalconsole.UploadRequest) (*evalconsole.UploadResponse, error) {
	return b.UploadCasesFn(ctx, req)
}

func (b *Backend) Health(ctx context.Context) (*evalconsole.Health, error) {
	return b.HealthFn(ctx)
}
