// Package listing compiles profile filter specifications and executes
// them against the profile store.
package listing

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/domain/profile"
)

// Page is one page of filter results with pagination metadata.
type Page struct {
	Profiles    []profile.Profile
	CurrentPage int
	TotalPages  int
	TotalCount  int64
	HasNextPage bool
	HasPrevPage bool
	Limit       int
}

// Service compiles filter specs and assembles paginated results.
type Service struct {
	repo     Repository
	compiler *Compiler
}

// New creates a listing service.
func New(repo Repository, compiler *Compiler) *Service {
	return &Service{repo: repo, compiler: compiler}
}

// Search compiles the spec once and runs the row query and the count
// query concurrently over the same predicate list. Both must succeed;
// a failed count never yields partial results, since the pagination
// metadata would be corrupt.
func (s *Service) Search(ctx context.Context, spec *filter.Spec) (*Page, error) {
	def, err := s.compiler.Compile(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("compile filter: %w", err)
	}

	var (
		rows  []profile.Profile
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rows, err = s.repo.Find(gctx, def)
		if err != nil {
			return fmt.Errorf("find profiles: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, def.Where())
		if err != nil {
			return fmt.Errorf("count profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assemblePage(rows, total, spec.Page, spec.Limit), nil
}

// Count compiles the spec and runs only the count query. Pagination in
// the spec is ignored: a count has no page window.
func (s *Service) Count(ctx context.Context, spec *filter.Spec) (int64, error) {
	def, err := s.compiler.Compile(ctx, spec)
	if err != nil {
		return 0, fmt.Errorf("compile filter: %w", err)
	}

	total, err := s.repo.Count(ctx, def.Where())
	if err != nil {
		return 0, fmt.Errorf("count profiles: %w", err)
	}
	return total, nil
}

func assemblePage(rows []profile.Profile, total int64, page, limit int) *Page {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &Page{
		Profiles:    rows,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
		Limit:       limit,
	}
}
