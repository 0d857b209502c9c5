package listing

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/vitrine-cloud/vitrine/internal/domain/filter"
	"github.com/vitrine-cloud/vitrine/internal/domain/profile"
	"github.com/vitrine-cloud/vitrine/internal/domain/query"
)

type mockRepo struct {
	rows     []profile.Profile
	total    int64
	findErr  error
	countErr error

	findDef    *query.Definition
	countWhere []query.Condition
}

func (m *mockRepo) Find(_ context.Context, def *query.Definition) ([]profile.Profile, error) {
	m.findDef = def
	return m.rows, m.findErr
}

func (m *mockRepo) Count(_ context.Context, where []query.Condition) (int64, error) {
	m.countWhere = where
	return m.total, m.countErr
}

func newService(repo *mockRepo) *Service {
	return New(repo, NewCompiler(&mockResolver{}, nil))
}

func TestSearch_AssemblesPage(t *testing.T) {
	repo := &mockRepo{
		rows: []profile.Profile{{ID: "p1"}, {ID: "p2"}},
		total: 3,
	}
	svc := newService(repo)

	spec := normalizedSpec(t, filter.Payload{Page: 1, Limit: 2})
	page, err := svc.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(page.Profiles) != 2 {
		t.Errorf("profiles = %d, want 2", len(page.Profiles))
	}
	if page.TotalCount != 3 {
		t.Errorf("totalCount = %d, want 3", page.TotalCount)
	}
	if page.TotalPages != 2 {
		t.Errorf("totalPages = %d, want 2", page.TotalPages)
	}
	if !page.HasNextPage {
		t.Error("expected hasNextPage")
	}
	if page.HasPrevPage {
		t.Error("expected no hasPrevPage on page 1")
	}
	if page.CurrentPage != 1 || page.Limit != 2 {
		t.Errorf("page/limit = %d/%d, want 1/2", page.CurrentPage, page.Limit)
	}
}

func TestSearch_LastPage(t *testing.T) {
	repo := &mockRepo{rows: []profile.Profile{{ID: "p3"}}, total: 3}
	svc := newService(repo)

	spec := normalizedSpec(t, filter.Payload{Page: 2, Limit: 2})
	page, err := svc.Search(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.HasNextPage {
		t.Error("expected no hasNextPage on last page")
	}
	if !page.HasPrevPage {
		t.Error("expected hasPrevPage on page 2")
	}
}

func TestSearch_EmptyResult(t *testing.T) {
	repo := &mockRepo{total: 0}
	svc := newService(repo)

	page, err := svc.Search(context.Background(), normalizedSpec(t, filter.Payload{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if page.TotalPages != 0 {
		t.Errorf("totalPages = %d, want 0", page.TotalPages)
	}
	if page.HasNextPage || page.HasPrevPage {
		t.Error("empty result must have no next/prev page")
	}
}

func TestSearch_CountSeesSamePredicates(t *testing.T) {
	repo := &mockRepo{}
	active := true
	svc := New(repo, NewCompiler(&mockResolver{groups: map[string]any{"category": "g1"}}, nil))

	spec := normalizedSpec(t, filter.Payload{Category: "escort", IsActive: &active})
	if _, err := svc.Search(context.Background(), spec); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.findDef == nil || repo.countWhere == nil {
		t.Fatal("expected both queries to run")
	}
	if !reflect.DeepEqual(repo.findDef.Where(), repo.countWhere) {
		t.Error("count and row queries must share identical predicates")
	}
}

func TestSearch_FindError(t *testing.T) {
	findErr := errors.New("mongo: cursor timeout")
	repo := &mockRepo{findErr: findErr}
	svc := newService(repo)

	_, err := svc.Search(context.Background(), normalizedSpec(t, filter.Payload{}))
	if !errors.Is(err, findErr) {
		t.Errorf("expected find error, got %v", err)
	}
}

func TestSearch_CountError(t *testing.T) {
	countErr := errors.New("mongo: connection reset")
	repo := &mockRepo{countErr: countErr}
	svc := newService(repo)

	// A failed count fails the whole search; no partial page.
	_, err := svc.Search(context.Background(), normalizedSpec(t, filter.Payload{}))
	if !errors.Is(err, countErr) {
		t.Errorf("expected count error, got %v", err)
	}
}

func TestCount(t *testing.T) {
	repo := &mockRepo{total: 42}
	svc := newService(repo)

	total, err := svc.Count(context.Background(), normalizedSpec(t, filter.Payload{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 42 {
		t.Errorf("total = %d, want 42", total)
	}
	if repo.findDef != nil {
		t.Error("Count must not run the row query")
	}
}
