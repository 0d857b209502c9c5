package attrgroup

import (
	"context"
	"errors"
	"testing"

	"github.com/vitrine-cloud/vitrine/internal/domain"
	"github.com/vitrine-cloud/vitrine/internal/domain/attribute"
)

type mockRepo struct {
	created attribute.Group
	all     []attribute.Group
	byKey   attribute.Group

	createErr error
	findErr   error
	addErr    error
	updateErr error
	removeErr error

	addedKey     string
	addedVariant attribute.Variant
	updatedValue string
}

func (m *mockRepo) Create(_ context.Context, g attribute.Group) (attribute.Group, error) {
	m.created = g
	return g, m.createErr
}

func (m *mockRepo) FindAll(_ context.Context) ([]attribute.Group, error) {
	return m.all, m.findErr
}

func (m *mockRepo) FindByKey(_ context.Context, _ string) (attribute.Group, error) {
	return m.byKey, m.findErr
}

func (m *mockRepo) AddVariant(_ context.Context, key string, v attribute.Variant) error {
	m.addedKey = key
	m.addedVariant = v
	return m.addErr
}

func (m *mockRepo) UpdateVariant(_ context.Context, _, value string, _ *string, _ *bool) error {
	m.updatedValue = value
	return m.updateErr
}

func (m *mockRepo) RemoveVariant(_ context.Context, _, value string) error {
	m.updatedValue = value
	return m.removeErr
}

func TestCreate_Valid(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	v, _ := attribute.NewVariant("red", "Red", true)
	g, err := svc.Create(context.Background(), "hairColor", "Hair color", attribute.Multi, []attribute.Variant{v})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Key() != "hairColor" {
		t.Errorf("key = %q, want hairColor", g.Key())
	}
	if repo.created.Key() != "hairColor" {
		t.Error("expected group passed to repository")
	}
}

func TestCreate_InvalidGroup(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Create(context.Background(), "", "Name", attribute.Single, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := &mockRepo{createErr: domain.ErrAlreadyExists}
	svc := New(repo)

	_, err := svc.Create(context.Background(), "hairColor", "Hair color", attribute.Single, nil)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAddVariant_Normalizes(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	v, err := svc.AddVariant(context.Background(), "hairColor", "  Red ", "Red", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Value() != "red" {
		t.Errorf("value = %q, want red", v.Value())
	}
	if repo.addedVariant.Value() != "red" {
		t.Errorf("stored value = %q, want red", repo.addedVariant.Value())
	}
}

func TestAddVariant_EmptyValue(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.AddVariant(context.Background(), "hairColor", "  ", "", true)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateVariant_NothingToUpdate(t *testing.T) {
	svc := New(&mockRepo{})

	err := svc.UpdateVariant(context.Background(), "hairColor", "red", nil, nil)
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateVariant_NormalizesValue(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	label := "Deep Red"
	if err := svc.UpdateVariant(context.Background(), "hairColor", " RED ", &label, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updatedValue != "red" {
		t.Errorf("value = %q, want red", repo.updatedValue)
	}
}

func TestUpdateVariant_NotFound(t *testing.T) {
	repo := &mockRepo{updateErr: domain.ErrNotFound}
	svc := New(repo)

	active := false
	err := svc.UpdateVariant(context.Background(), "hairColor", "red", nil, &active)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveVariant(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo)

	if err := svc.RemoveVariant(context.Background(), "hairColor", " Red "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updatedValue != "red" {
		t.Errorf("value = %q, want red", repo.updatedValue)
	}
}
