package service

import (
	"errors"
	"testing"

	"github.com/brendaninnis/uncluttered-cli/internal/repository"
	"github.com/brendaninnis/uncluttered-cli/internal/testutil"
)

func TestDeleteRecipeBySlugNotFound(t *testing.T) {
	repo := &testutil.MockRecipeRepo{
		DeleteRecipeBySlugFunc: func(string) (bool, error) { return false, nil },
	}
	svc := NewRecipeService(repo)

	err := svc.DeleteRecipeBySlug("missing")
	var notFound repository.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestDeleteRecipeBySlugSuccess(t *testing.T) {
	var deletedSlug string
	repo := &testutil.MockRecipeRepo{
		DeleteRecipeBySlugFunc: func(slug string) (bool, error) {
			deletedSlug = slug
			return true, nil
		},
	}
	svc := NewRecipeService(repo)

	if err := svc.DeleteRecipeBySlug("apple-pie"); err != nil {
		t.Fatalf("DeleteRecipeBySlug: %v", err)
	}
	if deletedSlug != "apple-pie" {
		t.Errorf("unexpected slug passed through: %q", deletedSlug)
	}
}

func TestDeleteRecipesBySearchTermRejectsEmpty(t *testing.T) {
	svc := NewRecipeService(&testutil.MockRecipeRepo{})
	if _, err := svc.DeleteRecipesBySearchTerm(""); err == nil {
		t.Error("expected an error for an empty search term")
	}
}
