package service

import (
	"context"
	"errors"
	"testing"

	"github.com/goodplates/recipes-api/internal/core/domain"
)

func TestIngredientService_Create_RequiresName(t *testing.T) {
	svc := NewIngredientService(newMemIngredientRepo(), testLogger())

	_, err := svc.Create(context.Background(), "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestIngredientService_Delete_RefusesWhileReferenced(t *testing.T) {
	ingredients := newMemIngredientRepo()
	svc := NewIngredientService(ingredients, testLogger())

	ing := ingredients.add(&domain.Ingredient{Name: "tomato", Recipes: []string{"recipe-1"}})

	err := svc.Delete(context.Background(), ing.ID)
	if !errors.Is(err, domain.ErrInUse) {
		t.Fatalf("expected in-use error, got %v", err)
	}
}

func TestIngredientService_Delete_Unreferenced(t *testing.T) {
	ingredients := newMemIngredientRepo()
	svc := NewIngredientService(ingredients, testLogger())

	ing := ingredients.add(&domain.Ingredient{Name: "basil"})

	if err := svc.Delete(context.Background(), ing.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := ingredients.FindByID(context.Background(), ing.ID); !domain.IsNotFound(err) {
		t.Fatal("ingredient must be gone after delete")
	}
}
