package usecase

import (
	"context"
	"testing"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
)

func TestRecommendations(t *testing.T) {
	t.Run("SuggestsSimilarProductsPerCartLine", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.repo.cart = []entity.CartLine{
			{ID: 1, Quantity: 2, Product: entity.Product{ID: 100, Category: "vegetable", City: "Bandung"}},
			{ID: 2, Quantity: 1, Product: entity.Product{ID: 200, Category: "fruit", City: "Bandung"}},
		}
		f.repo.similar[100] = []entity.Product{{ID: 101}, {ID: 102}}
		f.repo.similar[200] = []entity.Product{{ID: 201}}

		// Act
		out, err := f.uc.Recommendations(authedCtx(7))

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(out.Recommendations) != 2 {
			t.Fatalf("expected 2 recommendation groups, got %d", len(out.Recommendations))
		}
		if out.Recommendations[0].ProductID != 100 || len(out.Recommendations[0].Similar) != 2 {
			t.Fatalf("unexpected first group: %+v", out.Recommendations[0])
		}
		if out.Recommendations[1].ProductID != 200 || len(out.Recommendations[1].Similar) != 1 {
			t.Fatalf("unexpected second group: %+v", out.Recommendations[1])
		}
	})

	t.Run("CapsSuggestionsAtFive", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.repo.cart = []entity.CartLine{
			{ID: 1, Quantity: 1, Product: entity.Product{ID: 100}},
		}
		for i := int64(0); i < 8; i++ {
			f.repo.similar[100] = append(f.repo.similar[100], entity.Product{ID: 101 + i})
		}

		// Act
		out, err := f.uc.Recommendations(authedCtx(7))

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := len(out.Recommendations[0].Similar); got != 5 {
			t.Fatalf("expected 5 suggestions, got %d", got)
		}
	})

	t.Run("EmptyCart", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Recommendations(authedCtx(7))

		// Assert
		assertCode(t, err, goerror.CodeNotFound)
	})

	t.Run("WithoutAuthentication", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Recommendations(context.Background())

		// Assert
		assertCode(t, err, goerror.CodeUnauthorized)
	})
}
