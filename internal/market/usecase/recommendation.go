package usecase

import (
	"context"
	"log/slog"

	"github.com/dailyvegies/api/internal/market/entity"
	"github.com/dailyvegies/api/internal/pkg/goerror"
	"github.com/dailyvegies/api/internal/pkg/jwt"
)

const similarLimit = 5

type RecommendationsOutput struct {
	Recommendations []entity.Recommendation
}

// Recommendations suggests up to five alternatives per cart product: same
// category and city, in stock, not expired, newest listings first.
func (s *Usecase) Recommendations(ctx context.Context) (*RecommendationsOutput, error) {
	ctx, span := s.startSpan(ctx, "Recommendations")
	defer span.End()

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	lines, err := s.repoDB.GetCartByConsumer(ctx, claims.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get cart", "consumer_id", claims.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if len(lines) == 0 {
		return nil, goerror.NewBusiness("Cart not found", goerror.CodeNotFound)
	}

	now := s.clock.Now()
	recs := make([]entity.Recommendation, 0, len(lines))
	for _, l := range lines {
		similar, err := s.repoDB.GetSimilarProducts(ctx, l.Product, now, similarLimit)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get similar products", "product_id", l.Product.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		recs = append(recs, entity.Recommendation{
			ProductID: l.Product.ID,
			Similar:   similar,
		})
	}

	return &RecommendationsOutput{Recommendations: recs}, nil
}
