package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dailyvegies/api/internal/pkg/goerror"
)

const guideSystemPrompt = "You are an agronomy assistant for small-scale " +
	"vegetable farmers. Give practical, season-aware advice in short " +
	"paragraphs. If the question is not about farming, decline politely."

type GuideInput struct {
	Crop     string `validate:"required,min=2,max=100"`
	Question string `validate:"required,min=5,max=2000"`
	Location string `validate:"omitempty,max=100"`
}

type GuideOutput struct {
	Answer string
}

// Guide asks the generative model for crop-specific growing advice.
func (s *Usecase) Guide(ctx context.Context, in GuideInput) (*GuideOutput, error) {
	ctx, span := s.startSpan(ctx, "Guide")
	defer span.End()

	in.Crop = strings.TrimSpace(in.Crop)
	in.Question = strings.TrimSpace(in.Question)
	in.Location = strings.TrimSpace(in.Location)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	prompt := fmt.Sprintf("Crop: %s\n", in.Crop)
	if in.Location != "" {
		prompt += fmt.Sprintf("Location: %s\n", in.Location)
	}
	prompt += fmt.Sprintf("Question: %s", in.Question)

	answer, err := s.guide.Ask(ctx, guideSystemPrompt, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate crop guidance", "crop", in.Crop, "error", err)
		return nil, goerror.NewUpstream(err, "Guidance service is unavailable")
	}

	return &GuideOutput{Answer: answer}, nil
}
