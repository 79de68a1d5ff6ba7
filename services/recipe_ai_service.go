package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultRecipeModelName = "gemini-1.5-flash-latest"

	recipeSystemInstruction = "You are a nutrition assistant that writes short, practical recipes. " +
		"Start the reply with the recipe name on its own line. " +
		"End every reply with a section titled exactly \"Nutritional Breakdown:\" followed by four lines: " +
		"\"Calories: <number> kcal\", \"Protein: <number> g\", \"Fats: <number> g\", \"Carbs: <number> g\". " +
		"Put only a number directly after each label. Do not skip any of the four lines."
)

// RecipeAIService generates free-text recipes whose trailing nutrition
// section the normalizer can parse. The system instruction pins the output
// format; the normalizer still rejects replies where the model drifted.
type RecipeAIService struct {
	client *genai.Client
}

func NewRecipeAIService(ctx context.Context, apiKey string) (*RecipeAIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &RecipeAIService{client: client}, nil
}

func (s *RecipeAIService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// GenerateRecipe returns the raw reply text; parsing belongs to the
// normalizer, and a commit of the result goes through NormalizeRecipeText.
func (s *RecipeAIService) GenerateRecipe(ctx context.Context, prompt string) (string, error) {
	model := s.client.GenerativeModel(defaultRecipeModelName)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(recipeSystemInstruction)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty completion", ErrRemoteUnavailable)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}
