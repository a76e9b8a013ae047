package ai

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ErrQuotaExceeded marks a Gemini quota/rate-limit rejection. The bot
// maps it to a friendly "system busy" message instead of the raw error.
var ErrQuotaExceeded = errors.New("ai: quota exceeded")

// Service wraps the Gemini client and the store database it reads live
// business data from.
type Service struct {
	Client *genai.Client
	DB     *sql.DB
	Model  string
}

// NewService initializes the Gemini client.
func NewService(ctx context.Context, apiKey, model string, db *sql.DB) (*Service, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &Service{Client: client, DB: db, Model: model}, nil
}

// Answer runs one Gemini call for an owner question: the current
// business snapshot plus the question, free text back.
func (s *Service) Answer(ctx context.Context, question string) (string, error) {
	model := s.Client.GenerativeModel(s.Model)

	businessContext := s.BuildBusinessContext(ctx)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(
			"You are the Offmode Store assistant for the store owner. "+
				"Answer questions about the store using the live data below. "+
				"Amounts are in Indonesian Rupiah. Be concise.\n\n%s",
			businessContext))},
	}

	res, err := model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 429 {
			return "", ErrQuotaExceeded
		}
		return "", fmt.Errorf("error generating response: %w", err)
	}

	return responseText(res), nil
}

// responseText flattens the first candidate's text parts.
func responseText(res *genai.GenerateContentResponse) string {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "No response."
	}
	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "No response."
	}
	return b.String()
}
