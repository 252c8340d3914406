package decider

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rfinn/banksort"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// Suggester asks a Gemini model to pick a category for an ambiguous expense.
// Any answer that is not an exact category name, and any API failure, falls
// through to the fallback provider.
//
// Actions are never delegated to the model: mislabeling a cash-flow direction
// is worse than one extra prompt.
type Suggester struct {
	ctx      context.Context
	chat     *genai.Chat
	fallback banksort.DecisionProvider
}

var _ banksort.DecisionProvider = (*Suggester)(nil)

// NewSuggester creates a Suggester. The genai client reads its API key from
// the environment (GEMINI_API_KEY).
func NewSuggester(ctx context.Context, fallback banksort.DecisionProvider) (*Suggester, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	chat, err := client.Chats.Create(ctx, model, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating genai chat: %w", err)
	}
	return &Suggester{ctx: ctx, chat: chat, fallback: fallback}, nil
}

func (s *Suggester) ResolveAction(rec banksort.RawRecord, src *banksort.Source) (banksort.Action, bool, error) {
	return s.fallback.ResolveAction(rec, src)
}

func (s *Suggester) ResolveCategory(e *banksort.Entry, categories []string) (string, bool, error) {
	prompt := fmt.Sprintf(
		"Classify this bank transaction into exactly one of these categories: %s.\n"+
			"Transaction: %s\n"+
			"Answer with the category name only.",
		strings.Join(categories, ", "), e.Summary())

	resp, err := s.chat.Send(s.ctx, &genai.Part{Text: prompt})
	if err != nil {
		log.Printf("warning: category suggestion failed (%v), falling back", err)
		return s.fallback.ResolveCategory(e, categories)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return s.fallback.ResolveCategory(e, categories)
	}

	answer := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	for _, cat := range categories {
		if strings.EqualFold(answer, cat) {
			log.Printf("model categorized %q as %q", e.Raw.Payee, cat)
			return cat, true, nil
		}
	}
	log.Printf("model answered %q which is not a known category, falling back", answer)
	return s.fallback.ResolveCategory(e, categories)
}
