package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"porter-desk-service/internal/domain"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.5-flash"

// GeminiComposer implements the MessageComposer port with the Gemini API.
// Failures are returned to the caller, which must substitute the
// deterministic fallback notice; the desk always needs a message to send.
type GeminiComposer struct {
	client *genai.Client
	model  string
}

func NewGeminiComposer(ctx context.Context, apiKey, model string) (*GeminiComposer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini composer: API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("gemini composer: create client: %w", err)
	}

	return &GeminiComposer{client: client, model: model}, nil
}

func (c *GeminiComposer) ComposeArrivalNotice(ctx context.Context, pkg domain.Package, resident domain.Resident) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, polite, professional message for %s in apartment %s, "+
			"letting them know a package from %s (%s) has arrived at the front desk "+
			"and is ready for pickup. Use fitting residential-building emojis. "+
			"Return only the message text.",
		resident.Name, resident.Apartment, pkg.Carrier, pkg.Description,
	)

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("compose arrival notice: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("compose arrival notice: empty model response")
	}

	return text, nil
}

// FallbackComposer always produces the deterministic notice. Used when no
// API key is configured so the desk works fully offline.
type FallbackComposer struct{}

func (FallbackComposer) ComposeArrivalNotice(ctx context.Context, pkg domain.Package, resident domain.Resident) (string, error) {
	return FallbackNotice(pkg, resident), nil
}

// FallbackNotice is the template used whenever generative composition is
// unavailable.
func FallbackNotice(pkg domain.Package, resident domain.Resident) string {
	return fmt.Sprintf(
		"Hello %s, your package from %s (%s) has arrived at the front desk and is ready for pickup.",
		resident.Name, pkg.Carrier, pkg.Description,
	)
}
