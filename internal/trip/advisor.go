package trip

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alex-user-go/tripplanner/internal/llm"
)

const tipsPrompt = `Provide essential local tips for travelers visiting %s:

Include:
1. Cultural do's and don'ts
2. Local transportation hacks
3. Must-try street food (with safety tips)
4. Best local markets and shopping areas
5. Emergency contacts and useful phrases
6. Tipping customs and bargaining tips

Format as practical, actionable advice.`

var sectionPattern = regexp.MustCompile(`(?m)^\s*\d+\.`)

// Advisor asks the model for destination-specific guidance. Tips are
// advisory: a failure here loses the tips, not the plan.
type Advisor struct {
	client llm.Client
	logger *slog.Logger
}

// NewAdvisor creates an Advisor.
func NewAdvisor(client llm.Client, logger *slog.Logger) *Advisor {
	return &Advisor{client: client, logger: logger}
}

// Tips fetches and parses local tips for the destination.
func (a *Advisor) Tips(ctx context.Context, destination string) (LocalTips, error) {
	response, err := a.client.Complete(ctx, fmt.Sprintf(tipsPrompt, destination))
	if err != nil {
		return LocalTips{}, fmt.Errorf("local tips failed: %w", err)
	}
	return parseTips(response), nil
}

// parseTips splits the numbered response into its six sections. Models
// sometimes drop sections; missing ones stay empty.
func parseTips(content string) LocalTips {
	sections := sectionPattern.Split(content, -1)
	get := func(i int) string {
		if i < len(sections) {
			return strings.TrimSpace(sections[i])
		}
		return ""
	}

	return LocalTips{
		Cultural:       get(1),
		Transportation: get(2),
		Food:           get(3),
		Shopping:       get(4),
		Emergency:      get(5),
		Tipping:        get(6),
	}
}
