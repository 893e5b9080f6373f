// Package ai holds the portal's LLM collaborators. The engine never
// depends on them for a decision; they produce advisory prose only.
package ai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/calebryder/ai-governance/internal/application/port"
	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// DigestWriter summarizes an evaluation outcome into a short paragraph for
// the review committee. Implements port.DigestWriter.
type DigestWriter struct {
	client *openai.Client
	model  string
	temp   float32
	logger *zap.Logger
}

// NewDigestWriter creates a new DigestWriter
func NewDigestWriter(apiKey, model string, temperature float32, logger *zap.Logger) *DigestWriter {
	return &DigestWriter{
		client: openai.NewClient(apiKey),
		model:  model,
		temp:   temperature,
		logger: logger,
	}
}

// WriteDigest asks the model for a 2-3 sentence summary of the decision.
// The rationale already states the facts; the digest only rephrases them
// for a non-technical audience.
func (w *DigestWriter) WriteDigest(ctx context.Context, p *entity.Proposal, tier entity.GovernanceTier, decision entity.Decision) (string, error) {
	prompt := w.buildDigestPrompt(p, tier, decision)

	w.logger.Debug("Requesting decision digest",
		zap.Int64("proposal_id", p.ID),
		zap.String("action", string(decision.Action)))

	req := openai.ChatCompletionRequest{
		Model:       w.model,
		Temperature: w.temp,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are drafting internal governance review notes. Summarize the given AI-adoption proposal decision in 2-3 plain sentences for a review committee. Do not add facts that are not in the input.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := w.client.CreateChatCompletion(ctx, req)
	if err != nil {
		w.logger.Error("Digest request failed", zap.Error(err))
		return "", fmt.Errorf("digest request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no digest response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildDigestPrompt assembles the factual input for the model
func (w *DigestWriter) buildDigestPrompt(p *entity.Proposal, tier entity.GovernanceTier, decision entity.Decision) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Proposal: %s (team: %s)\n", p.Title, p.Team)
	fmt.Fprintf(&b, "Cost: %.2f\n", p.Cost)
	if p.RiskScore != nil {
		fmt.Fprintf(&b, "Risk score: %d\n", *p.RiskScore)
	}
	if p.DataClassification != nil {
		fmt.Fprintf(&b, "Data classification: %s\n", *p.DataClassification)
	}
	if len(p.EscalationTriggers) > 0 {
		fmt.Fprintf(&b, "Escalation triggers: %s\n", strings.Join(p.EscalationTriggers, ", "))
	}
	fmt.Fprintf(&b, "Governance tier: %s (%s pathway)\n", tier.Name, tier.ApprovalPathway)
	fmt.Fprintf(&b, "Decision: %s\n", decision.Action)
	if decision.MatchedRuleName != "" {
		fmt.Fprintf(&b, "Matched rule: %s\n", decision.MatchedRuleName)
	}
	fmt.Fprintf(&b, "Rationale: %s\n", decision.Rationale)

	return b.String()
}

// Verify interface compliance
var _ port.DigestWriter = (*DigestWriter)(nil)
