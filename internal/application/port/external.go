package port

import (
	"context"

	"github.com/calebryder/ai-governance/internal/domain/entity"
)

// DigestWriter produces a short human-readable digest of a decision for
// the review committee. Implementations may call an external LLM; the
// engine treats the output as advisory prose only and never feeds it back
// into tiering or rule matching.
type DigestWriter interface {
	WriteDigest(ctx context.Context, p *entity.Proposal, tier entity.GovernanceTier, decision entity.Decision) (string, error)
}
