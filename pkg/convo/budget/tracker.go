package budget

import (
	"context"

	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/pkg/logger"
	"ai-salesagent-be/internal/repository/contract"

	"github.com/google/uuid"
)

// EstimateTokens approximates token usage as ceil(len/4). Good enough for
// budgeting; the point is a stable, cheap upper bound, not tokenizer parity.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// Tracker enforces a per-demo lifetime token budget.
type Tracker struct {
	messageRepo contract.MessageRepository
	log         logger.ILogger
	budget      int64
}

func NewTracker(messageRepo contract.MessageRepository, log logger.ILogger, budget int64) *Tracker {
	return &Tracker{messageRepo: messageRepo, log: log, budget: budget}
}

// Check returns a BudgetExceeded error when the demo's accumulated usage has
// reached the budget. A failed sum query fails open: a broken meter must not
// take conversations down with it.
func (t *Tracker) Check(ctx context.Context, demoId uuid.UUID) error {
	if t.budget <= 0 {
		return nil
	}

	remaining, err := t.Remaining(ctx, demoId)
	if err != nil {
		t.log.Warn("budget", "token sum failed, allowing request", map[string]interface{}{
			"demo_id": demoId.String(),
			"error":   err.Error(),
		})
		return nil
	}

	if remaining <= 0 {
		return apperrors.BudgetExceeded(int(remaining))
	}
	return nil
}

// Remaining reports budget headroom; negative is clamped to zero.
func (t *Tracker) Remaining(ctx context.Context, demoId uuid.UUID) (int64, error) {
	if t.budget <= 0 {
		return 0, nil
	}
	used, err := t.messageRepo.SumTokenCountsByDemo(ctx, demoId)
	if err != nil {
		return 0, err
	}
	remaining := t.budget - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
