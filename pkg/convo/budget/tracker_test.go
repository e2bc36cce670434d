package budget

import (
	"context"
	"errors"
	"testing"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/pkg/apperrors"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

func TestEstimateTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single char", text: "a", want: 1},
		{name: "exactly four", text: "abcd", want: 1},
		{name: "five chars rounds up", text: "abcde", want: 2},
		{name: "hello there", text: "Hello there", want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateTokens(tt.text); got != tt.want {
				t.Errorf("EstimateTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

type stubMessageRepo struct {
	sum    int64
	sumErr error
}

func (s *stubMessageRepo) Create(context.Context, *entity.ConversationMessage) error { return nil }
func (s *stubMessageRepo) FindOne(context.Context, ...specification.Specification) (*entity.ConversationMessage, error) {
	return nil, nil
}
func (s *stubMessageRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ConversationMessage, error) {
	return nil, nil
}
func (s *stubMessageRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (s *stubMessageRepo) FindByLead(context.Context, uuid.UUID) ([]*entity.ConversationMessage, error) {
	return nil, nil
}
func (s *stubMessageRepo) SumTokenCountsByDemo(context.Context, uuid.UUID) (int64, error) {
	return s.sum, s.sumErr
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestTrackerCheck(t *testing.T) {
	demoId := uuid.New()

	tests := []struct {
		name     string
		sum      int64
		sumErr   error
		budget   int64
		wantCode apperrors.Code
	}{
		{name: "under budget", sum: 500, budget: 10000},
		{name: "at cap rejects", sum: 10000, budget: 10000, wantCode: apperrors.CodeBudgetExceeded},
		{name: "over cap rejects", sum: 10050, budget: 10000, wantCode: apperrors.CodeBudgetExceeded},
		{name: "sum failure allows", sum: 0, sumErr: errors.New("relation does not exist"), budget: 10000},
		{name: "zero budget disables check", sum: 99999, budget: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracker := NewTracker(&stubMessageRepo{sum: tt.sum, sumErr: tt.sumErr}, nopLogger{}, tt.budget)
			err := tracker.Check(context.Background(), demoId)

			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Check() = %v, want nil", err)
				}
				return
			}
			if !apperrors.Is(err, tt.wantCode) {
				t.Fatalf("Check() = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestTrackerCheckAgreesWithRemaining(t *testing.T) {
	demoId := uuid.New()

	for _, sum := range []int64{0, 9999, 10000, 12000} {
		tracker := NewTracker(&stubMessageRepo{sum: sum}, nopLogger{}, 10000)

		remaining, err := tracker.Remaining(context.Background(), demoId)
		if err != nil {
			t.Fatalf("Remaining() error = %v", err)
		}
		checkErr := tracker.Check(context.Background(), demoId)

		if remaining > 0 && checkErr != nil {
			t.Errorf("sum %d: Check rejected with %d tokens remaining", sum, remaining)
		}
		if remaining == 0 && !apperrors.Is(checkErr, apperrors.CodeBudgetExceeded) {
			t.Errorf("sum %d: Check allowed with no budget remaining, got %v", sum, checkErr)
		}
	}
}

func TestTrackerRemaining(t *testing.T) {
	tracker := NewTracker(&stubMessageRepo{sum: 9800}, nopLogger{}, 10000)
	remaining, err := tracker.Remaining(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if remaining != 200 {
		t.Errorf("Remaining() = %d, want 200", remaining)
	}

	tracker = NewTracker(&stubMessageRepo{sum: 12000}, nopLogger{}, 10000)
	remaining, err = tracker.Remaining(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Remaining() error = %v", err)
	}
	if remaining != 0 {
		t.Errorf("Remaining() = %d, want 0 when overspent", remaining)
	}
}
