package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type stubMessageRepo struct {
	messages []*entity.ConversationMessage
	err      error
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
	return s.messages, s.err
}
func (s *stubMessageRepo) SumTokenCountsByDemo(context.Context, uuid.UUID) (int64, error) {
	return 0, nil
}

func makeMessages(n int) []*entity.ConversationMessage {
	base := time.Now().Add(-time.Hour)
	messages := make([]*entity.ConversationMessage, 0, n)
	for i := 0; i < n; i++ {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		messages = append(messages, &entity.ConversationMessage{
			Id:        uuid.New(),
			Role:      role,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return messages
}

func TestLoadEmptyHistory(t *testing.T) {
	loader := NewLoader(&stubMessageRepo{}, 50)
	got, err := loader.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty history, got %d messages", len(got))
	}
}

func TestLoadTruncatesToTail(t *testing.T) {
	loader := NewLoader(&stubMessageRepo{messages: makeMessages(60)}, 50)
	got, err := loader.Load(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 messages, got %d", len(got))
	}
	// The oldest ten are dropped; the tail keeps its order.
	if got[0].Content != "message 10" {
		t.Errorf("truncation dropped the wrong end: first is %q", got[0].Content)
	}
	if got[len(got)-1].Content != "message 59" {
		t.Errorf("most recent message missing: last is %q", got[len(got)-1].Content)
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.Before(got[i-1].CreatedAt) {
			t.Fatalf("history out of order at index %d", i)
		}
	}
}

func TestTail(t *testing.T) {
	messages := makeMessages(5)

	tests := []struct {
		name string
		max  int
		want int
	}{
		{name: "no cap", max: 0, want: 5},
		{name: "negative means no cap", max: -1, want: 5},
		{name: "cap above length", max: 10, want: 5},
		{name: "cap below length", max: 3, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tail(messages, tt.max)
			if len(got) != tt.want {
				t.Errorf("Tail(max=%d) kept %d messages, want %d", tt.max, len(got), tt.want)
			}
			if len(got) > 0 && got[len(got)-1] != messages[len(messages)-1] {
				t.Error("Tail dropped the most recent message")
			}
		})
	}
}
