package prompt

import (
	"strings"
	"testing"
	"time"

	"ai-salesagent-be/internal/entity"

	"github.com/google/uuid"
)

func demoWith(profile entity.MissionProfile) *entity.Demo {
	return &entity.Demo{
		Id:             uuid.New(),
		CompanyName:    "Acme Plumbing",
		Industry:       "home services",
		Products:       []string{"drain cleaning", "water heaters"},
		Offers:         []string{"10% off first visit"},
		Qualification:  "homeowner in the service area",
		MissionProfile: profile,
	}
}

func TestBuildSystemPromptNoUnresolvedPlaceholders(t *testing.T) {
	profiles := []entity.MissionProfile{
		entity.MissionReactivation,
		entity.MissionNurture,
		entity.MissionService,
		entity.MissionReview,
		"", // unset profile falls back to the generic template
	}
	channels := []entity.Channel{
		entity.ChannelWeb, entity.ChannelSMS, entity.ChannelVoice, entity.ChannelEmail,
	}

	for _, profile := range profiles {
		for _, channel := range channels {
			got := BuildSystemPrompt(demoWith(profile), channel)
			if strings.Contains(got, "{{") || strings.Contains(got, "}}") {
				t.Errorf("profile %q channel %q: unresolved placeholder in %q", profile, channel, got)
			}
			if !strings.Contains(got, "Acme Plumbing") {
				t.Errorf("profile %q: prompt does not name the company", profile)
			}
		}
	}
}

func TestBuildSystemPromptDefaults(t *testing.T) {
	demo := &entity.Demo{MissionProfile: entity.MissionService}
	got := BuildSystemPrompt(demo, entity.ChannelWeb)
	if strings.Contains(got, "{{") {
		t.Fatalf("unresolved placeholder with empty context: %q", got)
	}
	if !strings.Contains(got, defaultIndustry) {
		t.Errorf("empty industry should resolve to %q, got %q", defaultIndustry, got)
	}
}

func TestBuildSystemPromptPrebuiltWins(t *testing.T) {
	demo := demoWith(entity.MissionNurture)
	demo.SystemPrompt = "You are Mr. Custom."
	got := BuildSystemPrompt(demo, entity.ChannelSMS)
	if !strings.HasPrefix(got, "You are Mr. Custom.") {
		t.Errorf("pre-built prompt should win over the template, got %q", got)
	}
	if !strings.Contains(got, "text message") {
		t.Errorf("channel tone should still be appended, got %q", got)
	}
}

func TestChannelTone(t *testing.T) {
	smsPrompt := BuildSystemPrompt(demoWith(entity.MissionService), entity.ChannelSMS)
	voicePrompt := BuildSystemPrompt(demoWith(entity.MissionService), entity.ChannelVoice)
	webPrompt := BuildSystemPrompt(demoWith(entity.MissionService), entity.ChannelWeb)

	if !strings.Contains(smsPrompt, "text message") {
		t.Error("sms prompt missing terse guidance")
	}
	if !strings.Contains(voicePrompt, "spoken aloud") {
		t.Error("voice prompt missing spoken guidance")
	}
	if strings.Contains(webPrompt, "text message") || strings.Contains(webPrompt, "spoken aloud") {
		t.Error("web prompt should carry no channel tone clause")
	}
}

func TestFallbackSystemPrompt(t *testing.T) {
	got := FallbackSystemPrompt("Acme Plumbing", entity.ChannelWeb)
	if !strings.Contains(got, "Acme Plumbing") {
		t.Errorf("fallback prompt should name the company, got %q", got)
	}
	if strings.Contains(got, "{{") {
		t.Errorf("unresolved placeholder in fallback: %q", got)
	}
}

func TestAssembleMessagesOrder(t *testing.T) {
	now := time.Now()
	history := []*entity.ConversationMessage{
		{Role: entity.RoleUser, Content: "Hi", CreatedAt: now.Add(-2 * time.Minute)},
		{Role: entity.RoleAssistant, Content: "Hello! How can I help?", CreatedAt: now.Add(-time.Minute)},
	}

	messages := AssembleMessages("SYSTEM", "--- RELEVANT KNOWLEDGE ---\nRefunds within 30 days\n--- END KNOWLEDGE ---", history, "What is your refund policy?")

	if len(messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(messages))
	}
	if messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "SYSTEM") || !strings.Contains(messages[0].Content, "Refunds within 30 days") {
		t.Errorf("system message should carry the knowledge context, got %q", messages[0].Content)
	}
	if messages[1].Content != "Hi" || messages[2].Content != "Hello! How can I help?" {
		t.Error("history out of order")
	}
	last := messages[len(messages)-1]
	if last.Role != "user" || last.Content != "What is your refund policy?" {
		t.Errorf("final message should be the new user turn, got %+v", last)
	}
}

func TestAssembleMessagesNoKnowledge(t *testing.T) {
	messages := AssembleMessages("SYSTEM", "", nil, "Hello")
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != "SYSTEM" {
		t.Errorf("empty knowledge context must contribute nothing, got %q", messages[0].Content)
	}
}
