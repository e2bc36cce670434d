package identity

import (
	"context"
	"testing"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/contract"
	"ai-salesagent-be/internal/repository/specification"

	"github.com/google/uuid"
)

type fakeLeadRepo struct {
	byKey      map[string]*entity.Lead
	failCreate error
}

func newFakeLeadRepo() *fakeLeadRepo {
	return &fakeLeadRepo{byKey: make(map[string]*entity.Lead)}
}

func leadKey(demoId uuid.UUID, identifier string) string {
	return demoId.String() + "|" + identifier
}

func (f *fakeLeadRepo) Create(_ context.Context, lead *entity.Lead) error {
	if f.failCreate != nil {
		return f.failCreate
	}
	key := leadKey(lead.DemoId, lead.Identifier)
	if _, exists := f.byKey[key]; exists {
		return contract.ErrDuplicate
	}
	f.byKey[key] = lead
	return nil
}

func (f *fakeLeadRepo) Touch(_ context.Context, id uuid.UUID, seenAt time.Time) error {
	for _, lead := range f.byKey {
		if lead.Id == id {
			lead.LastSeenAt = seenAt
		}
	}
	return nil
}

func (f *fakeLeadRepo) FindByIdentifier(_ context.Context, demoId uuid.UUID, identifier string) (*entity.Lead, error) {
	return f.byKey[leadKey(demoId, identifier)], nil
}

func (f *fakeLeadRepo) FindOne(context.Context, ...specification.Specification) (*entity.Lead, error) {
	return nil, nil
}
func (f *fakeLeadRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Lead, error) {
	return nil, nil
}
func (f *fakeLeadRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeSessionRepo struct {
	sessions []*entity.ConversationSession
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.ConversationSession) error {
	for _, s := range f.sessions {
		if s.LeadId == session.LeadId && s.DemoId == session.DemoId && s.Channel == session.Channel && s.EndedAt == nil {
			return contract.ErrDuplicate
		}
	}
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeSessionRepo) End(_ context.Context, id uuid.UUID, endedAt time.Time) error {
	for _, s := range f.sessions {
		if s.Id == id {
			t := endedAt
			s.EndedAt = &t
		}
	}
	return nil
}

func (f *fakeSessionRepo) FindOpen(_ context.Context, leadId, demoId uuid.UUID, channel entity.Channel) (*entity.ConversationSession, error) {
	for _, s := range f.sessions {
		if s.LeadId == leadId && s.DemoId == demoId && s.Channel == channel && s.EndedAt == nil {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionRepo) FindOne(context.Context, ...specification.Specification) (*entity.ConversationSession, error) {
	return nil, nil
}
func (f *fakeSessionRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ConversationSession, error) {
	return nil, nil
}
func (f *fakeSessionRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

func TestResolveCreatesLeadAndSession(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	sessionRepo := &fakeSessionRepo{}
	resolver := NewResolver(leadRepo, sessionRepo)
	demoId := uuid.New()

	res, err := resolver.Resolve(context.Background(), demoId, "lead-1", entity.IdentifierAnonymous, entity.ChannelWeb)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Lead == nil || res.Session == nil {
		t.Fatal("Resolve() returned nil lead or session")
	}
	if !res.LeadCreated {
		t.Error("first contact should report LeadCreated")
	}
	if res.Session.Channel != entity.ChannelWeb {
		t.Errorf("session channel = %q, want web", res.Session.Channel)
	}
}

func TestResolveReusesOpenSession(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	sessionRepo := &fakeSessionRepo{}
	resolver := NewResolver(leadRepo, sessionRepo)
	demoId := uuid.New()

	first, err := resolver.Resolve(context.Background(), demoId, "lead-1", entity.IdentifierAnonymous, entity.ChannelWeb)
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	second, err := resolver.Resolve(context.Background(), demoId, "lead-1", entity.IdentifierAnonymous, entity.ChannelWeb)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	if second.LeadCreated {
		t.Error("second contact should not report LeadCreated")
	}
	if first.Lead.Id != second.Lead.Id {
		t.Error("same identifier resolved to different leads")
	}
	if first.Session.Id != second.Session.Id {
		t.Error("open session was not reused")
	}

	// Ending the session forces the next resolution onto a new one.
	if err := sessionRepo.End(context.Background(), first.Session.Id, time.Now()); err != nil {
		t.Fatal(err)
	}
	third, err := resolver.Resolve(context.Background(), demoId, "lead-1", entity.IdentifierAnonymous, entity.ChannelWeb)
	if err != nil {
		t.Fatalf("third Resolve() error = %v", err)
	}
	if third.Session.Id == first.Session.Id {
		t.Error("ended session was reused")
	}
}

func TestResolveSessionsNotSharedAcrossChannels(t *testing.T) {
	resolver := NewResolver(newFakeLeadRepo(), &fakeSessionRepo{})
	demoId := uuid.New()

	web, err := resolver.Resolve(context.Background(), demoId, "+15550100", entity.IdentifierPhone, entity.ChannelWeb)
	if err != nil {
		t.Fatal(err)
	}
	sms, err := resolver.Resolve(context.Background(), demoId, "+15550100", entity.IdentifierPhone, entity.ChannelSMS)
	if err != nil {
		t.Fatal(err)
	}

	if web.Lead.Id != sms.Lead.Id {
		t.Error("same identifier should share one lead across channels")
	}
	if web.Session.Id == sms.Session.Id {
		t.Error("sessions must not be shared across channels")
	}
}

func TestResolveDuplicateInsertRetriesAsFetch(t *testing.T) {
	leadRepo := newFakeLeadRepo()
	demoId := uuid.New()

	// Another request wins the insert race before ours lands.
	existing := &entity.Lead{Id: uuid.New(), DemoId: demoId, Identifier: "race@example.com"}
	resolver := NewResolver(leadRepo, &fakeSessionRepo{})

	leadRepo.failCreate = contract.ErrDuplicate
	leadRepo.byKey[leadKey(demoId, "race@example.com")] = existing

	res, err := resolver.Resolve(context.Background(), demoId, "race@example.com", entity.IdentifierEmail, entity.ChannelWeb)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Lead.Id != existing.Id {
		t.Error("duplicate insert should resolve to the winner's lead")
	}
	if res.LeadCreated {
		t.Error("losing the race must not report LeadCreated")
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		idType entity.IdentifierType
		want   string
	}{
		{name: "email lowercased", in: "  John@Example.COM ", idType: entity.IdentifierEmail, want: "john@example.com"},
		{name: "phone keeps digits and plus", in: "+1 (555) 010-0000", idType: entity.IdentifierPhone, want: "+15550100000"},
		{name: "phone drops inner plus", in: "555+010", idType: entity.IdentifierPhone, want: "555010"},
		{name: "anonymous trimmed only", in: " token-ABC ", idType: entity.IdentifierAnonymous, want: "token-ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeIdentifier(tt.in, tt.idType); got != tt.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
