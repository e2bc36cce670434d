package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-salesagent-be/internal/entity"
	"ai-salesagent-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Resolution is the outcome of identity resolution: the durable lead and the
// open session the incoming message belongs to. LeadCreated reports whether
// this contact is brand new.
type Resolution struct {
	Lead        *entity.Lead
	Session     *entity.ConversationSession
	LeadCreated bool
}

type Resolver struct {
	leadRepo    contract.LeadRepository
	sessionRepo contract.SessionRepository
}

func NewResolver(leadRepo contract.LeadRepository, sessionRepo contract.SessionRepository) *Resolver {
	return &Resolver{leadRepo: leadRepo, sessionRepo: sessionRepo}
}

// Resolve finds or creates the lead for (demo, identifier) and the open
// session for (lead, demo, channel). Concurrent first contacts race on the
// unique indexes; the loser of each race re-reads the winner's row.
func (r *Resolver) Resolve(ctx context.Context, demoId uuid.UUID, identifier string, idType entity.IdentifierType, channel entity.Channel) (*Resolution, error) {
	identifier = NormalizeIdentifier(identifier, idType)
	if identifier == "" {
		return nil, fmt.Errorf("empty identifier")
	}

	now := time.Now().UTC()

	leadCreated := false
	lead, err := r.leadRepo.FindByIdentifier(ctx, demoId, identifier)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		leadCreated = true
		lead = &entity.Lead{
			Id:             uuid.New(),
			DemoId:         demoId,
			Identifier:     identifier,
			IdentifierType: idType,
			LastSeenAt:     now,
			CreatedAt:      now,
		}
		if err := r.leadRepo.Create(ctx, lead); err != nil {
			if !errors.Is(err, contract.ErrDuplicate) {
				return nil, err
			}
			leadCreated = false
			lead, err = r.leadRepo.FindByIdentifier(ctx, demoId, identifier)
			if err != nil {
				return nil, err
			}
			if lead == nil {
				return nil, fmt.Errorf("lead vanished after duplicate insert")
			}
		}
	}

	if err := r.leadRepo.Touch(ctx, lead.Id, now); err != nil {
		return nil, err
	}
	lead.LastSeenAt = now

	session, err := r.sessionRepo.FindOpen(ctx, lead.Id, demoId, channel)
	if err != nil {
		return nil, err
	}
	if session == nil {
		session = &entity.ConversationSession{
			Id:        uuid.New(),
			LeadId:    lead.Id,
			DemoId:    demoId,
			Channel:   channel,
			CreatedAt: now,
		}
		if err := r.sessionRepo.Create(ctx, session); err != nil {
			if !errors.Is(err, contract.ErrDuplicate) {
				return nil, err
			}
			session, err = r.sessionRepo.FindOpen(ctx, lead.Id, demoId, channel)
			if err != nil {
				return nil, err
			}
			if session == nil {
				return nil, fmt.Errorf("session vanished after duplicate insert")
			}
		}
	}

	return &Resolution{Lead: lead, Session: session, LeadCreated: leadCreated}, nil
}

// NormalizeIdentifier canonicalizes an identifier so the same contact always
// maps to the same lead row. Emails lowercase; phone numbers keep digits and
// a leading plus.
func NormalizeIdentifier(identifier string, idType entity.IdentifierType) string {
	identifier = strings.TrimSpace(identifier)
	switch idType {
	case entity.IdentifierEmail:
		return strings.ToLower(identifier)
	case entity.IdentifierPhone:
		var b strings.Builder
		for i, r := range identifier {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			} else if r == '+' && i == 0 {
				b.WriteRune(r)
			}
		}
		return b.String()
	default:
		return identifier
	}
}
