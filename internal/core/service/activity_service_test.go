package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
	"github.com/recrm/crm-api/internal/infrastructure/db/memory"
)

func TestActivityService(t *testing.T) {
	ctx := context.Background()
	leads := memory.NewLeadRepository()
	_ = leads.Create(ctx, &domain.Lead{ID: "lead-1", AssignedAgentID: agent.ID})
	svc := NewActivityService(memory.NewActivityRepository(), leads)

	if err := svc.Process(ctx, domain.Activity{LeadID: "lead-1", Type: domain.ActivityNote, Title: "Lead created", CreatedAt: time.Now().Add(-time.Minute)}); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}

	if _, err := svc.Create(ctx, agentB, "lead-1", ports.CreateActivityInput{Type: domain.ActivityCall, Title: "Intro call"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, agent, "lead-1", ports.CreateActivityInput{Type: domain.ActivityCall, Title: "x"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	call, err := svc.Create(ctx, agent, "lead-1", ports.CreateActivityInput{Type: domain.ActivityCall, Title: "Intro call"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	timeline, err := svc.ListForLead(ctx, agent, "lead-1")
	if err != nil {
		t.Fatalf("ListForLead returned error: %v", err)
	}
	if len(timeline) != 2 || timeline[0].ID != call.ID {
		t.Fatalf("expected newest entry first, got %+v", timeline)
	}
	if _, err := svc.ListForLead(ctx, agent, "missing"); !errors.Is(err, domain.ErrLeadNotFound) {
		t.Fatalf("expected ErrLeadNotFound, got %v", err)
	}
}
