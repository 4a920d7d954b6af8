package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
	"github.com/recrm/crm-api/internal/infrastructure/db/memory"
)

func newCommissionFixture() (*CommissionService, *memory.PropertyRepository) {
	properties := memory.NewPropertyRepository()
	_ = properties.Create(context.Background(), &domain.Property{ID: "prop-1", AgentID: agent.ID, Price: 5000000})
	return NewCommissionService(memory.NewCommissionRepository(), properties, seededUsers(), zerolog.Nop()), properties
}

func TestCommissionService_Create_Snapshot(t *testing.T) {
	svc, properties := newCommissionFixture()

	c, err := svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "prop-1", Percentage: 2.5})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if c.PropertyPrice != 5000000 || c.CommissionAmount != 125000 || c.Status != domain.CommissionPending {
		t.Fatalf("unexpected commission: %+v", c)
	}

	p, _ := properties.FindByID(context.Background(), "prop-1")
	p.Price = 9000000
	_ = properties.Update(context.Background(), p)

	list, _ := svc.List(context.Background(), admin, ports.ListCommissionsInput{})
	if len(list.Items) != 1 || list.Items[0].CommissionAmount != 125000 {
		t.Fatalf("commission amount changed after price update: %+v", list.Items)
	}
}

func TestCommissionService_Create_Rules(t *testing.T) {
	svc, _ := newCommissionFixture()

	_, err := svc.Create(context.Background(), agent, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "prop-1", Percentage: 2})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for agent, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "prop-1"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for missing percentage, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "gone", Percentage: 2}); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestCommissionService_ListScoping(t *testing.T) {
	svc, _ := newCommissionFixture()
	_, _ = svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "prop-1", Percentage: 1})
	_, _ = svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agentB.ID, PropertyID: "prop-1", Percentage: 1})

	res, _ := svc.List(context.Background(), agent, ports.ListCommissionsInput{AgentID: agentB.ID})
	if res.Total != 1 || res.Items[0].AgentID != agent.ID {
		t.Fatalf("agent saw foreign commissions: %+v", res.Items)
	}
	res, _ = svc.List(context.Background(), admin, ports.ListCommissionsInput{AgentID: agentB.ID})
	if res.Total != 1 || res.Items[0].AgentID != agentB.ID {
		t.Fatalf("admin agentId filter not applied: %+v", res.Items)
	}
}

func TestCommissionService_UpdateStatus(t *testing.T) {
	svc, _ := newCommissionFixture()
	c, _ := svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: agent.ID, PropertyID: "prop-1", Percentage: 1})

	if _, err := svc.UpdateStatus(context.Background(), agent, c.ID, domain.CommissionPaid); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), admin, c.ID, "BOGUS"); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	paid, err := svc.UpdateStatus(context.Background(), admin, c.ID, domain.CommissionPaid)
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if paid.PaidAt == nil {
		t.Fatalf("expected paidAt to be stamped")
	}
	if paid.CommissionAmount != c.CommissionAmount {
		t.Fatalf("amount recomputed on status change")
	}
}

func TestCommissionService_Create_UnknownAgent(t *testing.T) {
	svc, _ := newCommissionFixture()

	_, err := svc.Create(context.Background(), admin, ports.CreateCommissionInput{AgentID: "ghost", PropertyID: "prop-1", Percentage: 2})
	if !errors.Is(err, domain.ErrAgentNotFound) {
		t.Fatalf("expected ErrAgentNotFound, got %v", err)
	}

	res, _ := svc.List(context.Background(), admin, ports.ListCommissionsInput{})
	if res.Total != 0 {
		t.Fatalf("commission stored for a missing agent: %+v", res.Items)
	}
}
