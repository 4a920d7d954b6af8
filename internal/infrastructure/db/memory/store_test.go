package memory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/core/ports"
)

func TestLeadRepository_ListPaginatesAndScopes(t *testing.T) {
	repo := NewLeadRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		owner := "agent-1"
		if i%5 == 0 {
			owner = "agent-2"
		}
		_ = repo.Create(context.Background(), &domain.Lead{
			ID:              fmt.Sprintf("lead-%02d", i),
			FirstName:       fmt.Sprintf("Lead%d", i),
			AssignedAgentID: owner,
			CreatedAt:       base.Add(time.Duration(i) * time.Hour),
		})
	}

	items, total, err := repo.List(context.Background(), ports.LeadFilter{Page: ports.Page{Page: 2, Limit: 10}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 15 || len(items) != 5 {
		t.Fatalf("expected 5 of 15, got %d of %d", len(items), total)
	}

	items, total, _ = repo.List(context.Background(), ports.LeadFilter{OwnerID: "agent-2"})
	if total != 3 {
		t.Fatalf("expected 3 leads for agent-2, got %d", total)
	}
	if items[0].ID != "lead-10" {
		t.Fatalf("expected newest first, got %s", items[0].ID)
	}
}

func TestLeadRepository_EqualTimestampsPageStably(t *testing.T) {
	repo := NewLeadRepository()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		_ = repo.Create(context.Background(), &domain.Lead{ID: fmt.Sprintf("lead-%d", i), CreatedAt: at})
	}

	seen := map[string]bool{}
	for page := 1; page <= 3; page++ {
		items, _, err := repo.List(context.Background(), ports.LeadFilter{Page: ports.Page{Page: page, Limit: 3}})
		if err != nil {
			t.Fatalf("List returned error: %v", err)
		}
		for _, l := range items {
			if seen[l.ID] {
				t.Fatalf("lead %s repeated on page %d", l.ID, page)
			}
			seen[l.ID] = true
		}
	}
	if len(seen) != 7 {
		t.Fatalf("expected all 7 leads across pages, got %d", len(seen))
	}
}

func TestLeadRepository_HugePage(t *testing.T) {
	repo := NewLeadRepository()
	_ = repo.Create(context.Background(), &domain.Lead{ID: "lead-1"})

	items, total, err := repo.List(context.Background(), ports.LeadFilter{Page: ports.Page{Page: math.MaxInt, Limit: ports.MaxLimit}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || len(items) != 0 {
		t.Fatalf("expected an empty page of 1, got %d of %d", len(items), total)
	}
}

func TestLeadRepository_SearchIsCaseInsensitive(t *testing.T) {
	repo := NewLeadRepository()
	_ = repo.Create(context.Background(), &domain.Lead{ID: "1", FirstName: "Priya", Email: "priya@example.com"})
	_ = repo.Create(context.Background(), &domain.Lead{ID: "2", FirstName: "Rahul", Phone: "9876543210"})

	items, _, _ := repo.List(context.Background(), ports.LeadFilter{Search: "PRIYA"})
	if len(items) != 1 || items[0].ID != "1" {
		t.Fatalf("unexpected search result: %+v", items)
	}
	items, _, _ = repo.List(context.Background(), ports.LeadFilter{Search: "654"})
	if len(items) != 1 || items[0].ID != "2" {
		t.Fatalf("expected phone match, got %+v", items)
	}
}

func TestRepositories_ReturnClones(t *testing.T) {
	repo := NewPropertyRepository()
	_ = repo.Create(context.Background(), &domain.Property{ID: "p1", Price: 100})

	got, _ := repo.FindByID(context.Background(), "p1")
	got.Price = 999

	again, _ := repo.FindByID(context.Background(), "p1")
	if again.Price != 100 {
		t.Fatalf("stored row was mutated through a returned pointer")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	_ = repo.Create(context.Background(), &domain.User{ID: "u1", Email: "a@b.com"})
	err := repo.Create(context.Background(), &domain.User{ID: "u2", Email: "A@B.com"})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRevocationStore_Expiry(t *testing.T) {
	s := NewRevocationStore()
	_ = s.Revoke(context.Background(), "live", time.Now().Add(time.Hour))
	_ = s.Revoke(context.Background(), "stale", time.Now().Add(-time.Second))

	if ok, _ := s.IsRevoked(context.Background(), "live"); !ok {
		t.Fatalf("expected live token to be revoked")
	}
	if ok, _ := s.IsRevoked(context.Background(), "stale"); ok {
		t.Fatalf("expected expired revocation to be forgotten")
	}
}
