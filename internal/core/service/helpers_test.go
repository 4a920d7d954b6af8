package service

import (
	"sync"

	"github.com/recrm/crm-api/internal/core/domain"
	"github.com/recrm/crm-api/internal/infrastructure/db/memory"
)

var (
	admin   = domain.Identity{ID: "admin-1", Email: "admin@crm.test", Role: domain.RoleAdmin}
	agent   = domain.Identity{ID: "agent-1", Email: "agent1@crm.test", Role: domain.RoleAgent}
	agentB  = domain.Identity{ID: "agent-2", Email: "agent2@crm.test", Role: domain.RoleAgent}
	visitor = domain.Identity{ID: "client-1", Email: "client@crm.test", Role: domain.RoleClient}
)

// seededUsers stores the shared identities as active users.
func seededUsers() *memory.UserRepository {
	users := memory.NewUserRepository()
	for _, id := range []domain.Identity{admin, agent, agentB, visitor} {
		users.Put(&domain.User{ID: id.ID, Email: id.Email, Role: id.Role, IsActive: true})
	}
	return users
}

type recordedActivities struct {
	mu    sync.Mutex
	items []domain.Activity
}

func (r *recordedActivities) Record(a domain.Activity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, a)
}

func (r *recordedActivities) all() []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Activity(nil), r.items...)
}

func ptr[T any](v T) *T { return &v }
