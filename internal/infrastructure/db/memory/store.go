// Package memory holds in-process repository implementations. They back the
// service and handler tests and are never wired into the production binary.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/recrm/crm-api/internal/core/ports"
)

// table is a mutex-guarded map of cloned rows keyed by id.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[string]T
	// Err, when set, is returned by every call. Tests use it to simulate an
	// unreachable backend.
	Err error
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

// all returns the rows ordered by id, descending, which is the tie-break
// order of the Mongo repositories.
func (t *table[T]) all() []T {
	ids := make([]string, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	return out
}

// paginate sorts matched with less and cuts out the requested page.
func paginate[T any](matched []T, page ports.Page, less func(a, b T) bool) ([]T, int64) {
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })
	total := int64(len(matched))

	page = page.Normalize()
	skip := int(page.Skip())
	if skip >= len(matched) {
		return []T{}, total
	}
	end := skip + page.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
