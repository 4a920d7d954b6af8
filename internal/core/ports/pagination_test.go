package ports

import (
	"math"
	"testing"
)

func TestPage_Normalize(t *testing.T) {
	p := Page{}.Normalize()
	if p.Page != 1 || p.Limit != 10 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	p = Page{Page: 3, Limit: 500}.Normalize()
	if p.Limit != MaxLimit {
		t.Fatalf("expected limit capped at %d, got %d", MaxLimit, p.Limit)
	}
	if p.Skip() != 200 {
		t.Fatalf("expected skip 200, got %d", p.Skip())
	}
}

func TestPageResult_Pages(t *testing.T) {
	r := PageResult[int]{Total: 15, Page: 2, Limit: 10}
	if r.Pages() != 2 {
		t.Fatalf("expected 2 pages, got %d", r.Pages())
	}
	r = PageResult[int]{Total: 0, Limit: 10}
	if r.Pages() != 0 {
		t.Fatalf("expected 0 pages, got %d", r.Pages())
	}
}

func TestPage_Normalize_HugePage(t *testing.T) {
	p := Page{Page: math.MaxInt, Limit: MaxLimit}.Normalize()
	if p.Page != MaxPage {
		t.Fatalf("expected page capped at %d, got %d", MaxPage, p.Page)
	}
	if p.Skip() < 0 {
		t.Fatalf("skip overflowed: %d", p.Skip())
	}
}
