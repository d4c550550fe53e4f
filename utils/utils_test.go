package utils

import "testing"

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(45, 2, 10)
	if p.TotalItems != 45 || p.CurrentPage != 2 || p.PageSize != 10 || p.TotalPages != 5 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestCreatePaginationDefaults(t *testing.T) {
	p := CreatePagination(3, 0, -1)
	if p.CurrentPage != 1 {
		t.Fatalf("expected default page 1, got %d", p.CurrentPage)
	}
	if p.PageSize != 10 {
		t.Fatalf("expected default page size 10, got %d", p.PageSize)
	}
	if p.TotalPages != 1 {
		t.Fatalf("expected 1 page for 3 items, got %d", p.TotalPages)
	}
}

func TestCreatePaginationEmpty(t *testing.T) {
	p := CreatePagination(0, 1, 10)
	if p.TotalPages != 0 {
		t.Fatalf("expected 0 pages for 0 items, got %d", p.TotalPages)
	}
}
