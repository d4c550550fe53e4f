package utils

import (
	"database/sql"
	"testing"
)

func TestNullStringToStringPtr(t *testing.T) {
	ns := sql.NullString{String: "hello", Valid: true}
	p := NullStringToStringPtr(ns)
	if p == nil || *p != "hello" {
		t.Fatalf("expected pointer to 'hello', got %v", p)
	}

	ns2 := sql.NullString{Valid: false}
	if p2 := NullStringToStringPtr(ns2); p2 != nil {
		t.Fatalf("expected nil pointer, got %v", p2)
	}
}

func TestPointerToString(t *testing.T) {
	s := "mundo"
	if PointerToString(&s) != "mundo" {
		t.Fatalf("expected 'mundo'")
	}
	if PointerToString(nil) != "<nil>" {
		t.Fatalf("expected '<nil>' for nil pointer")
	}
}
