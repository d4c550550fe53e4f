package utils

import "testing"

func TestValidateAndNormalizeRole(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Administrador", "administrador", true},
		{"motorista", "motorista", true},
		{"OPERADOR_BALANCA", "operador_balanca", true},
		{" gestor_vendas ", "gestor_vendas", true},
		{"gerente", "gerente", false},
		{"", "", false},
	}

	for _, c := range cases {
		got, ok := ValidateAndNormalizeRole(c.in)
		if got != c.want || ok != c.ok {
			t.Fatalf("ValidateAndNormalizeRole(%q) = (%q, %v); want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	if !IsValidRole(RoleAdmin) {
		t.Fatalf("expected administrador to be valid")
	}
	if !IsValidRole("Motorista") {
		t.Fatalf("expected case-insensitive match for motorista")
	}
	if IsValidRole("not-a-role") {
		t.Fatalf("expected not-a-role to be invalid")
	}
}
