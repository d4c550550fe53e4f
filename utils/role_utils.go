package utils

import (
	"strings"
)

// Role names mirror the values stored in the users table.
const (
	RoleAdmin    = "administrador"
	RoleDriver   = "motorista"
	RoleOperator = "operador_balanca"
	RoleSales    = "gestor_vendas"
)

var ValidUserRoles = map[string]bool{
	RoleAdmin:    true,
	RoleDriver:   true,
	RoleOperator: true,
	RoleSales:    true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (lowercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(role))
	return normalized, ValidUserRoles[normalized]
}

// IsValidRole checks if a role is valid without normalizing it
func IsValidRole(role string) bool {
	return ValidUserRoles[strings.ToLower(role)]
}
