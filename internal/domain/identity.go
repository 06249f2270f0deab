package domain

import "strings"

// NormalizeCustomerEmail normaliza o email usado como identidade do cliente.
// Emails em branco caem no balde explícito de clientes não identificados,
// nunca são mesclados silenciosamente com outro cliente.
func NormalizeCustomerEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return UnidentifiedCustomerKey
	}
	return normalized
}
