package validators

import (
	"strings"
	"unicode"
)

// IsPhonePlausible aceita telefones com ao menos 8 dígitos, permitindo
// máscara comum (+, espaços, parênteses, hífen). Não valida operadora nem
// DDD: a confirmação real acontece pelo contato do barbeiro.
func IsPhonePlausible(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == ' ' || r == '(' || r == ')' || r == '-':
			// máscara permitida
		default:
			return false
		}
	}

	return digits >= 8
}
