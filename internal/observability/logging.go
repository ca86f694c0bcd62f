package observability

import (
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCPF masks a CPF number for logging. Formatted input is reduced to its
// digits first.
func MaskCPF(cpf string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cpf)
	if len(digits) != 11 {
		return "***.***.***-**"
	}
	return digits[:3] + ".***." + digits[6:9] + "-**"
}

var sensitiveFields = map[string]bool{
	"cpf":         true,
	"rg":          true,
	"nis":         true,
	"contact":     true,
	"password":    true,
	"newPassword": true,
	"accessToken": true,
}

// MaskSensitiveData returns a copy of data with personal fields masked, ready
// for logs and the audit trail
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch {
		case k == "cpf":
			if s, ok := v.(string); ok {
				masked[k] = MaskCPF(s)
				continue
			}
			masked[k] = "********"
		case sensitiveFields[k]:
			masked[k] = "********"
		default:
			masked[k] = v
		}
	}
	return masked
}
