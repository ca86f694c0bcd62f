package utils

import (
	"strings"
)

// OnlyDigits strips every non-digit character from s
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// FormatCPF renders the digits of cpf as NNN.NNN.NNN-NN. Partial input is
// punctuated progressively and anything past 11 digits is dropped.
func FormatCPF(cpf string) string {
	d := OnlyDigits(cpf)
	if len(d) > 11 {
		d = d[:11]
	}

	var b strings.Builder
	for i, r := range d {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ValidateCPF validates a CPF number.
// It checks if the CPF has 11 digits and validates the check digits
func ValidateCPF(cpf string) bool {
	d := OnlyDigits(cpf)
	if len(d) != 11 {
		return false
	}

	allSame := true
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	return cpfCheckDigit(d[:9]) == d[9] && cpfCheckDigit(d[:10]) == d[10]
}

// cpfCheckDigit computes the mod-11 check digit over the given prefix
func cpfCheckDigit(prefix string) byte {
	sum := 0
	weight := len(prefix) + 1
	for i := 0; i < len(prefix); i++ {
		sum += int(prefix[i]-'0') * (weight - i)
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}
