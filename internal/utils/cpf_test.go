package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		{name: "valid without formatting", cpf: "12345678909", valid: true},
		{name: "valid with formatting", cpf: "123.456.789-09", valid: true},
		{name: "valid real example", cpf: "52998224725", valid: true},
		{name: "valid real example 2", cpf: "11144477735", valid: true},
		{name: "wrong check digit", cpf: "12345678900", valid: false},
		{name: "all zeros", cpf: "00000000000", valid: false},
		{name: "all same digit", cpf: "111.111.111-11", valid: false},
		{name: "too short", cpf: "1234567890", valid: false},
		{name: "too long", cpf: "123456789091", valid: false},
		{name: "empty", cpf: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateCPF(tt.cpf))
		})
	}
}

func TestFormatCPF(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "52998224725", want: "529.982.247-25"},
		{in: "529.982.247-25", want: "529.982.247-25"},
		{in: "5299", want: "529.9"},
		{in: "5299822", want: "529.982.2"},
		{in: "5299822472", want: "529.982.247-2"},
		{in: "5299822472599", want: "529.982.247-25"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCPF(tt.in))
		})
	}
}

func TestFormatCPF_ShapeAndRoundTrip(t *testing.T) {
	inputs := []string{"00000000000", "12345678909", "98765432100", "52998224725", "11144477735"}

	for _, raw := range inputs {
		masked := FormatCPF(raw)

		assert.Regexp(t, `^\d{3}\.\d{3}\.\d{3}-\d{2}$`, masked)
		assert.Equal(t, OnlyDigits(raw), OnlyDigits(masked))
		assert.Equal(t, OnlyDigits(raw), OnlyDigits(FormatCPF(OnlyDigits(raw))))
	}
}

func TestOnlyDigits(t *testing.T) {
	assert.Equal(t, "88999998888", OnlyDigits("(88) 99999-8888"))
	assert.Equal(t, "", OnlyDigits("abc"))
	assert.Equal(t, "123", OnlyDigits(OnlyDigits("1a2b3")))
}
