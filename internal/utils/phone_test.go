package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "mobile", in: "88999998888", want: "(88) 99999-8888"},
		{name: "landline", in: "8833334444", want: "(88) 3333-4444"},
		{name: "already formatted mobile", in: "(88) 99999-8888", want: "(88) 99999-8888"},
		{name: "short number unchanged", in: "99998888", want: "99998888"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPhone(tt.in))
		})
	}
}

func TestFormatPhone_Shape(t *testing.T) {
	for _, d := range []string{"11987654321", "85912345678", "21999990000"} {
		assert.Regexp(t, `^\(\d{2}\) \d{5}-\d{4}$`, FormatPhone(d))
		assert.Equal(t, d, OnlyDigits(FormatPhone(d)))
	}
	for _, d := range []string{"1133334444", "8532221111"} {
		assert.Regexp(t, `^\(\d{2}\) \d{4}-\d{4}$`, FormatPhone(d))
		assert.Equal(t, d, OnlyDigits(FormatPhone(d)))
	}
}

func TestIsPossibleBRPhone(t *testing.T) {
	assert.True(t, IsPossibleBRPhone("(88) 99999-8888"))
	assert.True(t, IsPossibleBRPhone("8833334444"))
	assert.False(t, IsPossibleBRPhone("999"))
	assert.False(t, IsPossibleBRPhone("889999988881"))
	assert.False(t, IsPossibleBRPhone(""))
}
