package utils

import (
	"github.com/nyaruka/phonenumbers"
)

// FormatPhone renders a Brazilian phone number: 11 digits as (NN) NNNNN-NNNN,
// 10 digits as (NN) NNNN-NNNN. Any other length is returned unchanged.
func FormatPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}

// IsPossibleBRPhone reports whether phone has 10 or 11 digits and is a
// plausible Brazilian number according to libphonenumber
func IsPossibleBRPhone(phone string) bool {
	d := OnlyDigits(phone)
	if len(d) != 10 && len(d) != 11 {
		return false
	}

	num, err := phonenumbers.Parse(d, "BR")
	if err != nil {
		return false
	}
	return num.GetCountryCode() == 55 && phonenumbers.IsPossibleNumber(num)
}
