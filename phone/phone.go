// Package phone parses and formats subscriber numbers. Numbers without a
// country code are read as Tanzanian.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/temboplus/afloat-go/telecom"
)

// DefaultRegion is used for numbers written without a country code.
const DefaultRegion = "TZ"

// Number is a parsed phone number.
type Number struct {
	n *phonenumbers.PhoneNumber
}

// From parses s. It reports false when s is not a possible phone number
// for its region, which keeps bank account numbers from being mistaken for
// phone numbers by length alone.
func From(s string) (Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Number{}, false
	}
	num, err := phonenumbers.Parse(s, DefaultRegion)
	if err != nil {
		return Number{}, false
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return Number{}, false
	}
	return Number{n: num}, true
}

// Valid reports whether the number matches a real numbering plan.
func (p Number) Valid() bool {
	return p.n != nil && phonenumbers.IsValidNumber(p.n)
}

// Format is the international display form, e.g. "+255 754 123 456".
func (p Number) Format() string {
	if p.n == nil {
		return ""
	}
	return phonenumbers.Format(p.n, phonenumbers.INTERNATIONAL)
}

// Compact is the E.164 form without spaces, e.g. "+255754123456".
func (p Number) Compact() string {
	if p.n == nil {
		return ""
	}
	return phonenumbers.Format(p.n, phonenumbers.E164)
}

// MSISDN is Compact without the leading plus, the form payout APIs expect.
func (p Number) MSISDN() string {
	return strings.TrimPrefix(p.Compact(), "+")
}

// National is the national significant number, e.g. "754123456".
func (p Number) National() string {
	if p.n == nil {
		return ""
	}
	return phonenumbers.GetNationalSignificantNumber(p.n)
}

// Telecom resolves the operator of a Tanzanian number from its prefix.
func (p Number) Telecom() (telecom.Telecom, bool) {
	if p.n == nil || phonenumbers.GetRegionCodeForNumber(p.n) != DefaultRegion {
		return telecom.Telecom{}, false
	}
	return telecom.FromNationalNumber(p.National())
}

// Equal compares two numbers by their E.164 form.
func (p Number) Equal(other Number) bool {
	return p.Compact() == other.Compact()
}

func (p Number) String() string {
	return p.Format()
}
