// Package narration encodes payout recipients into the free-text description
// attached to a payout, and recovers them from descriptions written by this
// package or by the legacy JSON-embedding format.
//
// Current format:
//
//	PAYOUT TO MOBILE +255754123456 JANE DOE
//	PAYOUT TO BANK CRDB 1234567890 JANE SMITH
//
// Legacy format:
//
//	TO_MOMO => {"phone_number":"255754123456","username":"jane doe"}
//	TO_BANK => {"account_number":"1234567890","account_name":"JANE SMITH","swift_code":"CORUTZTZ"}
//
// Parsing never fails loudly: text that matches neither format simply yields
// no contact.
package narration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/contactinfo"
	"github.com/temboplus/afloat-go/phone"
)

const (
	mobilePrefix       = "PAYOUT TO MOBILE"
	bankPrefix         = "PAYOUT TO BANK"
	legacyMobilePrefix = "TO_MOMO"
	legacyBankPrefix   = "TO_BANK"
	legacySeparator    = "=>"

	// providerPrefix is prepended by the mobile money provider on some
	// statements, whatever the payout type.
	providerPrefix = "MOBILE TRANSFER "
)

const (
	mediumLimit = 50
	mediumKeep  = 47
	shortLimit  = 35
	shortKeep   = 32
	ellipsis    = "..."
)

// GenerateMobilePayoutNarration renders a mobile recipient in the current format.
func GenerateMobilePayoutNarration(info contactinfo.MobileContactInfo) string {
	return strings.ToUpper(fmt.Sprintf("%s %s %s",
		mobilePrefix,
		strings.TrimSpace(info.PhoneNumber.Compact()),
		strings.TrimSpace(info.Name),
	))
}

// GenerateBankPayoutNarration renders a bank recipient in the current format.
func GenerateBankPayoutNarration(info contactinfo.BankContactInfo) string {
	return strings.ToUpper(fmt.Sprintf("%s %s %s %s",
		bankPrefix,
		strings.TrimSpace(info.Bank.ShortName),
		strings.TrimSpace(info.AccNo),
		strings.TrimSpace(info.AccName),
	))
}

// Generate renders either variant.
func Generate(info contactinfo.ContactInfo) (string, error) {
	switch info.Kind {
	case contactinfo.KindMobile:
		if info.Mobile == nil {
			return "", fmt.Errorf("mobile contact info is empty")
		}
		return GenerateMobilePayoutNarration(*info.Mobile), nil
	case contactinfo.KindBank:
		if info.Bank == nil {
			return "", fmt.Errorf("bank contact info is empty")
		}
		return GenerateBankPayoutNarration(*info.Bank), nil
	default:
		return "", fmt.Errorf("unknown contact kind %q", info.Kind)
	}
}

// Narration is a payout description of unknown vintage.
type Narration struct {
	text string
}

// New wraps text.
func New(text string) Narration {
	return Narration{text: text}
}

func (n Narration) String() string {
	return n.text
}

// ContactDetails tries the bank formats, then the mobile formats.
func (n Narration) ContactDetails() (contactinfo.ContactInfo, bool) {
	if b, ok := n.BankContactDetails(); ok {
		return contactinfo.ContactInfo{Kind: contactinfo.KindBank, Bank: &b}, true
	}
	if m, ok := n.MobileContactDetails(); ok {
		return contactinfo.ContactInfo{Kind: contactinfo.KindMobile, Mobile: &m}, true
	}
	return contactinfo.ContactInfo{}, false
}

// BankContactDetails recovers a bank recipient.
func (n Narration) BankContactDetails() (contactinfo.BankContactInfo, bool) {
	text := n.stripped()

	if rest, ok := cutPrefixFold(text, bankPrefix); ok {
		tokens := strings.Fields(rest)
		if len(tokens) < 3 {
			return contactinfo.BankContactInfo{}, false
		}
		b, ok := bank.FromShortName(tokens[0])
		if !ok {
			if b, ok = bank.FromSWIFTCode(tokens[0]); !ok {
				return contactinfo.BankContactInfo{}, false
			}
		}
		return contactinfo.BankContactInfo{
			AccName: titleCase(strings.Join(tokens[2:], " ")),
			Bank:    b,
			AccNo:   tokens[1],
		}, true
	}

	if rest, ok := cutPrefixFold(text, legacyBankPrefix); ok {
		var payload struct {
			AccountNumber flexString `json:"account_number"`
			AccountName   flexString `json:"account_name"`
			SwiftCode     flexString `json:"swift_code"`
		}
		if !decodeLegacy(rest, &payload) {
			return contactinfo.BankContactInfo{}, false
		}
		accNo := strings.TrimSpace(string(payload.AccountNumber))
		accName := normalizeName(string(payload.AccountName))
		if accNo == "" || accName == "" {
			return contactinfo.BankContactInfo{}, false
		}
		b, ok := bank.FromSWIFTCode(string(payload.SwiftCode))
		if !ok {
			return contactinfo.BankContactInfo{}, false
		}
		return contactinfo.BankContactInfo{AccName: accName, Bank: b, AccNo: accNo}, true
	}

	return contactinfo.BankContactInfo{}, false
}

// MobileContactDetails recovers a mobile recipient.
func (n Narration) MobileContactDetails() (contactinfo.MobileContactInfo, bool) {
	text := n.stripped()

	if rest, ok := cutPrefixFold(text, mobilePrefix); ok {
		tokens := strings.Fields(rest)
		if len(tokens) < 2 {
			return contactinfo.MobileContactInfo{}, false
		}
		num, ok := phone.From(tokens[0])
		if !ok {
			return contactinfo.MobileContactInfo{}, false
		}
		return contactinfo.MobileContactInfo{
			Name:        titleCase(strings.Join(tokens[1:], " ")),
			PhoneNumber: num,
		}, true
	}

	if rest, ok := cutPrefixFold(text, legacyMobilePrefix); ok {
		var payload struct {
			PhoneNumber flexString `json:"phone_number"`
			Username    flexString `json:"username"`
		}
		if !decodeLegacy(rest, &payload) {
			return contactinfo.MobileContactInfo{}, false
		}
		name := normalizeName(string(payload.Username))
		if name == "" {
			return contactinfo.MobileContactInfo{}, false
		}
		num, ok := phone.From(string(payload.PhoneNumber))
		if !ok {
			return contactinfo.MobileContactInfo{}, false
		}
		return contactinfo.MobileContactInfo{Name: name, PhoneNumber: num}, true
	}

	return contactinfo.MobileContactInfo{}, false
}

// Medium limits the text for list views.
func (n Narration) Medium() string {
	return truncate(n.text, mediumLimit, mediumKeep)
}

// Short limits the text for compact views.
func (n Narration) Short() string {
	return truncate(n.text, shortLimit, shortKeep)
}

func (n Narration) stripped() string {
	text := strings.TrimSpace(n.text)
	if rest, ok := cutPrefixFold(text, providerPrefix); ok {
		text = strings.TrimSpace(rest)
	}
	return text
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return s[len(prefix):], true
}

func decodeLegacy(rest string, dst any) bool {
	idx := strings.Index(rest, legacySeparator)
	if idx < 0 {
		return false
	}
	raw := strings.TrimSpace(rest[idx+len(legacySeparator):])
	return json.Unmarshal([]byte(raw), dst) == nil
}

func normalizeName(s string) string {
	return titleCase(strings.Join(strings.Fields(s), " "))
}

func titleCase(s string) string {
	// Casers carry state, so one is built per call.
	return cases.Title(language.Und).String(s)
}

func truncate(s string, limit, keep int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:keep]) + ellipsis
}

// flexString accepts a JSON string or number; legacy payloads wrote account
// and phone numbers either way.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*f = flexString(num.String())
	return nil
}
