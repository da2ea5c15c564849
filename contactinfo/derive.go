package contactinfo

import (
	"strings"

	"github.com/temboplus/afloat-go/bank"
	"github.com/temboplus/afloat-go/phone"
)

// Source is the raw routing data stored on contacts and payouts.
type Source struct {
	// Identifier is an account number, a phone number, or for payouts a
	// "SWIFTCODE:ACCOUNTNUMBER" pair.
	Identifier string
	// Channel is a SWIFT code, an operator code or a payout channel.
	Channel string
	// Bank is set when the record declares itself a bank record.
	Bank bool
	Name string
}

// Derive resolves src into a ContactInfo. The identifier is read as a phone
// number first; failing that it is read as a bank destination when the
// channel names a bank or the record is a bank record. It reports false when
// neither reading succeeds.
func Derive(src Source) (ContactInfo, bool) {
	identifier := strings.TrimSpace(src.Identifier)
	if identifier == "" {
		return ContactInfo{}, false
	}

	// A "SWIFTCODE:ACCOUNTNUMBER" pair is never a phone number, even when
	// the account number alone would parse as one.
	if !strings.Contains(identifier, ":") {
		if num, ok := phone.From(identifier); ok && num.Valid() {
			return NewMobile(src.Name, num), true
		}
	}

	_, channelIsBank := bank.FromSWIFTCode(src.Channel)
	if !channelIsBank && !src.Bank && !strings.EqualFold(src.Channel, bank.PayoutChannel) {
		return ContactInfo{}, false
	}

	swiftCode, accNo := src.Channel, identifier
	if parts := strings.SplitN(identifier, ":", 2); len(parts) == 2 {
		swiftCode, accNo = parts[0], parts[1]
	}
	b, ok := bank.FromSWIFTCode(swiftCode)
	if !ok || strings.TrimSpace(accNo) == "" {
		return ContactInfo{}, false
	}
	return NewBank(src.Name, b, accNo), true
}
