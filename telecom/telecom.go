// Package telecom is the registry of mobile money operators payouts can be
// routed to.
package telecom

import "strings"

// Telecom is a mobile network operator.
type Telecom struct {
	// ID is the code stored as a contact's channel.
	ID        string
	Name      string
	ShortName string
	// Channel is the payout channel that settles to this operator.
	Channel string
	// Prefixes are the leading digits of national significant numbers.
	Prefixes []string
}

var (
	Vodacom = Telecom{ID: "VODACOM", Name: "Vodacom", ShortName: "M-Pesa", Channel: "TZ-VODACOM-B2C", Prefixes: []string{"74", "75", "76"}}
	Tigo    = Telecom{ID: "TIGO", Name: "Tigo", ShortName: "Mixx by Yas", Channel: "TZ-TIGO-B2C", Prefixes: []string{"65", "67", "71", "77"}}
	Airtel  = Telecom{ID: "AIRTEL", Name: "Airtel", ShortName: "Airtel Money", Channel: "TZ-AIRTEL-B2C", Prefixes: []string{"68", "69", "78"}}
	Halotel = Telecom{ID: "HALOTEL", Name: "Halotel", ShortName: "Halopesa", Channel: "TZ-HALOTEL-B2C", Prefixes: []string{"61", "62"}}
)

var all = []Telecom{Vodacom, Tigo, Airtel, Halotel}

// All returns the registered operators.
func All() []Telecom {
	out := make([]Telecom, len(all))
	copy(out, all)
	return out
}

// FromID resolves a contact channel code, case-insensitively.
func FromID(id string) (Telecom, bool) {
	id = strings.ToUpper(strings.TrimSpace(id))
	for _, t := range all {
		if t.ID == id {
			return t, true
		}
	}
	return Telecom{}, false
}

// FromChannel resolves a payout channel back to its operator. Overrides are
// not reversed: a Tigo channel always resolves to Tigo.
func FromChannel(channel string) (Telecom, bool) {
	channel = strings.ToUpper(strings.TrimSpace(channel))
	for _, t := range all {
		if t.Channel == channel {
			return t, true
		}
	}
	return Telecom{}, false
}

// FromNationalNumber picks the operator owning the prefix of a national
// significant number such as "754123456".
func FromNationalNumber(national string) (Telecom, bool) {
	for _, t := range all {
		for _, p := range t.Prefixes {
			if strings.HasPrefix(national, p) {
				return t, true
			}
		}
	}
	return Telecom{}, false
}

// ChannelOverride redirects payouts for one operator to another channel.
type ChannelOverride struct {
	Name string
	From string
	To   string
}

// VodacomToTigoOverride sends Vodacom payouts through the Tigo channel.
// Drop it from ChannelOverrides once the Vodacom channel is restored.
var VodacomToTigoOverride = ChannelOverride{
	Name: "vodacom-to-tigo",
	From: Vodacom.ID,
	To:   Tigo.Channel,
}

// ChannelOverrides are applied by PayoutChannel in order; the first match wins.
var ChannelOverrides = []ChannelOverride{VodacomToTigoOverride}

// PayoutChannel returns the channel a payout to t should be sent through.
func PayoutChannel(t Telecom) string {
	for _, o := range ChannelOverrides {
		if o.From == t.ID {
			return o.To
		}
	}
	return t.Channel
}
