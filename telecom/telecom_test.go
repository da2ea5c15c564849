package telecom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromNationalNumber(t *testing.T) {
	tests := []struct {
		national string
		want     string
		ok       bool
	}{
		{"754123456", Vodacom.ID, true},
		{"712345678", Tigo.ID, true},
		{"684123456", Airtel.ID, true},
		{"621234567", Halotel.ID, true},
		{"221234567", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.national, func(t *testing.T) {
			got, ok := FromNationalNumber(tt.national)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestPayoutChannelAppliesOverride(t *testing.T) {
	assert.Equal(t, Tigo.Channel, PayoutChannel(Vodacom))
	assert.Equal(t, Airtel.Channel, PayoutChannel(Airtel))
	assert.Equal(t, Tigo.Channel, PayoutChannel(Tigo))
}

func TestPayoutChannelWithoutOverrides(t *testing.T) {
	saved := ChannelOverrides
	ChannelOverrides = nil
	t.Cleanup(func() { ChannelOverrides = saved })

	assert.Equal(t, Vodacom.Channel, PayoutChannel(Vodacom))
}

func TestLookups(t *testing.T) {
	v, ok := FromID(" vodacom ")
	assert.True(t, ok)
	assert.Equal(t, "Vodacom", v.Name)

	tg, ok := FromChannel("tz-tigo-b2c")
	assert.True(t, ok)
	assert.Equal(t, Tigo.ID, tg.ID)

	_, ok = FromChannel("TZ-BANK-B2C")
	assert.False(t, ok)
}
