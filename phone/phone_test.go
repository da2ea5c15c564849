package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temboplus/afloat-go/telecom"
)

func TestFromFormats(t *testing.T) {
	inputs := []string{"0754123456", "+255754123456", "255754123456", "+255 754 123 456"}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			n, ok := From(in)
			require.True(t, ok)
			assert.True(t, n.Valid())
			assert.Equal(t, "+255754123456", n.Compact())
			assert.Equal(t, "255754123456", n.MSISDN())
			assert.Equal(t, "754123456", n.National())
			assert.Equal(t, "+255 754 123 456", n.Format())
		})
	}
}

func TestFromRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not a number", "12345678901234567890"} {
		t.Run(in, func(t *testing.T) {
			_, ok := From(in)
			assert.False(t, ok)
		})
	}
}

func TestTelecom(t *testing.T) {
	n, ok := From("0712345678")
	require.True(t, ok)
	op, ok := n.Telecom()
	require.True(t, ok)
	assert.Equal(t, telecom.Tigo.ID, op.ID)

	ke, ok := From("+254712345678")
	require.True(t, ok)
	_, ok = ke.Telecom()
	assert.False(t, ok)
}

func TestEqual(t *testing.T) {
	a, _ := From("0754123456")
	b, _ := From("+255 754 123 456")
	assert.True(t, a.Equal(b))
}
