package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromAccessList(t *testing.T) {
	set := FromAccessList([]string{"payout.create", "contact.view", "not.a.permission", "payout.create"})

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Has(PayoutCreate))
	assert.True(t, set.Has(ContactView))
	assert.False(t, set.Has(PayoutApprove))
	assert.False(t, set.Has(Permission("not.a.permission")))
	assert.Equal(t, []string{"contact.view", "payout.create"}, set.Strings())
}

func TestLookup(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"payout.approve", true},
		{"wallet.view_statement", true},
		{"PAYOUT.APPROVE", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, ok := Lookup(tt.raw)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCatalogIsSortedAndComplete(t *testing.T) {
	all := Catalog()
	assert.Len(t, all, len(catalog))
	for i := 1; i < len(all); i++ {
		assert.Less(t, string(all[i-1]), string(all[i]))
	}
}

func TestUnion(t *testing.T) {
	a := Of(PayoutView)
	b := Of(PayoutApprove, PayoutView)
	u := a.Union(b)
	assert.Equal(t, []Permission{PayoutApprove, PayoutView}, u.List())
	assert.Equal(t, 1, a.Len())
}
