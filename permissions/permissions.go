// Package permissions is the static catalog of capabilities a user can be
// granted. Values are matched by string, so an access list coming from the
// backend resolves against the catalog without any mapping table.
package permissions

import "sort"

// Permission is a single capability, named "<domain>.<action>".
type Permission string

// Contact permissions
const (
	ContactView   Permission = "contact.view"
	ContactCreate Permission = "contact.create"
	ContactUpdate Permission = "contact.update"
	ContactDelete Permission = "contact.delete"
)

// Payout permissions
const (
	PayoutView    Permission = "payout.view"
	PayoutCreate  Permission = "payout.create"
	PayoutApprove Permission = "payout.approve"
)

// Wallet permissions
const (
	WalletViewBalance   Permission = "wallet.view_balance"
	WalletViewStatement Permission = "wallet.view_statement"
)

// Profile permissions
const (
	ProfileView Permission = "profile.view"
)

// Role permissions
const (
	RoleView   Permission = "role.view"
	RoleCreate Permission = "role.create"
	RoleUpdate Permission = "role.update"
	RoleDelete Permission = "role.delete"
)

// Managed user permissions
const (
	UserView          Permission = "user.view"
	UserCreate        Permission = "user.create"
	UserUpdate        Permission = "user.update"
	UserDelete        Permission = "user.delete"
	UserResetPassword Permission = "user.reset_password"
)

var catalog = map[Permission]struct{}{
	ContactView: {}, ContactCreate: {}, ContactUpdate: {}, ContactDelete: {},
	PayoutView: {}, PayoutCreate: {}, PayoutApprove: {},
	WalletViewBalance: {}, WalletViewStatement: {},
	ProfileView: {},
	RoleView: {}, RoleCreate: {}, RoleUpdate: {}, RoleDelete: {},
	UserView: {}, UserCreate: {}, UserUpdate: {}, UserDelete: {}, UserResetPassword: {},
}

// Catalog returns every known permission in lexical order.
func Catalog() []Permission {
	out := make([]Permission, 0, len(catalog))
	for p := range catalog {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Lookup resolves a raw string against the catalog.
func Lookup(raw string) (Permission, bool) {
	p := Permission(raw)
	_, ok := catalog[p]
	return p, ok
}

// Set is an immutable collection of permissions.
type Set struct {
	members map[Permission]struct{}
}

// FromAccessList keeps the entries of access that are in the catalog.
// Unknown strings are dropped.
func FromAccessList(access []string) Set {
	members := make(map[Permission]struct{}, len(access))
	for _, raw := range access {
		if p, ok := Lookup(raw); ok {
			members[p] = struct{}{}
		}
	}
	return Set{members: members}
}

// Of builds a set from already-typed permissions, still filtered by the catalog.
func Of(perms ...Permission) Set {
	raw := make([]string, len(perms))
	for i, p := range perms {
		raw[i] = string(p)
	}
	return FromAccessList(raw)
}

// Has reports whether p is a member of the set.
func (s Set) Has(p Permission) bool {
	_, ok := s.members[p]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int {
	return len(s.members)
}

// List returns the members in lexical order.
func (s Set) List() []Permission {
	out := make([]Permission, 0, len(s.members))
	for p := range s.members {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Strings is List as raw strings, the shape the backend sends.
func (s Set) Strings() []string {
	list := s.List()
	out := make([]string, len(list))
	for i, p := range list {
		out[i] = string(p)
	}
	return out
}

// Union merges the members of s and other.
func (s Set) Union(other Set) Set {
	members := make(map[Permission]struct{}, len(s.members)+len(other.members))
	for p := range s.members {
		members[p] = struct{}{}
	}
	for p := range other.members {
		members[p] = struct{}{}
	}
	return Set{members: members}
}
