package models

import (
	"encoding/json"
	"strings"

	"github.com/temboplus/afloat-go/permissions"
	"github.com/temboplus/afloat-go/schema"
)

// UserData is the raw material a User is built from.
type UserData struct {
	Name          string   `json:"name"`
	Identity      string   `json:"identity" validate:"required"`
	Profile       Profile  `json:"profile"`
	Token         string   `json:"token" validate:"required"`
	ResetPassword bool     `json:"resetPassword"`
	Access        []string `json:"access"`
}

// User is the signed-in identity. The permission set is resolved once, at
// construction, and never changes.
type User struct {
	name          string
	identity      string
	profile       Profile
	token         string
	resetPassword bool
	permissions   permissions.Set
}

// NewUser validates data and resolves its access list against the
// permission catalog.
func NewUser(data UserData) (*User, error) {
	data.Identity = strings.TrimSpace(data.Identity)
	if err := schema.Validate(data); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(data.Name)
	if name == "" {
		name = data.Profile.FullName()
	}
	return &User{
		name:          name,
		identity:      data.Identity,
		profile:       data.Profile,
		token:         data.Token,
		resetPassword: data.ResetPassword,
		permissions:   permissions.FromAccessList(data.Access),
	}, nil
}

// UserFromJSON decodes a serialized user, reporting false on any failure.
func UserFromJSON(raw []byte) (*User, bool) {
	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, false
	}
	return &u, true
}

func (u *User) Name() string {
	return u.name
}

// Identity is the email address or phone number the user signs in with.
func (u *User) Identity() string {
	return u.identity
}

func (u *User) Profile() Profile {
	return u.profile
}

func (u *User) Token() string {
	return u.token
}

// ResetPassword reports whether the user must change their password
// before doing anything else.
func (u *User) ResetPassword() bool {
	return u.resetPassword
}

func (u *User) Permissions() []permissions.Permission {
	return u.permissions.List()
}

// Can reports whether the user holds p.
func (u *User) Can(p permissions.Permission) bool {
	if u == nil {
		return false
	}
	return u.permissions.Has(p)
}

// CanAll reports whether the user holds every one of perms.
func (u *User) CanAll(perms ...permissions.Permission) bool {
	for _, p := range perms {
		if !u.Can(p) {
			return false
		}
	}
	return true
}

// MarshalJSON writes the persistence envelope.
func (u *User) MarshalJSON() ([]byte, error) {
	return json.Marshal(UserData{
		Name:          u.name,
		Identity:      u.identity,
		Profile:       u.profile,
		Token:         u.token,
		ResetPassword: u.resetPassword,
		Access:        u.permissions.Strings(),
	})
}

// UnmarshalJSON reads the persistence envelope and re-validates it.
func (u *User) UnmarshalJSON(raw []byte) error {
	var data UserData
	if err := json.Unmarshal(raw, &data); err != nil {
		return err
	}
	built, err := NewUser(data)
	if err != nil {
		return err
	}
	*u = *built
	return nil
}
