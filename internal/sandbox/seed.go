package sandbox

import (
	"fmt"

	"github.com/temboplus/afloat-go/internal/sandbox/repository"
	"github.com/temboplus/afloat-go/internal/utils"
	"github.com/temboplus/afloat-go/models"
	"github.com/temboplus/afloat-go/permissions"
)

// OpeningBalance is credited to the seeded wallet.
const OpeningBalance models.Amount = 10_000_000

// Seeded logins. All share the seed password.
const (
	AdminIdentity    = "admin@afloat.test"
	MakerIdentity    = "maker@afloat.test"
	ApproverIdentity = "approver@afloat.test"
)

// Fixtures are the records Seed created.
type Fixtures struct {
	Profile models.Profile
	Wallet  models.Wallet
	Roles   map[string]models.Role
}

var seedRoles = []struct {
	id, name string
	access   []permissions.Permission
}{
	{"role-admin", "Admin", permissions.Catalog()},
	{"role-maker", "Maker", []permissions.Permission{
		permissions.ContactView, permissions.ContactCreate, permissions.ContactUpdate, permissions.ContactDelete,
		permissions.PayoutView, permissions.PayoutCreate,
		permissions.WalletViewBalance, permissions.ProfileView,
	}},
	{"role-approver", "Approver", []permissions.Permission{
		permissions.PayoutView, permissions.PayoutApprove,
		permissions.WalletViewBalance, permissions.WalletViewStatement, permissions.ProfileView,
	}},
}

var seedUsers = []struct {
	identity, name, roleID string
}{
	{AdminIdentity, "Amina Admin", "role-admin"},
	{MakerIdentity, "Musa Maker", "role-maker"},
	{ApproverIdentity, "Anna Approver", "role-approver"},
}

// Seed creates one business profile with a funded wallet, the Admin, Maker
// and Approver roles, and a login for each role.
func Seed(store *repository.Store, password string) (Fixtures, error) {
	now := store.Now()
	fx := Fixtures{Roles: make(map[string]models.Role)}

	accountNo := utils.GenerateAccountNumber()
	email := AdminIdentity
	fx.Profile = models.Profile{
		ID:        utils.GenerateID("prf"),
		FirstName: "Afloat",
		LastName:  "Sandbox",
		AccountNo: accountNo,
		Email:     &email,
	}
	if err := store.CreateProfile(fx.Profile); err != nil {
		return Fixtures{}, fmt.Errorf("failed to seed profile: %w", err)
	}

	fx.Wallet = models.Wallet{
		ID:           utils.GenerateID("wal"),
		ProfileID:    fx.Profile.ID,
		AccountNo:    accountNo,
		AccountName:  fx.Profile.FullName(),
		Channel:      "AFLOAT",
		CountryCode:  "TZ",
		CurrencyCode: "TZS",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := store.CreateWallet(fx.Wallet, OpeningBalance); err != nil {
		return Fixtures{}, fmt.Errorf("failed to seed wallet: %w", err)
	}

	for _, r := range seedRoles {
		role := models.Role{
			ID:        r.id,
			Name:      r.name,
			Access:    permissions.Of(r.access...).Strings(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.CreateRole(role); err != nil {
			return Fixtures{}, fmt.Errorf("failed to seed role %s: %w", r.name, err)
		}
		fx.Roles[r.name] = role
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return Fixtures{}, fmt.Errorf("failed to hash password: %w", err)
	}
	for _, u := range seedUsers {
		member := models.ManagedUser{
			ID:        utils.GenerateID("usr"),
			Name:      u.name,
			Identity:  u.identity,
			RoleID:    u.roleID,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.CreateUser(fx.Profile.ID, member); err != nil {
			return Fixtures{}, fmt.Errorf("failed to seed user %s: %w", u.identity, err)
		}
		if err := store.CreateAccount(repository.Account{
			Identity:     u.identity,
			PasswordHash: hash,
			ProfileID:    fx.Profile.ID,
			UserID:       member.ID,
		}); err != nil {
			return Fixtures{}, fmt.Errorf("failed to seed account %s: %w", u.identity, err)
		}
	}
	return fx, nil
}
