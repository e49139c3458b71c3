package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"syndic/internal/models"
	"syndic/internal/repo"
)

type fakeCreds struct {
	cred     *models.Credential
	replaced string
}

func (f *fakeCreds) FindByUserID(_ context.Context, userID string) (*models.Credential, error) {
	if f.cred == nil || f.cred.UserID != userID {
		return nil, repo.ErrNotFound
	}
	c := *f.cred
	return &c, nil
}

func (f *fakeCreds) ReplaceHash(_ context.Context, _, hash string) error {
	f.replaced = hash
	return nil
}

type fakeContacts struct{ contact *repo.Contact }

func (f *fakeContacts) Contact(context.Context, models.Role, uint) (*repo.Contact, error) {
	if f.contact == nil {
		return nil, repo.ErrNotFound
	}
	return f.contact, nil
}

type fakeAdmins struct{ admin *models.BlockAdmin }

func (f *fakeAdmins) GetByID(context.Context, uint) (*models.BlockAdmin, error) {
	if f.admin == nil {
		return nil, repo.ErrNotFound
	}
	return f.admin, nil
}

type fakeActivity struct{ actions []string }

func (f *fakeActivity) Append(_ context.Context, _ uint, action string) error {
	f.actions = append(f.actions, action)
	return nil
}

func newTestService(creds *fakeCreds, contacts *fakeContacts, admins *fakeAdmins, activity *fakeActivity) *Service {
	return NewService(creds, contacts, admins, activity, NewTokens("test-secret", time.Hour))
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func verifiedContact(email string) *repo.Contact {
	return &repo.Contact{Email: &email, EmailVerified: true}
}

func TestAuthenticateGranted(t *testing.T) {
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "t-3", Password: hashOf(t, "secret123"),
		Role: models.RoleTenant, ProfileID: 3,
	}}
	activity := &fakeActivity{}
	svc := newTestService(creds, &fakeContacts{contact: verifiedContact("a@b.fr")}, &fakeAdmins{}, activity)

	res, err := svc.Authenticate(context.Background(), "t-3", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "granted", res.Access)
	assert.Equal(t, models.RoleTenant, res.Role)
	assert.NotEmpty(t, res.Token)
	assert.Nil(t, res.AdminID)
	assert.Equal(t, []string{"Logged in"}, activity.actions)
}

func TestAuthenticateWrongPasswordLeavesNoActivity(t *testing.T) {
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "t-3", Password: hashOf(t, "secret123"),
		Role: models.RoleTenant, ProfileID: 3,
	}}
	activity := &fakeActivity{}
	svc := newTestService(creds, &fakeContacts{contact: verifiedContact("a@b.fr")}, &fakeAdmins{}, activity)

	res, err := svc.Authenticate(context.Background(), "t-3", "nope-nope")

	require.NoError(t, err)
	assert.Equal(t, "denied", res.Access)
	assert.Equal(t, models.RoleTenant, res.Role) // first-letter hint only
	assert.Empty(t, res.Token)
	assert.Empty(t, activity.actions)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc := newTestService(&fakeCreds{}, &fakeContacts{}, &fakeAdmins{}, &fakeActivity{})

	res, err := svc.Authenticate(context.Background(), "z-9", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "denied", res.Access)
	assert.Equal(t, models.RoleUnknown, res.Role)
}

func TestAuthenticateShortPasswordHintIsUnknown(t *testing.T) {
	svc := newTestService(&fakeCreds{}, &fakeContacts{}, &fakeAdmins{}, &fakeActivity{})

	res, err := svc.Authenticate(context.Background(), "t-3", "abc")

	require.NoError(t, err)
	assert.Equal(t, "denied", res.Access)
	assert.Equal(t, models.RoleUnknown, res.Role)
}

func TestAuthenticateUnverifiedEmailIsDistinctDenial(t *testing.T) {
	email := "a@b.fr"
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "t-3", Password: hashOf(t, "secret123"),
		Role: models.RoleTenant, ProfileID: 3,
	}}
	svc := newTestService(creds,
		&fakeContacts{contact: &repo.Contact{Email: &email, EmailVerified: false}},
		&fakeAdmins{}, &fakeActivity{})

	_, err := svc.Authenticate(context.Background(), "t-3", "secret123")

	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestAuthenticateNoEmailOnFileStillLogsIn(t *testing.T) {
	// Pre-seeded accounts without an address are not gated on verification.
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "t-3", Password: hashOf(t, "secret123"),
		Role: models.RoleTenant, ProfileID: 3,
	}}
	svc := newTestService(creds, &fakeContacts{contact: &repo.Contact{}}, &fakeAdmins{}, &fakeActivity{})

	res, err := svc.Authenticate(context.Background(), "t-3", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "granted", res.Access)
}

func TestAuthenticateUpgradesLegacyPlaintext(t *testing.T) {
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "o-2", Password: "secret123",
		Role: models.RoleOwner, ProfileID: 2,
	}}
	svc := newTestService(creds, &fakeContacts{contact: verifiedContact("a@b.fr")}, &fakeAdmins{}, &fakeActivity{})

	res, err := svc.Authenticate(context.Background(), "o-2", "secret123")

	require.NoError(t, err)
	assert.Equal(t, "granted", res.Access)
	require.NotEmpty(t, creds.replaced)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(creds.replaced), []byte("secret123")))
}

func TestAuthenticateAdminResolvesAdminID(t *testing.T) {
	creds := &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "a-5", Password: hashOf(t, "secret123"),
		Role: models.RoleAdmin, ProfileID: 5,
	}}
	svc := newTestService(creds, &fakeContacts{contact: verifiedContact("a@b.fr")},
		&fakeAdmins{admin: &models.BlockAdmin{AdminID: 5, BlockNo: 2}}, &fakeActivity{})

	res, err := svc.Authenticate(context.Background(), "a-5", "secret123")

	require.NoError(t, err)
	require.NotNil(t, res.AdminID)
	assert.Equal(t, uint(5), *res.AdminID)
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	cred := &models.Credential{UserID: "t-3", Role: models.RoleTenant, ProfileID: 3}

	raw, err := tokens.Issue(cred)
	require.NoError(t, err)

	claims, err := tokens.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "t-3", claims.UserID)
	assert.Equal(t, models.RoleTenant, claims.Role)
	assert.Equal(t, uint(3), claims.ProfileID)
}

func TestTokensRejectForeignSecret(t *testing.T) {
	raw, err := NewTokens("secret-a", time.Hour).Issue(&models.Credential{UserID: "t-3"})
	require.NoError(t, err)

	_, err = NewTokens("secret-b", time.Hour).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
