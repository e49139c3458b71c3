package verify

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"syndic/internal/models"
	"syndic/internal/repo"
)

type fakeCreds struct{ cred *models.Credential }

func (f *fakeCreds) FindByUserID(_ context.Context, userID string) (*models.Credential, error) {
	if f.cred == nil || f.cred.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return f.cred, nil
}

func setupService(t *testing.T, creds *fakeCreds) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	svc := NewService(gdb, repo.NewProfileStore(gdb), repo.NewOutboxStore(gdb), creds,
		"http://localhost:5000")
	return svc, mock
}

func tenantCred() *fakeCreds {
	return &fakeCreds{cred: &models.Credential{
		ID: 1, UserID: "t-9", Role: models.RoleTenant, ProfileID: 9,
	}}
}

func TestIssueEnqueuesMailWithToken(t *testing.T) {
	svc, mock := setupService(t, tenantCred())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("a@b.fr", false, nil))
	mock.ExpectExec("UPDATE `tenant` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	token, err := svc.Issue(context.Background(), models.RoleTenant, 9)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIssueWithoutEmailRollsBack(t *testing.T) {
	svc, mock := setupService(t, tenantCred())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow(nil, false, nil))
	mock.ExpectRollback()

	_, err := svc.Issue(context.Background(), models.RoleTenant, 9)

	assert.ErrorIs(t, err, repo.ErrNoEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeVerifies(t *testing.T) {
	svc, mock := setupService(t, tenantCred())

	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs(true, nil, 9, "tok-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	status, err := svc.Consume(context.Background(), "t-9", models.RoleTenant, "tok-1")

	require.NoError(t, err)
	assert.Equal(t, StatusVerified, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeRoleMismatch(t *testing.T) {
	svc, _ := setupService(t, tenantCred())

	_, err := svc.Consume(context.Background(), "t-9", models.RoleOwner, "tok-1")

	assert.ErrorIs(t, err, repo.ErrInvalidRole)
}

func TestConsumeInvalidToken(t *testing.T) {
	svc, mock := setupService(t, tenantCred())

	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs(true, nil, 9, "wrong").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("a@b.fr", false, "tok-1"))

	status, err := svc.Consume(context.Background(), "t-9", models.RoleTenant, "wrong")

	require.NoError(t, err)
	assert.Equal(t, StatusInvalidToken, status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResendAlreadyVerifiedRollsBack(t *testing.T) {
	svc, mock := setupService(t, tenantCred())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("a@b.fr", true, nil))
	mock.ExpectRollback()

	err := svc.Resend(context.Background(), "t-9", models.RoleTenant)

	assert.ErrorIs(t, err, repo.ErrAlreadyVerified)
	assert.NoError(t, mock.ExpectationsWereMet())
}
