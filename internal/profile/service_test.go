package profile

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
	"syndic/internal/verify"
)

type fakeBlockNos struct{ nos []int }

func (f *fakeBlockNos) KnownBlockNos(context.Context) ([]int, error) { return f.nos, nil }

func setupService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	profiles := repo.NewProfileStore(gdb)
	creds := repo.NewCredentialStore(gdb)
	verifier := verify.NewService(gdb, profiles, repo.NewOutboxStore(gdb), creds,
		"http://localhost:5000")
	svc := NewService(gdb, profiles, creds, verifier, &fakeBlockNos{nos: []int{1, 2}})
	return svc, mock
}

func expectTenantCredential(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("SELECT (.+) FROM `auth` WHERE user_id = ?").
		WithArgs("t-9", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "password", "role", "profile_id"}).
			AddRow(1, "t-9", "hash", "tenant", 9))
}

func TestUpdateSamePayloadLeavesVerificationAlone(t *testing.T) {
	svc, mock := setupService(t)
	f := Fields{RoomNo: intPtr(12), Email: strPtr("a@b.fr")}

	// Resubmitting the same payload must not touch the verified flag, the
	// token, or the mail outbox: only the profile columns are written.
	for i := 0; i < 2; i++ {
		expectTenantCredential(mock)
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT email").
			WithArgs(9, 1).
			WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
				AddRow("a@b.fr", true, nil))
		mock.ExpectExec("UPDATE `tenant` SET").
			WithArgs(12, 9).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		msg, err := svc.Update(context.Background(), models.RoleTenant, "t-9", f)

		require.NoError(t, err)
		assert.Equal(t, "Profil mis à jour avec succès", msg)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateEmailChangeReissuesInSameTx(t *testing.T) {
	svc, mock := setupService(t)

	expectTenantCredential(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("old@b.fr", true, nil))
	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs(12, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs("new@b.fr", false, sqlmock.AnyArg(), 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	msg, err := svc.Update(context.Background(), models.RoleTenant, "t-9",
		Fields{RoomNo: intPtr(12), Email: strPtr("new@b.fr")})

	require.NoError(t, err)
	assert.Equal(t, "Profil mis à jour avec succès. Veuillez vérifier votre nouvelle adresse e-mail.", msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePasswordChangeCommitsWithProfile(t *testing.T) {
	svc, mock := setupService(t)

	expectTenantCredential(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("a@b.fr", true, nil))
	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs(12, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `auth` SET `password`").
		WithArgs(sqlmock.AnyArg(), "t-9").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	msg, err := svc.Update(context.Background(), models.RoleTenant, "t-9",
		Fields{RoomNo: intPtr(12), Password: strPtr("nouveau-secret")})

	require.NoError(t, err)
	assert.Equal(t, "Profil mis à jour avec succès", msg)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateFailedEnqueueRollsBack(t *testing.T) {
	svc, mock := setupService(t)

	expectTenantCredential(mock)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT email").
		WithArgs(9, 1).
		WillReturnRows(sqlmock.NewRows([]string{"email", "email_verified", "verification_token"}).
			AddRow("old@b.fr", true, nil))
	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs(12, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `tenant` SET").
		WithArgs("new@b.fr", false, sqlmock.AnyArg(), 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_messages`").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), models.RoleTenant, "t-9",
		Fields{RoomNo: intPtr(12), Email: strPtr("new@b.fr")})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRoleMismatch(t *testing.T) {
	svc, mock := setupService(t)
	expectTenantCredential(mock)

	_, err := svc.Update(context.Background(), models.RoleOwner, "t-9",
		Fields{Name: strPtr("Durand")})

	assert.ErrorIs(t, err, repo.ErrInvalidRole)
}
