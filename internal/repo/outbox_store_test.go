package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndic/internal/models"
)

func TestEnqueueForcesPendingStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewOutboxStore(db)

	mock.ExpectExec("INSERT INTO `email_messages`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	msg := &models.EmailMessage{
		Recipient: "a@b.fr",
		Subject:   "Vérifiez votre adresse e-mail",
		Body:      "…",
		Status:    models.MailStatusFailed, // must be overridden
	}
	err := store.Enqueue(db, msg)

	require.NoError(t, err)
	assert.Equal(t, models.MailStatusPending, msg.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingFiltersByStatus(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewOutboxStore(db)

	mock.ExpectQuery("SELECT (.+) FROM `email_messages` WHERE status = ?").
		WithArgs(models.MailStatusPending, 50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "recipient", "status"}).
			AddRow(1, "a@b.fr", models.MailStatusPending))

	msgs, err := store.Pending(context.Background(), 50)

	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "a@b.fr", msgs[0].Recipient)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkFailedCountsAttempt(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewOutboxStore(db)

	mock.ExpectExec("UPDATE `email_messages` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.MarkFailed(context.Background(), 1, "smtp timeout")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
