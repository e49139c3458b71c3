package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableRoomsExcludesOwned(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectQuery("SELECT `room_no` FROM `room` WHERE room_no NOT IN").
		WillReturnRows(sqlmock.NewRows([]string{"room_no"}).AddRow(101).AddRow(103))

	rooms, err := store.AvailableRooms(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int{101, 103}, rooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveComplaintClearsTextAndSetsFlag(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectExec("UPDATE `block` SET").
		WithArgs(nil, true, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.ResolveComplaint(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterComplaintOverwritesExisting(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `block` WHERE block_no = ?").
		WithArgs(1, 5, 1).
		WillReturnRows(sqlmock.NewRows([]string{"block_no", "room_no", "complaints", "resolved"}).
			AddRow(1, 5, "old complaint", true))
	mock.ExpectExec("UPDATE `block` SET").
		WithArgs("leaky tap", false, 1, 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.RegisterComplaint(context.Background(), 1, 5, "leaky tap")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlotUnknownRoom(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectQuery("SELECT (.+) FROM `room` WHERE room_no = ?").
		WithArgs(999, 1).
		WillReturnRows(sqlmock.NewRows([]string{"room_no", "parking_slot"}))

	err := store.BookSlot(context.Background(), 999, 7)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookSlotAssignsSlot(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewRoomStore(db)

	mock.ExpectQuery("SELECT (.+) FROM `room` WHERE room_no = ?").
		WithArgs(101, 1).
		WillReturnRows(sqlmock.NewRows([]string{"room_no", "parking_slot"}).AddRow(101, nil))
	mock.ExpectExec("UPDATE `room` SET `parking_slot`").
		WithArgs(7, 101).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.BookSlot(context.Background(), 101, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}
