package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"syndic/internal/models"
)

// RoomStore covers rooms, blocks, parking slots and complaints.
type RoomStore struct{ db *gorm.DB }

func NewRoomStore(db *gorm.DB) *RoomStore { return &RoomStore{db: db} }

// RegisterComplaint upserts the complaint text on the (block, room) pair.
// A room carries at most one open complaint; a new one overwrites the text.
func (s *RoomStore) RegisterComplaint(ctx context.Context, blockNo, roomNo int, desc string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Block
		err := tx.Where("block_no = ? AND room_no = ?", blockNo, roomNo).First(&b).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			b = models.Block{BlockNo: blockNo, RoomNo: roomNo, Complaints: &desc}
			return tx.Create(&b).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.Block{}).
			Where("block_no = ? AND room_no = ?", blockNo, roomNo).
			Updates(map[string]any{"complaints": desc, "resolved": false}).Error
	})
}

// ResolveComplaint nulls the text and sets the resolved flag.
func (s *RoomStore) ResolveComplaint(ctx context.Context, roomNo int) error {
	return s.db.WithContext(ctx).Model(&models.Block{}).
		Where("room_no = ?", roomNo).
		Updates(map[string]any{"complaints": nil, "resolved": true}).Error
}

func (s *RoomStore) OpenComplaints(ctx context.Context) ([]models.Block, error) {
	var out []models.Block
	err := s.db.WithContext(ctx).Where("complaints IS NOT NULL").Find(&out).Error
	return out, err
}

// ComplaintsOfOwner lists complaints on rooms held by the owner.
func (s *RoomStore) ComplaintsOfOwner(ctx context.Context, ownerID uint) ([]models.Block, error) {
	var out []models.Block
	err := s.db.WithContext(ctx).
		Select("complaints", "room_no", "resolved").
		Where("room_no IN (?)", s.db.Model(&models.Owner{}).Select("room_no").Where("owner_id = ?", ownerID)).
		Find(&out).Error
	return out, err
}

// AvailableRooms are rooms not yet held by any owner.
func (s *RoomStore) AvailableRooms(ctx context.Context) ([]int, error) {
	var out []int
	err := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_no NOT IN (?)", s.db.Model(&models.Owner{}).Select("room_no")).
		Pluck("room_no", &out).Error
	return out, err
}

// OccupiedRooms are rooms assigned to both an owner and a tenant.
func (s *RoomStore) OccupiedRooms(ctx context.Context) ([]int, error) {
	var out []int
	err := s.db.WithContext(ctx).Model(&models.Owner{}).
		Distinct("owner.room_no").
		Joins("INNER JOIN tenant ON tenant.room_no = owner.room_no").
		Pluck("owner.room_no", &out).Error
	return out, err
}

// AvailableParkingSlots is the set difference of known slots minus assigned.
func (s *RoomStore) AvailableParkingSlots(ctx context.Context) ([]int, error) {
	var out []int
	err := s.db.WithContext(ctx).Model(&models.ParkingSlot{}).
		Where("slot_number NOT IN (?)",
			s.db.Model(&models.Room{}).Select("parking_slot").Where("parking_slot IS NOT NULL")).
		Pluck("slot_number", &out).Error
	return out, err
}

// BookSlot assigns a parking slot to a room. The room must exist.
func (s *RoomStore) BookSlot(ctx context.Context, roomNo, slotNo int) error {
	var room models.Room
	err := s.db.WithContext(ctx).First(&room, "room_no = ?", roomNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Room{}).
		Where("room_no = ?", roomNo).
		Update("parking_slot", slotNo).Error
}

func (s *RoomStore) Blocks(ctx context.Context) ([]models.Block, error) {
	var out []models.Block
	err := s.db.WithContext(ctx).Select("block_no", "block_name").Find(&out).Error
	return out, err
}

func (s *RoomStore) BlockByRoomNo(ctx context.Context, roomNo int) (*models.Block, error) {
	var b models.Block
	err := s.db.WithContext(ctx).
		Select("block_no", "block_name").
		Where("room_no = ?", roomNo).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// BlockByNo resolves a block's display name from its number. A block spans
// one row per room; any of them carries the name.
func (s *RoomStore) BlockByNo(ctx context.Context, blockNo int) (*models.Block, error) {
	var b models.Block
	err := s.db.WithContext(ctx).
		Select("block_no", "block_name").
		Where("block_no = ?", blockNo).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// KnownBlockNos is used by profile validation (admin block must exist).
func (s *RoomStore) KnownBlockNos(ctx context.Context) ([]int, error) {
	var out []int
	err := s.db.WithContext(ctx).Model(&models.Block{}).
		Distinct("block_no").
		Pluck("block_no", &out).Error
	return out, err
}
