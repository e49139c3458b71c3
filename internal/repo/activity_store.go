package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"syndic/internal/models"
)

// ActivityStore handles the append-only activity and notification logs plus
// the system counters read by the status endpoints.
type ActivityStore struct{ db *gorm.DB }

func NewActivityStore(db *gorm.DB) *ActivityStore { return &ActivityStore{db: db} }

const recentLimit = 5

func (s *ActivityStore) Append(ctx context.Context, credID uint, action string) error {
	a := models.Activity{UserID: credID, Action: action, Date: time.Now().UTC()}
	return s.db.WithContext(ctx).Create(&a).Error
}

// RecentFor returns the latest rows for one credential; admin sees the global
// log (legacy behavior).
func (s *ActivityStore) RecentFor(ctx context.Context, credID uint, role models.Role) ([]models.Activity, error) {
	q := s.db.WithContext(ctx).Model(&models.Activity{}).
		Select("action", "date").
		Order("date DESC").
		Limit(recentLimit)
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", credID)
	}
	var out []models.Activity
	err := q.Find(&out).Error
	return out, err
}

func (s *ActivityStore) Notify(ctx context.Context, credID uint, message string) error {
	n := models.Notification{UserID: credID, Message: message, Date: time.Now().UTC()}
	return s.db.WithContext(ctx).Create(&n).Error
}

func (s *ActivityStore) RecentNotifications(ctx context.Context, credID uint, role models.Role) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Model(&models.Notification{}).
		Select("message", "date").
		Order("date DESC").
		Limit(recentLimit)
	if role != models.RoleAdmin {
		q = q.Where("user_id = ?", credID)
	}
	var out []models.Notification
	err := q.Find(&out).Error
	return out, err
}

// ActiveUsers counts distinct users who logged in within the window.
func (s *ActivityStore) ActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).
		Distinct("user_id").
		Where("action = ? AND date >= ?", "Logged in", since).
		Count(&n).Error
	return n, err
}

// LoginsSince counts login events from the given instant.
func (s *ActivityStore) LoginsSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Activity{}).
		Where("action = ? AND date >= ?", "Logged in", since).
		Count(&n).Error
	return n, err
}

// UnresolvedAlerts counts open system alerts created within the window.
func (s *ActivityStore) UnresolvedAlerts(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.SystemAlert{}).
		Where("resolved = ? AND created_at >= ?", false, since).
		Count(&n).Error
	return n, err
}

func (s *ActivityStore) StatsHistory(ctx context.Context) ([]models.StatsHistory, error) {
	var out []models.StatsHistory
	err := s.db.WithContext(ctx).Order("month ASC").Find(&out).Error
	return out, err
}
