package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"syndic/internal/models"
)

// OutboxStore persists e-mails to send. Enqueue runs on the caller's
// transaction so the mail row commits or rolls back with the change that
// caused it; the mail worker drains the table afterwards.
type OutboxStore struct{ db *gorm.DB }

func NewOutboxStore(db *gorm.DB) *OutboxStore { return &OutboxStore{db: db} }

func (s *OutboxStore) Enqueue(tx *gorm.DB, msg *models.EmailMessage) error {
	msg.Status = models.MailStatusPending
	return tx.Create(msg).Error
}

func (s *OutboxStore) Pending(ctx context.Context, limit int) ([]models.EmailMessage, error) {
	var out []models.EmailMessage
	err := s.db.WithContext(ctx).
		Where("status = ?", models.MailStatusPending).
		Order("id asc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *OutboxStore) MarkPublished(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&models.EmailMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       models.MailStatusPublished,
			"published_at": now,
		}).Error
}

func (s *OutboxStore) MarkFailed(ctx context.Context, id uint, reason string) error {
	return s.db.WithContext(ctx).Model(&models.EmailMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.MailStatusFailed,
			"last_error": reason,
			"attempts":   gorm.Expr("attempts + 1"),
		}).Error
}

// CleanupPublished drops published rows older than the retention window.
func (s *OutboxStore) CleanupPublished(ctx context.Context, olderThan time.Time) error {
	return s.db.WithContext(ctx).
		Where("status = ? AND published_at < ?", models.MailStatusPublished, olderThan).
		Delete(&models.EmailMessage{}).Error
}
