package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"syndic/internal/models"
)

type CredentialStore struct{ db *gorm.DB }

func NewCredentialStore(db *gorm.DB) *CredentialStore { return &CredentialStore{db: db} }

func (s *CredentialStore) FindByUserID(ctx context.Context, userID string) (*models.Credential, error) {
	var c models.Credential
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ReplaceHash swaps the stored password value, used both for password changes
// and for upgrading legacy plaintext rows after a successful login.
func (s *CredentialStore) ReplaceHash(ctx context.Context, userID, hash string) error {
	return s.ReplaceHashOn(s.db.WithContext(ctx), userID, hash)
}

// ReplaceHashOn is the same update on a caller-owned transaction, so a
// password change commits together with the profile write.
func (s *CredentialStore) ReplaceHashOn(tx *gorm.DB, userID, hash string) error {
	return tx.Model(&models.Credential{}).
		Where("user_id = ?", userID).
		Update("password", hash).Error
}
