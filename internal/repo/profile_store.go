package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"syndic/internal/models"
)

// Contact is the verification-relevant slice of any profile row.
type Contact struct {
	Email             *string
	EmailVerified     bool
	VerificationToken *string
}

// ProfileStore gives role-dispatched access to the contact columns shared by
// all four profile tables. The dispatch lives here so services never branch
// on table names.
type ProfileStore struct{ db *gorm.DB }

func NewProfileStore(db *gorm.DB) *ProfileStore { return &ProfileStore{db: db} }

func profileTable(role models.Role) (table, pk string, err error) {
	switch role {
	case models.RoleTenant:
		return "tenant", "tenant_id", nil
	case models.RoleOwner:
		return "owner", "owner_id", nil
	case models.RoleEmployee:
		return "employee", "emp_id", nil
	case models.RoleAdmin:
		return "block_admin", "admin_id", nil
	}
	return "", "", ErrInvalidRole
}

func (s *ProfileStore) contact(tx *gorm.DB, role models.Role, profileID uint, forUpdate bool) (*Contact, error) {
	table, pk, err := profileTable(role)
	if err != nil {
		return nil, err
	}
	q := tx.Table(table).
		Select("email", "email_verified", "verification_token").
		Where(pk+" = ?", profileID)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var c Contact
	if err := q.Take(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *ProfileStore) Contact(ctx context.Context, role models.Role, profileID uint) (*Contact, error) {
	return s.contact(s.db.WithContext(ctx), role, profileID, false)
}

// ContactForUpdate reads the contact columns under SELECT ... FOR UPDATE; it
// must run inside tx so a concurrent verification cannot race a resend.
func (s *ProfileStore) ContactForUpdate(tx *gorm.DB, role models.Role, profileID uint) (*Contact, error) {
	return s.contact(tx, role, profileID, true)
}

// SetToken stores a fresh verification token and drops the verified flag.
// Issuing a new token invalidates whatever was there before.
func (s *ProfileStore) SetToken(tx *gorm.DB, role models.Role, profileID uint, token string) error {
	table, pk, err := profileTable(role)
	if err != nil {
		return err
	}
	return tx.Table(table).
		Where(pk+" = ?", profileID).
		Updates(map[string]any{
			"verification_token": token,
			"email_verified":     false,
		}).Error
}

// Consume flips the profile to verified and clears the token in one UPDATE
// guarded by the token value. Returns ErrAlreadyVerified when the profile is
// verified with no token outstanding, ErrTokenMismatch otherwise.
func (s *ProfileStore) Consume(ctx context.Context, role models.Role, profileID uint, token string) error {
	table, pk, err := profileTable(role)
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Table(table).
		Where(pk+" = ? AND verification_token = ?", profileID, token).
		Updates(map[string]any{
			"email_verified":     true,
			"verification_token": nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	c, err := s.Contact(ctx, role, profileID)
	if err != nil {
		return err
	}
	if c.EmailVerified && c.VerificationToken == nil {
		return ErrAlreadyVerified
	}
	return ErrTokenMismatch
}

// UpdateFields applies validated column updates to the profile row.
func (s *ProfileStore) UpdateFields(tx *gorm.DB, role models.Role, profileID uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	table, pk, err := profileTable(role)
	if err != nil {
		return err
	}
	return tx.Table(table).Where(pk+" = ?", profileID).Updates(updates).Error
}

// SetEmail writes a new e-mail together with an unverified flag and token.
func (s *ProfileStore) SetEmail(tx *gorm.DB, role models.Role, profileID uint, email, token string) error {
	table, pk, err := profileTable(role)
	if err != nil {
		return err
	}
	return tx.Table(table).
		Where(pk+" = ?", profileID).
		Updates(map[string]any{
			"email":              email,
			"email_verified":     false,
			"verification_token": token,
		}).Error
}
