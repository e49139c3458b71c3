package profile

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"syndic/internal/models"
	"syndic/internal/repo"
	"syndic/internal/verify"
)

type BlockSource interface {
	KnownBlockNos(ctx context.Context) ([]int, error)
}

// Service applies role-specific profile updates. The profile write, an
// optional password change and the verification-mail enqueue for an e-mail
// change all commit in one transaction.
type Service struct {
	db       *gorm.DB
	profiles *repo.ProfileStore
	creds    *repo.CredentialStore
	verifier *verify.Service
	blocks   BlockSource
}

func NewService(db *gorm.DB, profiles *repo.ProfileStore, creds *repo.CredentialStore, verifier *verify.Service, blocks BlockSource) *Service {
	return &Service{db: db, profiles: profiles, creds: creds, verifier: verifier, blocks: blocks}
}

const (
	msgUpdated         = "Profil mis à jour avec succès"
	msgUpdatedReverify = "Profil mis à jour avec succès. Veuillez vérifier votre nouvelle adresse e-mail."
)

// Update validates and applies the fields for the given role. Returns the
// user-facing success message; a *ValidationError signals a 400.
func (s *Service) Update(ctx context.Context, role models.Role, externalUserID string, f Fields) (string, error) {
	cred, err := s.creds.FindByUserID(ctx, externalUserID)
	if err != nil {
		return "", err
	}
	if cred.Role != role {
		return "", repo.ErrInvalidRole
	}

	rules, ok := rulesFor(role)
	if !ok {
		return "", repo.ErrInvalidRole
	}

	var knownBlocks []int
	if role == models.RoleAdmin {
		knownBlocks, err = s.blocks.KnownBlockNos(ctx)
		if err != nil {
			return "", err
		}
	}
	if err := rules.validate(f, knownBlocks); err != nil {
		return "", err
	}

	emailChanged := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := s.profiles.ContactForUpdate(tx, role, cred.ProfileID)
		if err != nil {
			return err
		}

		if err := s.profiles.UpdateFields(tx, role, cred.ProfileID, rules.updates(f)); err != nil {
			return err
		}

		// A new or changed address drops the verified flag and re-triggers
		// the verification mail inside this same transaction.
		if f.Email != nil && (contact.Email == nil || *contact.Email != *f.Email) {
			if _, err := s.verifier.IssueOnTx(tx, role, cred.ProfileID, *f.Email); err != nil {
				return err
			}
			emailChanged = true
		}

		if f.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*f.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			if err := s.creds.ReplaceHashOn(tx, cred.UserID, string(hash)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if emailChanged {
		return msgUpdatedReverify, nil
	}
	return msgUpdated, nil
}
