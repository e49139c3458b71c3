package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"syndic/internal/models"
	"syndic/internal/repo"
)

// Status reports the outcome of consuming a token. AlreadyVerified is an
// informational state, not an error.
type Status string

const (
	StatusVerified        Status = "verified"
	StatusAlreadyVerified Status = "already_verified"
	StatusInvalidToken    Status = "invalid_token"
)

type CredentialSource interface {
	FindByUserID(ctx context.Context, userID string) (*models.Credential, error)
}

// Service drives the e-mail verification workflow: one active token per
// profile, delivered through the transactional outbox.
type Service struct {
	db        *gorm.DB
	profiles  *repo.ProfileStore
	outbox    *repo.OutboxStore
	creds     CredentialSource
	publicURL string
}

func NewService(db *gorm.DB, profiles *repo.ProfileStore, outbox *repo.OutboxStore, creds CredentialSource, publicURL string) *Service {
	return &Service{db: db, profiles: profiles, outbox: outbox, creds: creds, publicURL: publicURL}
}

// Issue generates a fresh token for the profile and enqueues the
// verification e-mail in the same transaction. Any previous token is
// invalidated by the overwrite.
func (s *Service) Issue(ctx context.Context, role models.Role, profileID uint) (string, error) {
	var token string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := s.profiles.ContactForUpdate(tx, role, profileID)
		if err != nil {
			return err
		}
		if contact.Email == nil || *contact.Email == "" {
			return repo.ErrNoEmail
		}
		token = uuid.NewString()
		if err := s.profiles.SetToken(tx, role, profileID, token); err != nil {
			return err
		}
		return s.enqueueMail(tx, role, profileID, *contact.Email, token)
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// IssueOnTx issues a token for an e-mail that is being written by the
// caller's own transaction (profile update with an address change).
func (s *Service) IssueOnTx(tx *gorm.DB, role models.Role, profileID uint, email string) (string, error) {
	token := uuid.NewString()
	if err := s.profiles.SetEmail(tx, role, profileID, email, token); err != nil {
		return "", err
	}
	if err := s.enqueueMail(tx, role, profileID, email, token); err != nil {
		return "", err
	}
	return token, nil
}

// Consume resolves the external user id and redeems the token. Flipping to
// verified and clearing the token happen in one UPDATE.
func (s *Service) Consume(ctx context.Context, externalUserID string, role models.Role, token string) (Status, error) {
	cred, err := s.creds.FindByUserID(ctx, externalUserID)
	if err != nil {
		return "", err
	}
	if cred.Role != role {
		return "", repo.ErrInvalidRole
	}
	err = s.profiles.Consume(ctx, role, cred.ProfileID, token)
	switch {
	case err == nil:
		return StatusVerified, nil
	case errors.Is(err, repo.ErrAlreadyVerified):
		return StatusAlreadyVerified, nil
	case errors.Is(err, repo.ErrTokenMismatch):
		return StatusInvalidToken, nil
	}
	return "", err
}

// Resend re-issues the token under a row lock so a verification racing in
// between the read and the write rolls the resend back.
func (s *Service) Resend(ctx context.Context, externalUserID string, role models.Role) error {
	cred, err := s.creds.FindByUserID(ctx, externalUserID)
	if err != nil {
		return err
	}
	if cred.Role != role {
		return repo.ErrInvalidRole
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contact, err := s.profiles.ContactForUpdate(tx, role, cred.ProfileID)
		if err != nil {
			return err
		}
		if contact.Email == nil || *contact.Email == "" {
			return repo.ErrNoEmail
		}
		if contact.EmailVerified {
			return repo.ErrAlreadyVerified
		}
		token := uuid.NewString()
		if err := s.profiles.SetToken(tx, role, cred.ProfileID, token); err != nil {
			return err
		}
		return s.enqueueMail(tx, role, cred.ProfileID, *contact.Email, token)
	})
}

func (s *Service) enqueueMail(tx *gorm.DB, role models.Role, profileID uint, email, token string) error {
	userID := role.ExternalID(profileID)
	link := fmt.Sprintf("%s/verify-email?userId=%s&userType=%s&token=%s",
		s.publicURL, url.QueryEscape(userID), url.QueryEscape(string(role)), url.QueryEscape(token))
	payload, _ := json.Marshal(map[string]string{
		"user_id":   userID,
		"user_type": string(role),
		"token":     token,
	})
	msg := models.EmailMessage{
		Recipient: email,
		Subject:   "Vérifiez votre adresse e-mail",
		Body: fmt.Sprintf(
			"Bonjour,\n\nVeuillez confirmer votre adresse e-mail en cliquant sur le lien suivant :\n%s\n\nSi vous n'êtes pas à l'origine de cette demande, ignorez ce message.",
			link),
		Payload: datatypes.JSON(payload),
	}
	return s.outbox.Enqueue(tx, &msg)
}
