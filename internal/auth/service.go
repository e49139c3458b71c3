package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"syndic/internal/logs"
	"syndic/internal/models"
	"syndic/internal/repo"
)

var (
	// ErrEmailNotVerified is the distinct denial for a matching password on
	// an unverified profile.
	ErrEmailNotVerified = errors.New("email not verified")
)

type CredentialSource interface {
	FindByUserID(ctx context.Context, userID string) (*models.Credential, error)
	ReplaceHash(ctx context.Context, userID, hash string) error
}

type ContactSource interface {
	Contact(ctx context.Context, role models.Role, profileID uint) (*repo.Contact, error)
}

type AdminSource interface {
	GetByID(ctx context.Context, adminID uint) (*models.BlockAdmin, error)
}

type ActivityLog interface {
	Append(ctx context.Context, credID uint, action string) error
}

// Service validates username/password pairs and issues session tokens.
type Service struct {
	creds    CredentialSource
	contacts ContactSource
	admins   AdminSource
	activity ActivityLog
	tokens   *Tokens
}

func NewService(creds CredentialSource, contacts ContactSource, admins AdminSource, activity ActivityLog, tokens *Tokens) *Service {
	return &Service{creds: creds, contacts: contacts, admins: admins, activity: activity, tokens: tokens}
}

// Result is the login payload. Access is "granted" or "denied"; on a denial
// Role is only the prefix-convention hint the legacy front end expects back.
type Result struct {
	Access  string
	Role    models.Role
	Token   string
	AdminID *uint
}

// roleHint reproduces the legacy first-letter convention purely for denied
// responses; granted logins always take the role from the credential row.
func roleHint(username, password string) models.Role {
	if len(password) < 6 || username == "" {
		return models.RoleUnknown
	}
	switch strings.ToUpper(username[:1]) {
	case "E":
		return models.RoleEmployee
	case "A":
		return models.RoleAdmin
	case "T":
		return models.RoleTenant
	case "O":
		return models.RoleOwner
	}
	return models.RoleUnknown
}

// Authenticate checks the stored credential, gates on e-mail verification and
// appends a login activity record. The activity write is fire-and-forget.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Result, error) {
	cred, err := s.creds.FindByUserID(ctx, username)
	if errors.Is(err, repo.ErrNotFound) {
		return &Result{Access: "denied", Role: roleHint(username, password)}, nil
	}
	if err != nil {
		return nil, err
	}

	if !s.passwordMatches(ctx, cred, password) {
		return &Result{Access: "denied", Role: roleHint(username, password)}, nil
	}

	contact, err := s.contacts.Contact(ctx, cred.Role, cred.ProfileID)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	// Profiles with an address on file must have confirmed it.
	if contact != nil && contact.Email != nil && !contact.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	if err := s.activity.Append(ctx, cred.ID, "Logged in"); err != nil {
		logs.Logger.Warnf("auth: activity append failed for %s: %v", cred.UserID, err)
	}

	res := &Result{Access: "granted", Role: cred.Role}

	if cred.Role == models.RoleAdmin {
		admin, err := s.admins.GetByID(ctx, cred.ProfileID)
		if err != nil {
			return nil, err
		}
		res.AdminID = &admin.AdminID
	}

	token, err := s.tokens.Issue(cred)
	if err != nil {
		return nil, err
	}
	res.Token = token
	return res, nil
}

// passwordMatches prefers the bcrypt hash; rows still carrying the legacy
// plaintext value are accepted once and upgraded in place.
func (s *Service) passwordMatches(ctx context.Context, cred *models.Credential, password string) bool {
	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) == nil {
		return true
	}
	if !strings.HasPrefix(cred.Password, "$2") && cred.Password == password {
		if hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost); err == nil {
			if err := s.creds.ReplaceHash(ctx, cred.UserID, string(hash)); err != nil {
				logs.Logger.Warnf("auth: hash upgrade failed for %s: %v", cred.UserID, err)
			}
		}
		return true
	}
	return false
}
