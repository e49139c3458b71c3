package profile

import (
	"regexp"
	"time"

	"syndic/internal/models"
)

// Fields is the union of everything a profile update may carry; nil means
// "not supplied". Each role whitelists its own subset.
type Fields struct {
	Name     *string
	Email    *string
	Phone    *string
	Password *string
	BlockNo  *int
	RoomNo   *int
	Age      *int
	DOB      *string
}

// ValidationError carries the user-facing (French) message for a 400.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

var (
	phoneRe = regexp.MustCompile(`^((\+33[67])|(0[67]))\d{8}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// roleRules is the single dispatch point replacing the legacy per-role
// if/else ladders: one implementation per role validates its whitelist and
// produces the column updates for its profile table.
type roleRules interface {
	validate(f Fields, knownBlocks []int) error
	updates(f Fields) map[string]any
}

func rulesFor(role models.Role) (roleRules, bool) {
	switch role {
	case models.RoleAdmin:
		return adminRules{}, true
	case models.RoleTenant:
		return tenantRules{}, true
	case models.RoleOwner:
		return ownerRules{}, true
	case models.RoleEmployee:
		return employeeRules{}, true
	}
	return nil, false
}

// sharedValidate covers the fields every role accepts.
func sharedValidate(f Fields) error {
	if f.Email != nil && !emailRe.MatchString(*f.Email) {
		return invalid("Adresse e-mail invalide.")
	}
	if f.Password != nil && len(*f.Password) < 6 {
		return invalid("Le mot de passe doit contenir au moins 6 caractères.")
	}
	return nil
}

type adminRules struct{}

func (adminRules) validate(f Fields, knownBlocks []int) error {
	if f.BlockNo == nil || *f.BlockNo <= 0 {
		return invalid("Le numéro de bloc doit être un entier positif.")
	}
	found := false
	for _, b := range knownBlocks {
		if b == *f.BlockNo {
			found = true
			break
		}
	}
	if !found {
		return invalid("Numéro de bloc inconnu.")
	}
	if f.Phone != nil && !phoneRe.MatchString(*f.Phone) {
		return invalid("Le numéro de téléphone doit commencer par +336, +337, 06, ou 07 et être suivi de 8 chiffres (ex: +33612345678 ou 0612345678).")
	}
	return sharedValidate(f)
}

// The admin name is display-only and never written.
func (adminRules) updates(f Fields) map[string]any {
	u := map[string]any{"block_no": *f.BlockNo}
	if f.Phone != nil {
		u["phone"] = *f.Phone
	}
	return u
}

type tenantRules struct{}

func (tenantRules) validate(f Fields, _ []int) error {
	if f.RoomNo == nil || *f.RoomNo <= 0 {
		return invalid("Le numéro de chambre doit être un entier positif.")
	}
	if f.Age != nil && *f.Age <= 0 {
		return invalid("L'âge doit être un entier positif.")
	}
	if f.DOB != nil {
		d, err := time.Parse("2006-01-02", *f.DOB)
		if err != nil {
			return invalid("Date de naissance invalide (format attendu AAAA-MM-JJ).")
		}
		if !d.Before(time.Now()) {
			return invalid("La date de naissance doit être dans le passé.")
		}
	}
	return sharedValidate(f)
}

func (tenantRules) updates(f Fields) map[string]any {
	u := map[string]any{"room_no": *f.RoomNo}
	if f.Name != nil {
		u["name"] = *f.Name
	}
	if f.Age != nil {
		u["age"] = *f.Age
	}
	if f.DOB != nil {
		u["dob"] = *f.DOB
	}
	return u
}

type ownerRules struct{}

func (ownerRules) validate(f Fields, _ []int) error { return sharedValidate(f) }

func (ownerRules) updates(f Fields) map[string]any {
	u := map[string]any{}
	if f.Name != nil {
		u["name"] = *f.Name
	}
	return u
}

type employeeRules struct{}

func (employeeRules) validate(f Fields, _ []int) error { return sharedValidate(f) }

func (employeeRules) updates(f Fields) map[string]any {
	u := map[string]any{}
	if f.Name != nil {
		u["name"] = *f.Name
	}
	return u
}
