package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Shown wherever a package points at a resident id that no longer resolves.
const UnknownResidentName = "Unknown resident"

// A building resident reachable over the messaging channel. Phone is kept
// digits-only in international format (e.g. 5511999999999). Residents are
// never edited after creation, only added and deleted.
type Resident struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Apartment string `json:"apartment"`
	Phone     string `json:"phone"`
}

func NewResident(name, apartment, phone string) (Resident, error) {
	name = strings.TrimSpace(name)
	apartment = strings.TrimSpace(apartment)
	phone = strings.TrimSpace(phone)

	if name == "" {
		return Resident{}, fmt.Errorf("new resident: name is required: %w", ErrValidation)
	}
	if apartment == "" {
		return Resident{}, fmt.Errorf("new resident: apartment is required: %w", ErrValidation)
	}
	if phone == "" {
		return Resident{}, fmt.Errorf("new resident: phone is required: %w", ErrValidation)
	}
	if !digitsOnly(phone) {
		return Resident{}, fmt.Errorf("new resident: phone %q must contain digits only: %w", phone, ErrValidation)
	}

	return Resident{
		ID:        uuid.NewString(),
		Name:      name,
		Apartment: apartment,
		Phone:     phone,
	}, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(s) > 0
}

// ResolveResident looks an id up without assuming referential integrity.
// Orphaned packages make a missing id a normal outcome, not an error.
func ResolveResident(residents []Resident, id string) (Resident, bool) {
	for _, r := range residents {
		if r.ID == id {
			return r, true
		}
	}

	return Resident{}, false
}

// ResidentLabel renders "Name (Apartment)" for reports and notifications,
// degrading to the unknown-resident placeholder for orphaned packages.
func ResidentLabel(residents []Resident, id string) string {
	r, ok := ResolveResident(residents, id)
	if !ok {
		return UnknownResidentName
	}

	return fmt.Sprintf("%s (%s)", r.Name, r.Apartment)
}

// SearchResidents filters by case-insensitive name substring or by
// apartment substring, the way the desk search box works.
func SearchResidents(residents []Resident, term string) []Resident {
	term = strings.TrimSpace(term)
	if term == "" {
		return residents
	}

	lower := strings.ToLower(term)
	out := make([]Resident, 0, len(residents))
	for _, r := range residents {
		if strings.Contains(strings.ToLower(r.Name), lower) || strings.Contains(r.Apartment, term) {
			out = append(out, r)
		}
	}

	return out
}
