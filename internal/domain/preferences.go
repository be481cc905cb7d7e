package domain

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Preferences holds the user's digest configuration. It is persisted as one
// JSON document and replaced wholesale on every "manage" edit.
type Preferences struct {
	Email    string `json:"email" validate:"required,email"`
	Timezone string `json:"timezone" validate:"required"`
	Teams    []Team `json:"teams" validate:"required,min=1,max=10,unique=ID"`
}

var validate = validator.New()

// Validate checks the document: email format, 1–10 teams with unique ids,
// and a loadable IANA timezone.
func (p *Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	if _, err := ValidateTZ(p.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", p.Timezone, err)
	}
	return nil
}

// ValidateTZ checks that the tz is a valid IANA location.
func ValidateTZ(tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", err
	}
	return loc.String(), nil
}
