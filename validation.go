package jobboard

import (
	"fmt"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion anchors parsing of national-format numbers; numbers in
// E.164 form carry their own region.
const defaultPhoneRegion = "US"

// ValidatePhoneNumber is an ozzo rule (validation.By) for optional phone
// fields. Empty values pass; anything else must parse as a real number.
func ValidatePhoneNumber(value any) error {
	s, ok := value.(string)
	if !ok {
		if sp, okp := value.(*string); okp && sp != nil {
			s = *sp
		}
	}
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, defaultPhoneRegion)
	if err != nil {
		return fmt.Errorf("must be a valid phone number: %w", err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return fmt.Errorf("must be a valid phone number")
	}
	return nil
}

// ValidateSalaryRange enforces min <= max when both bounds are present.
func ValidateSalaryRange(min, max *int) error {
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("salary_min must not exceed salary_max")
	}
	return nil
}
