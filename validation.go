package users

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// passwordSymbols is the set of symbols the password policy accepts
const passwordSymbols = "@$!%*?&"

// ValidatePasswordPolicy enforces the account password policy: 8 to 20
// characters drawn from letters, digits, and the accepted symbol set, with
// at least one lowercase, one uppercase, one digit, and one symbol.
// Shaped as an ozzo validation.By rule.
func ValidatePasswordPolicy(value any) error {
	password, _ := value.(string)
	if password == "" {
		// Required handles absence
		return nil
	}

	if len(password) < 8 || len(password) > 20 {
		return errors.New("must be between 8 and 20 characters")
	}

	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			return errors.New("contains characters outside letters, digits, and @$!%*?&")
		}
	}

	if !lower || !upper || !digit || !symbol {
		return errors.New("must include a lowercase letter, an uppercase letter, a digit, and one of @$!%*?&")
	}

	return nil
}

// ValidatePhoneNumber checks optional phone fields against real numbering
// plans instead of a digit-count heuristic. Shaped as an ozzo validation.By
// rule; empty values pass so the field stays optional.
func ValidatePhoneNumber(value any) error {
	phone, _ := value.(string)
	if phone == "" {
		return nil
	}

	num, err := phonenumbers.Parse(phone, "US")
	if err != nil {
		return errors.New("must be a valid phone number")
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("must be a valid phone number")
	}

	return nil
}
