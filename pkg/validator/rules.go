package validator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// RequiredString validates that a string is not empty after trimming
// whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// IntString validates that a string parses as a base-10 integer. Empty
// strings pass so the rule composes with RequiredString.
func IntString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			_, err := strconv.Atoi(value)
			return err == nil
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be an integer",
		},
	}
}

// OneOf validates that a value is one of the allowed choices. Empty
// strings pass so the rule composes with RequiredString.
func OneOf(field, value string, choices ...string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			return slices.Contains(choices, value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(choices, ", ")),
		},
	}
}
