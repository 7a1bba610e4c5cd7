package validator

import (
	"strings"

	"github.com/google/uuid"
)

// isUUID checks the canonical 36 character form before paying for a parse.
func isUUID(value string) bool {
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}

var uuidPredicate = stringCheck(CodeInvalidUUID, "must be a valid UUID", isUUID)

// UUID requires a canonical, hyphenated UUID string.
func UUID() Rule { return Rule{Name: "uuid", Check: uuidPredicate} }

// NonNilUUID additionally rejects the all-zero UUID.
func NonNilUUID() Rule {
	return Rule{
		Name: "uuid:nonnil",
		Check: stringCheck(CodeInvalidUUID, "UUID cannot be nil", func(s string) bool {
			return isUUID(s) && !strings.EqualFold(s, uuid.Nil.String())
		}),
	}
}
