package sqlrecord

import (
	"fmt"
	"strings"
)

// unsafeWhereTokens are rejected in where fragments: each one would let a
// fragment smuggle a second statement or comment out the rest of the query.
var unsafeWhereTokens = []string{";", "--", "/*", "*/"}

// ValidateWhere checks a raw where fragment before it is appended to a
// generated statement. An empty or blank fragment is valid and means "no
// WHERE clause". The check is a token denylist, not an injection barrier:
// fragments are trusted program input, never user input.
func ValidateWhere(where string) error {
	for _, tok := range unsafeWhereTokens {
		if strings.Contains(where, tok) {
			return fmt.Errorf("%w: contains %q", ErrUnsafeWhere, tok)
		}
	}
	return nil
}
