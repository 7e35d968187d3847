package queries

import (
	"fmt"
	"regexp"
)

// identPattern matches the identifiers that may be interpolated into
// statement text: labels, relationship types, property names, and
// constraint/index names. Anything else must bind as a parameter.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// checkIdent rejects an identifier that is not safe to interpolate.
// The schema package only hands out identifiers from its fixed mappings,
// so a failure here means a programming error, not bad user data.
func checkIdent(kind, name string) error {
	if !identPattern.MatchString(name) {
		return fmt.Errorf("invalid %s identifier: %q", kind, name)
	}
	return nil
}
