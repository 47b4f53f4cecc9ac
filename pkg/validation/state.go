package validation

import (
	"fmt"
	"strings"
)

// postalCodes lists the USPS codes of the 50 states and the District of Columbia.
var postalCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {},
	"DC": {}, "FL": {}, "GA": {}, "HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {},
	"KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {}, "MA": {}, "MI": {}, "MN": {},
	"MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {}, "NM": {},
	"NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {},
	"SC": {}, "SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {},
	"WV": {}, "WI": {}, "WY": {},
}

// IsKnownStateCode reports whether code (in any case) is a state or DC postal code.
func IsKnownStateCode(code string) bool {
	_, ok := postalCodes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// ValidateStateCode returns a warning for codes the guideline tables do not
// know about. Such codes are still accepted and priced with the table for the
// 48 contiguous states and DC.
func ValidateStateCode(name, code string) string {
	if IsKnownStateCode(code) {
		return ""
	}
	return fmt.Sprintf("Household '%s' has unrecognized state code %q - using the 48 contiguous states table", name, code)
}
