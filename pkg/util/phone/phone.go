// Package phone normalizes submitted mobile numbers to E.164.
package phone

import "github.com/nyaruka/phonenumbers"

// Normalize formats raw as E.164 using region (ISO 3166-1 alpha-2, e.g.
// "IR") as the default country. Values that don't parse as valid numbers
// come back unchanged; a phone number never causes a rejection.
func Normalize(raw, region string) string {
	if raw == "" || region == "" {
		return raw
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return raw
	}

	return phonenumbers.Format(num, phonenumbers.E164)
}
