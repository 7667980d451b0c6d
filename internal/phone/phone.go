// Package phone validates and canonicalizes phone numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalid is returned for input that does not parse to a valid number.
var ErrInvalid = errors.New("invalid phone number")

// Normalizer canonicalizes numbers, assuming DefaultRegion when the input has
// no international prefix.
type Normalizer struct {
	DefaultRegion string
}

// NewNormalizer returns a Normalizer for the given ISO 3166 region code.
func NewNormalizer(region string) Normalizer {
	return Normalizer{DefaultRegion: strings.ToUpper(region)}
}

// Normalize returns the number as international digits without a leading
// plus, e.g. "919876543210".
func (n Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalid
	}

	num, err := phonenumbers.Parse(raw, n.DefaultRegion)
	if err != nil {
		return "", ErrInvalid
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalid
	}

	return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+"), nil
}
