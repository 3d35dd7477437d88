// Package normalize cleans raw customer fields into canonical forms.
// Every function here is pure and idempotent: malformed input becomes
// a nil field or a false flag, never an error, and cleaning an
// already-clean value changes nothing.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/goldrec/goldrec/pkg/dateparse"
	"github.com/goldrec/goldrec/pkg/record"
)

// emailRe is the canonical address grammar: local part, "@", domain,
// ".", TLD of at least two letters. Validity is checked on the
// trimmed original, not merely on the presence of "@".
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)

// nameJunk is the fixed set of decorative symbols stripped from name
// fields before re-capitalization.
const nameJunk = "#*!?$%^&~\"'()[]{}<>\\/|+=_@" + "`"

// Normalizer turns Raw records into Normalized ones. The date parser
// is injected so the layout priority stays a configuration concern.
type Normalizer struct {
	dates *dateparse.Parser
}

// New creates a Normalizer. A nil parser falls back to the default
// date layout priority.
func New(dates *dateparse.Parser) *Normalizer {
	if dates == nil {
		dates = dateparse.New(dateparse.DefaultPriority)
	}
	return &Normalizer{dates: dates}
}

// Record derives the Normalized form of r. It never fails; control
// characters, junk symbols and unparsable values degrade to nil
// fields or false flags.
func (n *Normalizer) Record(r record.Raw) record.Normalized {
	res := record.Normalized{Raw: r}

	res.EmailClean, res.IsValidEmail = Email(r.Email)
	res.FirstNameClean = Name(r.FirstName)
	res.LastNameClean = Name(r.LastName)
	res.PhoneClean = Phone(r.Phone)
	res.CreatedAtParsed = n.dates.Parse(strings.TrimSpace(r.CreatedAtRaw))

	return res
}

// Email returns the trimmed, lowercased address (nil when empty or
// all whitespace) and whether the trimmed original is a valid
// address. The two results are independent: a present but malformed
// address yields a non-nil clean value with a false flag.
func Email(s string) (*string, bool) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, false
	}

	clean := strings.ToLower(trimmed)
	return &clean, emailRe.MatchString(trimmed)
}

// Name strips decorative symbols and control characters, trims, and
// re-capitalizes as first-letter-upper, remainder-lower. Empty after
// stripping returns nil.
func Name(s string) *string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || strings.ContainsRune(nameJunk, r) {
			continue
		}
		b.WriteRune(r)
	}

	stripped := strings.TrimSpace(b.String())
	if stripped == "" {
		return nil
	}

	runes := []rune(strings.ToLower(stripped))
	runes[0] = unicode.ToUpper(runes[0])
	clean := string(runes)
	return &clean
}

// Phone keeps digits and a leading '+' only. Empty after stripping
// returns nil.
func Phone(s string) *string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return nil
	}
	clean := b.String()
	return &clean
}
