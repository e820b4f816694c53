package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidFormat is returned when a code cannot be normalized to the canonical form
	ErrInvalidFormat = errors.New("invalid identifier format")
	// ErrDuplicate is returned when a code already exists in the authoritative list
	ErrDuplicate = errors.New("identifier already exists")
)

// ClientPrefix is the fixed prefix for client numbers
const ClientPrefix = "CL"

// InvoicePrefix is the fixed prefix for invoice numbers
const InvoicePrefix = "IV"

// GenericPrefix is used when a type hint matches no known instrument family
const GenericPrefix = "IN"

// prefixKeywords maps keyword fragments to the instrument family prefix.
// Matching is case-insensitive substring, first hit wins.
var prefixKeywords = []struct {
	keyword string
	prefix  string
}{
	{"violin", "VI"},
	{"바이올린", "VI"},
	{"viola", "VA"},
	{"비올라", "VA"},
	{"cello", "CE"},
	{"첼로", "CE"},
	{"double bass", "DB"},
	{"bass", "DB"},
	{"더블베이스", "DB"},
	{"베이스", "DB"},
	{"bow", "BO"},
	{"활", "BO"},
}

var (
	trailingDigits = regexp.MustCompile(`(\d+)$`)
	canonical      = regexp.MustCompile(`^[A-Z]{2}[0-9]{7}$`)
	shortForm      = regexp.MustCompile(`^([A-Za-z]{2})(\d{1,7})$`)
)

// PrefixFor resolves a free-text type hint to a two-letter prefix.
func PrefixFor(typeHint string) string {
	hint := strings.ToLower(strings.TrimSpace(typeHint))
	if hint == "" {
		return GenericPrefix
	}
	for _, entry := range prefixKeywords {
		if strings.Contains(hint, entry.keyword) {
			return entry.prefix
		}
	}
	return GenericPrefix
}

// Generate derives the next code for the given type hint, scanning existing
// codes for the highest sequence number under the same prefix. The result is
// zero-padded to at least three digits.
//
// Generate is a pure function: callers racing on a stale existing list can
// produce the same code, so uniqueness must be re-checked against the live
// store before persisting (see ValidateUnique).
func Generate(typeHint string, existing []string) string {
	prefix := PrefixFor(typeHint)
	return GenerateWithPrefix(prefix, existing)
}

// GenerateWithPrefix derives the next code for an explicit prefix.
func GenerateWithPrefix(prefix string, existing []string) string {
	prefix = strings.ToUpper(prefix)
	max := 0
	for _, code := range existing {
		upper := strings.ToUpper(strings.TrimSpace(code))
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		m := trailingDigits.FindString(upper)
		if m == "" {
			continue
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%03d", prefix, max+1)
}

// Normalize converts a code to the canonical form of two uppercase letters
// followed by seven digits, left-padding short sequence numbers.
func Normalize(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	upper := strings.ToUpper(trimmed)
	if canonical.MatchString(upper) {
		return upper, nil
	}
	m := shortForm.FindStringSubmatch(upper)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, code)
	}
	return fmt.Sprintf("%s%07d", m[1], n), nil
}

// NextCode derives the next code for a prefix and returns it in canonical
// form, re-checked against existing so callers can persist it directly.
func NextCode(prefix string, existing []string) (string, error) {
	code, err := Normalize(GenerateWithPrefix(prefix, existing))
	if err != nil {
		return "", err
	}
	if err := ValidateUnique(code, existing); err != nil {
		return "", err
	}
	return code, nil
}

// ValidateUnique checks a code against the authoritative existing list. Both
// sides are reduced to canonical form first, so short and zero-padded
// spellings of the same sequence number collide.
func ValidateUnique(code string, existing []string) error {
	target := comparableForm(code)
	for _, e := range existing {
		if comparableForm(e) == target {
			return fmt.Errorf("%w: %s", ErrDuplicate, strings.ToUpper(strings.TrimSpace(code)))
		}
	}
	return nil
}

func comparableForm(code string) string {
	if n, err := Normalize(code); err == nil {
		return n
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
