package validation

import (
	"math"
	"math/big"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Custom tags registered by New.
const (
	TagNotBlank       = "notblank"
	TagSimpleEmail    = "simple_email"
	TagPositiveNumber = "positive_number"
)

// simpleEmailRegex accepts local@domain.tld: no whitespace, a single '@' and a
// dot somewhere after it. Far looser than RFC 5322.
var simpleEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsSimpleEmail reports whether s looks like local@domain.tld.
func IsSimpleEmail(s string) bool {
	return simpleEmailRegex.MatchString(s)
}

var (
	// decimalRegex is a signed decimal with optional fraction and exponent.
	// It excludes the underscores, hex floats and Inf/NaN spellings that
	// strconv.ParseFloat would otherwise accept.
	decimalRegex = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

	// radixRegex is an unsigned 0x, 0o or 0b integer literal.
	radixRegex = regexp.MustCompile(`^0([xX][0-9a-fA-F]+|[oO][0-7]+|[bB][01]+)$`)
)

var radixBases = map[byte]int{'x': 16, 'o': 8, 'b': 2}

// ParseNumber parses s, ignoring surrounding whitespace, with the numeric
// grammar browsers apply to form input: decimals with an optional exponent,
// or 0x/0o/0b integers. Only finite results are accepted.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	if radixRegex.MatchString(s) {
		n, ok := new(big.Int).SetString(s[2:], radixBases[s[1]|0x20])
		if !ok {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(n).Float64()
		return f, !math.IsInf(f, 0)
	}

	if !decimalRegex.MatchString(s) {
		return 0, false
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}

// IsPositiveNumber reports whether s parses with ParseNumber to a number
// greater than zero.
func IsPositiveNumber(s string) bool {
	n, ok := ParseNumber(s)
	return ok && n > 0
}

// New returns a validator with the intake tags registered and field names
// reported by their JSON name.
//
// tagName selects the struct tag the validator reads; an empty tagName keeps
// the default "validate".
func New(tagName string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	if tagName != "" {
		v.SetTagName(tagName)
	}

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(TagNotBlank, validators.NotBlank)
	_ = v.RegisterValidation(TagSimpleEmail, func(fl validator.FieldLevel) bool {
		return IsSimpleEmail(fl.Field().String())
	})
	_ = v.RegisterValidation(TagPositiveNumber, func(fl validator.FieldLevel) bool {
		return IsPositiveNumber(fl.Field().String())
	})

	return v
}
