package selector

import (
	"fmt"
	"regexp"
	"strings"
)

// Limits configures the length restrictions applied to label keys and
// values. Character sets are fixed by the grammar; only lengths vary.
type Limits struct {
	// MaxNameLength bounds the name part of a key (after any prefix).
	MaxNameLength int
	// MaxPrefixLength bounds the optional DNS-subdomain prefix of a key.
	MaxPrefixLength int
	// MaxValueLength bounds label values.
	MaxValueLength int
}

// DefaultLimits returns the conventional Kubernetes limits:
// 63 characters for names and values, 253 for key prefixes.
func DefaultLimits() Limits {
	return Limits{
		MaxNameLength:   63,
		MaxPrefixLength: 253,
		MaxValueLength:  63,
	}
}

var (
	// Names and values: alphanumeric with '-', '_' and '.' allowed
	// between alphanumeric endpoints.
	nameRegexp = regexp.MustCompile(`^[A-Za-z0-9]([-A-Za-z0-9_.]*[A-Za-z0-9])?$`)

	// Key prefixes: lowercase DNS-1123 subdomains.
	prefixRegexp = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?(\.[a-z0-9]([-a-z0-9]*[a-z0-9])?)*$`)
)

// ValidateKey checks a label key of the form [prefix/]name against the
// grammar and the supplied limits.
func ValidateKey(key string, limits Limits) error {
	name := key
	if slash := strings.IndexByte(key, '/'); slash != -1 {
		prefix := key[:slash]
		name = key[slash+1:]

		if strings.IndexByte(name, '/') != -1 {
			return &ValidationError{
				Field:   "key",
				Value:   key,
				Message: "a key may contain at most one '/'",
			}
		}
		if prefix == "" {
			return &ValidationError{
				Field:   "key",
				Value:   key,
				Message: "key prefix must not be empty",
			}
		}
		if len(prefix) > limits.MaxPrefixLength {
			return &ValidationError{
				Field:   "key",
				Value:   key,
				Message: fmt.Sprintf("key prefix must be no more than %d characters", limits.MaxPrefixLength),
			}
		}
		if !prefixRegexp.MatchString(prefix) {
			return &ValidationError{
				Field:   "key",
				Value:   key,
				Message: "key prefix must be a lowercase DNS subdomain",
			}
		}
	}

	if name == "" {
		return &ValidationError{
			Field:   "key",
			Value:   key,
			Message: "key name must not be empty",
		}
	}
	if len(name) > limits.MaxNameLength {
		return &ValidationError{
			Field:   "key",
			Value:   key,
			Message: fmt.Sprintf("key name must be no more than %d characters", limits.MaxNameLength),
		}
	}
	if !nameRegexp.MatchString(name) {
		return &ValidationError{
			Field:   "key",
			Value:   key,
			Message: "key name must be alphanumeric, with '-', '_' or '.' allowed between alphanumerics",
		}
	}
	return nil
}

// ValidateValue checks a label value against the grammar and the
// supplied limits. The empty value is valid.
func ValidateValue(value string, limits Limits) error {
	if value == "" {
		return nil
	}
	if len(value) > limits.MaxValueLength {
		return &ValidationError{
			Field:   "value",
			Value:   value,
			Message: fmt.Sprintf("value must be no more than %d characters", limits.MaxValueLength),
		}
	}
	if !nameRegexp.MatchString(value) {
		return &ValidationError{
			Field:   "value",
			Value:   value,
			Message: "value must be empty or alphanumeric, with '-', '_' or '.' allowed between alphanumerics",
		}
	}
	return nil
}
