package selector

import (
	"sort"
	"strings"
)

// Set is a set of labels attached to an object, keyed by label key.
// A Set is never mutated by this package.
type Set map[string]string

// Has returns whether the provided key exists in the set.
func (s Set) Has(key string) bool {
	_, exists := s[key]
	return exists
}

// Get returns the value for the provided key, or the empty string.
func (s Set) Get(key string) string {
	return s[key]
}

// String returns the set as a comma-separated list of key=value pairs,
// sorted by key. The result is itself a valid selector expression that
// matches exactly the objects carrying these labels.
func (s Set) String() string {
	pairs := make([]string, 0, len(s))
	for key, value := range s {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

// AsSelector converts the set into a selector that requires every
// key to be present with exactly its value.
func (s Set) AsSelector() Selector {
	return FromSet(s)
}

// Operator is the comparison applied by a single requirement.
type Operator string

const (
	Equals       Operator = "="
	NotEquals    Operator = "!="
	In           Operator = "in"
	NotIn        Operator = "notin"
	Exists       Operator = "exists"
	DoesNotExist Operator = "!"
)

// Requirement is a single key/operator/values clause within a selector.
// Requirements are constructed via NewRequirement and immutable afterwards.
type Requirement struct {
	key      string
	operator Operator
	values   []string
}

// NewRequirement creates a requirement after validating the key, the
// values and the operator arity under the default limits:
//   - Equals/NotEquals: exactly one value
//   - In/NotIn: one or more values
//   - Exists/DoesNotExist: no values
func NewRequirement(key string, op Operator, values []string) (Requirement, error) {
	return NewRequirementWithLimits(key, op, values, DefaultLimits())
}

// NewRequirementWithLimits is NewRequirement with caller-supplied length limits.
func NewRequirementWithLimits(key string, op Operator, values []string, limits Limits) (Requirement, error) {
	if err := ValidateKey(key, limits); err != nil {
		return Requirement{}, err
	}

	switch op {
	case Equals, NotEquals:
		if len(values) != 1 {
			return Requirement{}, &ValidationError{
				Field:   "values",
				Value:   key,
				Message: "'=' and '!=' operators require exactly one value",
			}
		}
	case In, NotIn:
		if len(values) == 0 {
			return Requirement{}, &ValidationError{
				Field:   "values",
				Value:   key,
				Message: "'in' and 'notin' operators require at least one value",
			}
		}
	case Exists, DoesNotExist:
		if len(values) != 0 {
			return Requirement{}, &ValidationError{
				Field:   "values",
				Value:   key,
				Message: "existence operators accept no values",
			}
		}
	default:
		return Requirement{}, &ValidationError{
			Field:   "operator",
			Value:   string(op),
			Message: "unsupported operator",
		}
	}

	for _, value := range values {
		if err := ValidateValue(value, limits); err != nil {
			return Requirement{}, err
		}
	}

	return Requirement{
		key:      key,
		operator: op,
		values:   append([]string(nil), values...),
	}, nil
}

// Key returns the label key the requirement applies to.
func (r Requirement) Key() string {
	return r.key
}

// Operator returns the requirement's operator.
func (r Requirement) Operator() Operator {
	return r.operator
}

// Values returns a copy of the requirement's value list.
func (r Requirement) Values() []string {
	return append([]string(nil), r.values...)
}

func (r Requirement) hasValue(value string) bool {
	for _, v := range r.values {
		if v == value {
			return true
		}
	}
	return false
}

// Matches reports whether the label set satisfies this requirement.
// Absence of the key satisfies NotEquals and NotIn.
func (r Requirement) Matches(labels Set) bool {
	value, exists := labels[r.key]
	switch r.operator {
	case Exists:
		return exists
	case DoesNotExist:
		return !exists
	case Equals:
		return exists && value == r.values[0]
	case NotEquals:
		return !exists || value != r.values[0]
	case In:
		return exists && r.hasValue(value)
	case NotIn:
		return !exists || !r.hasValue(value)
	}
	return false
}

// String returns the requirement in textual selector syntax.
// In/NotIn values are emitted sorted so the output is deterministic.
func (r Requirement) String() string {
	var sb strings.Builder
	switch r.operator {
	case Exists:
		return r.key
	case DoesNotExist:
		sb.WriteString("!")
		sb.WriteString(r.key)
		return sb.String()
	}

	sb.WriteString(r.key)
	switch r.operator {
	case Equals:
		sb.WriteString("=")
		sb.WriteString(r.values[0])
	case NotEquals:
		sb.WriteString("!=")
		sb.WriteString(r.values[0])
	case In, NotIn:
		if r.operator == In {
			sb.WriteString(" in (")
		} else {
			sb.WriteString(" notin (")
		}
		sorted := append([]string(nil), r.values...)
		sort.Strings(sorted)
		sb.WriteString(strings.Join(sorted, ","))
		sb.WriteString(")")
	}
	return sb.String()
}

// Selector is an ordered conjunction of requirements. The zero value
// (and any empty selector) matches every label set.
type Selector []Requirement

// Everything returns a selector that matches all label sets.
func Everything() Selector {
	return Selector{}
}

// Matches reports whether the label set satisfies every requirement.
// Evaluation is pure: the set is never modified, and the same inputs
// always yield the same result. Stops at the first failing requirement.
func (s Selector) Matches(labels Set) bool {
	for i := range s {
		if !s[i].Matches(labels) {
			return false
		}
	}
	return true
}

// Empty reports whether the selector places no restriction on the
// selection space.
func (s Selector) Empty() bool {
	return len(s) == 0
}

// Requirements returns a copy of the selector's requirements in the
// order they were supplied.
func (s Selector) Requirements() []Requirement {
	return append([]Requirement(nil), s...)
}

// Add returns a new selector extended with the given requirements.
// The receiver is unchanged.
func (s Selector) Add(reqs ...Requirement) Selector {
	extended := make(Selector, 0, len(s)+len(reqs))
	extended = append(extended, s...)
	extended = append(extended, reqs...)
	return extended
}

// String returns the selector in textual syntax. Parsing the result
// yields an equivalent selector.
func (s Selector) String() string {
	parts := make([]string, len(s))
	for i, req := range s {
		parts[i] = req.String()
	}
	return strings.Join(parts, ",")
}

// FromSet builds a selector requiring key=value for every entry of the
// set, ordered by key. The input is assumed to carry valid keys and
// values; no validation is applied.
func FromSet(ls Set) Selector {
	keys := make([]string, 0, len(ls))
	for key := range ls {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	sel := make(Selector, 0, len(keys))
	for _, key := range keys {
		sel = append(sel, Requirement{
			key:      key,
			operator: Equals,
			values:   []string{ls[key]},
		})
	}
	return sel
}
