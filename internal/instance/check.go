package instance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/foerderfunke/shaclgen/internal/registry"
	"github.com/foerderfunke/shaclgen/internal/shape"
)

// Violation is one failed constraint from a conformance check.
type Violation struct {
	Field  string
	Value  string
	Reason string
}

func (v Violation) String() string {
	if v.Value == "" {
		return fmt.Sprintf("%s: %s", v.Field, v.Reason)
	}
	return fmt.Sprintf("%s: value %q %s", v.Field, v.Value, v.Reason)
}

// Check evaluates a citizen against property-shape fragments. This is a
// property-level conformance check over the constraints the fragments
// carry: allowed-value membership, datatype lexical form, and maxCount.
// Fields without a matching fragment pass unchecked.
func Check(c *Citizen, fragments []shape.Fragment) (bool, []Violation) {
	var violations []Violation

	for _, frag := range fragments {
		values, ok := c.Properties[frag.FieldName]
		if !ok {
			continue
		}

		if frag.MaxCount > 0 && len(values) > frag.MaxCount {
			violations = append(violations, Violation{
				Field:  frag.FieldName,
				Reason: fmt.Sprintf("has %d values, at most %d allowed", len(values), frag.MaxCount),
			})
		}

		for _, value := range values {
			if v, ok := checkValue(frag, value); !ok {
				violations = append(violations, v)
			}
		}
	}

	return len(violations) == 0, violations
}

func checkValue(frag shape.Fragment, value string) (Violation, bool) {
	if frag.IsEnumerated() {
		for _, allowed := range frag.In {
			if allowed.ID == value {
				return Violation{}, true
			}
		}
		return Violation{
			Field:  frag.FieldName,
			Value:  value,
			Reason: "is not among the allowed values",
		}, false
	}

	st, known := registry.ParseScalarType(frag.Datatype)
	if !known {
		return Violation{}, true
	}

	switch st {
	case registry.ScalarBoolean:
		if value != "true" && value != "false" {
			return Violation{
				Field:  frag.FieldName,
				Value:  value,
				Reason: "is not a boolean literal",
			}, false
		}
	case registry.ScalarInteger:
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return Violation{
				Field:  frag.FieldName,
				Value:  value,
				Reason: "is not an integer literal",
			}, false
		}
	case registry.ScalarDate:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return Violation{
				Field:  frag.FieldName,
				Value:  value,
				Reason: "is not an ISO date",
			}, false
		}
	}
	return Violation{}, true
}
