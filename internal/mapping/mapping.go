// Package mapping binds template variable indices to contact fields.
//
// A template either has never had a mapping configured (Absent) or carries a
// set of index -> field entries (Present). The two are kept apart on every
// boundary: JSON encodes Absent as null and DynamoDB drops the attribute.
package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

var indexRe = regexp.MustCompile(`^[0-9]+$`)

// Mapping is the tagged variant {Absent, Present(entries)}. The zero value is Absent.
type Mapping struct {
	entries map[string]string
	present bool
}

// Absent returns a mapping that was never configured.
func Absent() Mapping {
	return Mapping{}
}

// Present returns a configured mapping holding a copy of entries.
func Present(entries map[string]string) Mapping {
	cp := make(map[string]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	return Mapping{entries: cp, present: true}
}

// FromEntries is what a save sends: an empty set of entries collapses to Absent.
func FromEntries(entries map[string]string) Mapping {
	if len(entries) == 0 {
		return Absent()
	}
	return Present(entries)
}

// IsPresent reports whether the template carries a mapping at all.
func (m Mapping) IsPresent() bool {
	return m.present
}

// Len is the number of mapped indices, zero when absent.
func (m Mapping) Len() int {
	return len(m.entries)
}

// Entries returns a copy of the entries, nil when absent.
func (m Mapping) Entries() map[string]string {
	if !m.present {
		return nil
	}
	cp := make(map[string]string, len(m.entries))
	for k, v := range m.entries {
		cp[k] = v
	}
	return cp
}

// Get returns the field bound to a variable index.
func (m Mapping) Get(index string) (string, bool) {
	f, ok := m.entries[index]
	return f, ok
}

// Indices returns the mapped indices in numeric order.
func (m Mapping) Indices() []string {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	return SortIndices(keys)
}

// Equal compares presence and entries.
func (m Mapping) Equal(o Mapping) bool {
	if m.present != o.present || len(m.entries) != len(o.entries) {
		return false
	}
	for k, v := range m.entries {
		if ov, ok := o.entries[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Validate checks every key is a variable index and every value a field reference.
func (m Mapping) Validate() error {
	for _, k := range m.Indices() {
		if !IsIndex(k) {
			return fmt.Errorf("%w: key '%s' is not a variable index", ErrInvalidMapping, k)
		}
		if _, err := ParseFieldRef(m.entries[k]); err != nil {
			return fmt.Errorf("%w: variable %s: %w", ErrInvalidMapping, k, err)
		}
	}
	return nil
}

func (m Mapping) String() string {
	if !m.present {
		return "<absent>"
	}
	return fmt.Sprint(m.entries)
}

// MarshalJSON encodes an absent mapping as null.
func (m Mapping) MarshalJSON() ([]byte, error) {
	if !m.present {
		return []byte("null"), nil
	}
	return json.Marshal(m.entries)
}

func (m *Mapping) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*m = Absent()
		return nil
	}
	var entries map[string]string
	if err := json.Unmarshal(b, &entries); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidMapping, err)
	}
	*m = Present(entries)
	return nil
}

// MarshalDynamoDBAttributeValue writes Absent as NULL; repositories strip it before writing.
func (m Mapping) MarshalDynamoDBAttributeValue(av *dynamodb.AttributeValue) error {
	if !m.present {
		av.NULL = aws.Bool(true)
		return nil
	}
	av.M = make(map[string]*dynamodb.AttributeValue, len(m.entries))
	for k, v := range m.entries {
		av.M[k] = &dynamodb.AttributeValue{S: aws.String(v)}
	}
	return nil
}

func (m *Mapping) UnmarshalDynamoDBAttributeValue(av *dynamodb.AttributeValue) error {
	if av == nil || (av.NULL != nil && *av.NULL) {
		*m = Absent()
		return nil
	}
	if av.M == nil {
		return fmt.Errorf("%w: expected map attribute", ErrInvalidMapping)
	}
	entries := make(map[string]string, len(av.M))
	for k, v := range av.M {
		if v == nil || v.S == nil {
			return fmt.Errorf("%w: value for '%s' is not a string", ErrInvalidMapping, k)
		}
		entries[k] = *v.S
	}
	*m = Present(entries)
	return nil
}

// IsIndex reports whether s is a variable index: one or more decimal digits.
func IsIndex(s string) bool {
	return indexRe.MatchString(s)
}

// SortIndices orders variable indices by numeric value so "10" follows "9".
// Equal values ("01", "1") fall back to string order.
func SortIndices(indices []string) []string {
	sort.SliceStable(indices, func(i, j int) bool {
		a, b := indexValue(indices[i]), indexValue(indices[j])
		if a != b {
			return a < b
		}
		return indices[i] < indices[j]
	})
	return indices
}

func indexValue(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return ^uint64(0)
	}
	return v
}
