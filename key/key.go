// Package key resolves loosely shaped key specifications into composite
// hash/range keys.
//
// A record is identified by a hash value grouping related records and a
// range value distinguishing them. Callers rarely hold those strings
// directly; they hold parts such as ("user", "42") or ("user", "42",
// "session", "7"). Every [Spec] shape below reduces to the same [Key]:
//
//	key.String("user.42")                 // delimited
//	key.Parts{"user", "42"}               // flat sequence
//	key.Pair([]string{"user", "42"}, []string{"user", "42"}) // hash parts + range parts
//	key.Key{Hash: "user.42", Range: "user.42"}
//
// The first two parts of a flat sequence always form the hash value. With
// exactly two parts the range value repeats the hash value, otherwise it
// joins the remaining parts.
package key

import "strings"

// Default names and separator used when a Schema field is empty.
const (
	DefaultHashKeyName  = "hash"
	DefaultRangeKeyName = "range"
	DefaultSeparator    = "."
)

// Schema names the key attributes and the separator used to join parts.
type Schema struct {
	HashKeyName  string
	RangeKeyName string
	Separator    string
}

// DefaultSchema returns the hash/range/"." schema.
func DefaultSchema() Schema {
	return Schema{
		HashKeyName:  DefaultHashKeyName,
		RangeKeyName: DefaultRangeKeyName,
		Separator:    DefaultSeparator,
	}
}

// Normalize fills empty fields with their defaults.
func (s Schema) Normalize() Schema {
	if s.HashKeyName == "" {
		s.HashKeyName = DefaultHashKeyName
	}
	if s.RangeKeyName == "" {
		s.RangeKeyName = DefaultRangeKeyName
	}
	if s.Separator == "" {
		s.Separator = DefaultSeparator
	}
	return s
}

// Join joins parts with the schema separator.
func (s Schema) Join(parts []string) string {
	return strings.Join(parts, s.Normalize().Separator)
}

// Key is a resolved composite key.
type Key struct {
	Hash  string
	Range string
}

// Attributes returns the key as an attribute map named by the schema.
func (k Key) Attributes(s Schema) map[string]string {
	s = s.Normalize()
	return map[string]string{
		s.HashKeyName:  k.Hash,
		s.RangeKeyName: k.Range,
	}
}

// Record returns the key as a logical record named by the schema.
func (k Key) Record(s Schema) map[string]any {
	s = s.Normalize()
	return map[string]any{
		s.HashKeyName:  k.Hash,
		s.RangeKeyName: k.Range,
	}
}

// IsZero reports whether both components are empty.
func (k Key) IsZero() bool {
	return k.Hash == "" && k.Range == ""
}

func (k Key) String() string {
	return k.Hash + "/" + k.Range
}
