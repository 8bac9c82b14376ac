package key

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnrecognizedSpec is returned by Parse for values it cannot resolve.
var ErrUnrecognizedSpec = errors.New("dynacrud: unrecognized key spec")

// Spec is any value that resolves to a Key under a Schema.
// The set is closed: String, Parts, Split and Key.
type Spec interface {
	resolve(s Schema) Key
}

// String is a single delimited key, split on the schema separator and
// resolved like Parts.
type String string

// Parts is a flat ordered sequence: resource name, resource id, then
// optional range parts. A single part is the whole hash value, with no
// trailing separator, and an empty range.
type Parts []string

// Split holds hash parts and range parts, each joined independently.
type Split struct {
	Hash  []string
	Range []string
}

// Pair builds a Split from two ordered sequences.
func Pair(hash, rng []string) Split {
	return Split{Hash: hash, Range: rng}
}

// Resolve reduces spec to a Key. A nil spec resolves to the zero Key.
func Resolve(s Schema, spec Spec) Key {
	if spec == nil {
		return Key{}
	}
	return spec.resolve(s.Normalize())
}

func (k Key) resolve(Schema) Key { return k }

func (str String) resolve(s Schema) Key {
	return Parts(strings.Split(string(str), s.Separator)).resolve(s)
}

func (p Parts) resolve(s Schema) Key {
	if len(p) == 0 {
		return Key{}
	}
	hashParts := p[:min(2, len(p))]
	rangeParts := p
	if len(p) != 2 {
		rangeParts = p[min(2, len(p)):]
	}
	return Key{
		Hash:  s.Join(hashParts),
		Range: s.Join(rangeParts),
	}
}

func (sp Split) resolve(s Schema) Key {
	return Key{
		Hash:  s.Join(sp.Hash),
		Range: s.Join(sp.Range),
	}
}

// Parse turns a loosely typed value into a Spec. Accepted shapes:
//
//   - string: delimited key
//   - []string, []any of strings: flat sequence
//   - [2][]string, [][]string of length 2: hash parts and range parts
//   - map[string]string, map[string]any keyed by the schema's key names,
//     whose values are strings (already resolved) or sequences (joined)
//   - any Spec, returned as is
//
// Anything else yields ErrUnrecognizedSpec.
func Parse(s Schema, v any) (Spec, error) {
	s = s.Normalize()
	switch t := v.(type) {
	case Spec:
		return t, nil
	case string:
		return String(t), nil
	case []string:
		return Parts(t), nil
	case []any:
		parts, ok := stringsOf(t)
		if !ok {
			return nil, fmt.Errorf("%w: non-string part in %v", ErrUnrecognizedSpec, t)
		}
		return Parts(parts), nil
	case [2][]string:
		return Pair(t[0], t[1]), nil
	case [][]string:
		if len(t) != 2 {
			return nil, fmt.Errorf("%w: expected 2 sequences, got %d", ErrUnrecognizedSpec, len(t))
		}
		return Pair(t[0], t[1]), nil
	case map[string]string:
		return Key{Hash: t[s.HashKeyName], Range: t[s.RangeKeyName]}, nil
	case map[string]any:
		return parseMapping(s, t)
	}
	return nil, fmt.Errorf("%w: %T", ErrUnrecognizedSpec, v)
}

// parseMapping handles mappings whose key entries are either literal
// strings or sequences of parts.
func parseMapping(s Schema, m map[string]any) (Spec, error) {
	hash, hashSeq, err := component(m[s.HashKeyName])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.HashKeyName, err)
	}
	rng, rangeSeq, err := component(m[s.RangeKeyName])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.RangeKeyName, err)
	}
	if !hashSeq && !rangeSeq {
		return Key{Hash: hash[0], Range: rng[0]}, nil
	}
	return Split{Hash: hash, Range: rng}, nil
}

func component(v any) (parts []string, seq bool, err error) {
	switch t := v.(type) {
	case nil:
		return []string{""}, false, nil
	case string:
		return []string{t}, false, nil
	case []string:
		return t, true, nil
	case []any:
		parts, ok := stringsOf(t)
		if !ok {
			return nil, false, fmt.Errorf("%w: non-string part in %v", ErrUnrecognizedSpec, t)
		}
		return parts, true, nil
	}
	return nil, false, fmt.Errorf("%w: %T", ErrUnrecognizedSpec, v)
}

func stringsOf(vs []any) ([]string, bool) {
	out := make([]string, len(vs))
	for i, v := range vs {
		str, ok := v.(string)
		if !ok {
			return nil, false
		}
		out[i] = str
	}
	return out, true
}
