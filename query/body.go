package query

import "sort"

// Value is a body field value: either a literal or a lazily computed one.
// Lazy values are evaluated once, when the Query is built.
type Value interface {
	eval() any
}

type literal struct{ v any }

func (l literal) eval() any { return l.v }

type lazy func() any

func (fn lazy) eval() any {
	if fn == nil {
		return nil
	}
	return fn()
}

// Literal wraps a plain value.
func Literal(v any) Value { return literal{v: v} }

// Lazy wraps a function invoked with no arguments at build time, e.g. a
// timestamp that should not be computed before the query is shaped.
func Lazy(fn func() any) Value { return lazy(fn) }

// Field is a named body value.
type Field struct {
	Name  string
	Value Value
}

// Body is an ordered list of fields. Order drives the SET clause order of
// update expressions.
type Body []Field

// Set appends a literal field.
func (b Body) Set(name string, v any) Body {
	return append(b, Field{Name: name, Value: Literal(v)})
}

// SetLazy appends a lazily computed field.
func (b Body) SetLazy(name string, fn func() any) Body {
	return append(b, Field{Name: name, Value: Lazy(fn)})
}

// BodyOf builds a Body from a record, ordered by field name.
func BodyOf(r Record) Body {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)

	b := make(Body, 0, len(names))
	for _, name := range names {
		b = b.Set(name, r[name])
	}
	return b
}

// evaluate resolves every value. A repeated name keeps its first position
// and its last value.
func (b Body) evaluate() (names []string, rec Record) {
	rec = make(Record, len(b))
	for _, f := range b {
		var v any
		if f.Value != nil {
			v = f.Value.eval()
		}
		if _, seen := rec[f.Name]; !seen {
			names = append(names, f.Name)
		}
		rec[f.Name] = v
	}
	return names, rec
}
