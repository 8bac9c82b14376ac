package key_test

import (
	"errors"
	"testing"

	"github.com/jacentio/dynacrud/key"
)

var schema = key.DefaultSchema()

func TestResolve_Shapes(t *testing.T) {
	tests := []struct {
		name     string
		spec     key.Spec
		expected key.Key
	}{
		{"two parts", key.Parts{"foo", "bar"}, key.Key{Hash: "foo.bar", Range: "foo.bar"}},
		{"delimited string", key.String("foo.bar"), key.Key{Hash: "foo.bar", Range: "foo.bar"}},
		{"pair", key.Pair([]string{"foo", "bar"}, []string{"foof", "doof"}), key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"resolved", key.Key{Hash: "foo.bar", Range: "foof.doof"}, key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"range parts", key.Parts{"foo", "bar", "foof", "doof"}, key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"three parts", key.Parts{"foo", "bar", "baz"}, key.Key{Hash: "foo.bar", Range: "baz"}},
		{"delimited with range", key.String("foo.bar.foof.doof"), key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"single part", key.Parts{"foo"}, key.Key{Hash: "foo", Range: ""}},
		{"pair without range", key.Pair([]string{"user", "42"}, nil), key.Key{Hash: "user.42", Range: ""}},
		{"empty parts", key.Parts{}, key.Key{}},
		{"nil", nil, key.Key{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := key.Resolve(schema, tt.spec)
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestResolve_SameIdentity(t *testing.T) {
	specs := []key.Spec{
		key.Parts{"a", "b"},
		key.String("a.b"),
		key.Pair([]string{"a", "b"}, []string{"a", "b"}),
		key.Key{Hash: "a.b", Range: "a.b"},
	}
	want := key.Key{Hash: "a.b", Range: "a.b"}
	for _, spec := range specs {
		if got := key.Resolve(schema, spec); got != want {
			t.Errorf("%#v: expected %v, got %v", spec, want, got)
		}
	}
}

func TestResolve_CustomSeparator(t *testing.T) {
	s := schema
	s.Separator = "#"

	got := key.Resolve(s, key.Pair([]string{"foo", "bar"}, []string{"foof", "doof"}))
	if got.Hash != "foo#bar" || got.Range != "foof#doof" {
		t.Errorf("expected foo#bar/foof#doof, got %v", got)
	}

	got = key.Resolve(s, key.String("foo#bar#baz"))
	if got.Hash != "foo#bar" || got.Range != "baz" {
		t.Errorf("expected foo#bar/baz, got %v", got)
	}
}

func TestResolve_EmptySchemaUsesDefaults(t *testing.T) {
	got := key.Resolve(key.Schema{}, key.Parts{"a", "b"})
	if got.Hash != "a.b" {
		t.Errorf("expected default separator, got %q", got.Hash)
	}
}

func TestKey_Attributes(t *testing.T) {
	k := key.Key{Hash: "a.b", Range: "c.d"}

	attrs := k.Attributes(schema)
	if attrs["hash"] != "a.b" || attrs["range"] != "c.d" {
		t.Errorf("unexpected attributes %v", attrs)
	}

	custom := key.Schema{HashKeyName: "customhash", RangeKeyName: "customrange"}
	rec := k.Record(custom)
	if rec["customhash"] != "a.b" || rec["customrange"] != "c.d" {
		t.Errorf("unexpected record %v", rec)
	}
	if len(rec) != 2 {
		t.Errorf("expected 2 attributes, got %d", len(rec))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected key.Key
	}{
		{"string", "a.b", key.Key{Hash: "a.b", Range: "a.b"}},
		{"string slice", []string{"a", "b", "c"}, key.Key{Hash: "a.b", Range: "c"}},
		{"any slice", []any{"a", "b"}, key.Key{Hash: "a.b", Range: "a.b"}},
		{"two sequences", [2][]string{{"a", "b"}, {"c", "d"}}, key.Key{Hash: "a.b", Range: "c.d"}},
		{"sequence of sequences", [][]string{{"a", "b"}, {"c", "d"}}, key.Key{Hash: "a.b", Range: "c.d"}},
		{"literal map", map[string]string{"hash": "foo.bar", "range": "foof.doof"}, key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"literal any map", map[string]any{"hash": "foo.bar", "range": "foof.doof", "extra": 1}, key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"mapped arrays", map[string]any{"hash": []string{"foo", "bar"}, "range": []any{"foof", "doof"}}, key.Key{Hash: "foo.bar", Range: "foof.doof"}},
		{"spec passthrough", key.Parts{"a", "b"}, key.Key{Hash: "a.b", Range: "a.b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := key.Parse(schema, tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := key.Resolve(schema, spec); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestParse_CustomNames(t *testing.T) {
	s := key.Schema{HashKeyName: "pk", RangeKeyName: "sk"}
	spec, err := key.Parse(s, map[string]any{"pk": "a.b", "sk": "c"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := key.Resolve(s, spec); got != (key.Key{Hash: "a.b", Range: "c"}) {
		t.Errorf("unexpected key %v", got)
	}
}

func TestParse_Unrecognized(t *testing.T) {
	values := []any{
		42,
		[]any{"a", 1},
		[][]string{{"a"}},
		map[string]any{"hash": 3},
		map[string]any{"hash": []any{"a", false}},
	}
	for _, v := range values {
		if _, err := key.Parse(schema, v); !errors.Is(err, key.ErrUnrecognizedSpec) {
			t.Errorf("%#v: expected ErrUnrecognizedSpec, got %v", v, err)
		}
	}
}
