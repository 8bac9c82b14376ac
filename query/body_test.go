package query

import (
	"reflect"
	"testing"
)

func TestBodyEvaluate(t *testing.T) {
	calls := 0
	body := Body{}.
		Set("a", 1).
		SetLazy("b", func() any { calls++; return "computed" }).
		Set("c", nil)

	names, rec := body.evaluate()

	if !reflect.DeepEqual(names, []string{"a", "b", "c"}) {
		t.Errorf("unexpected order %v", names)
	}
	if rec["b"] != "computed" {
		t.Errorf("expected lazy value to be evaluated, got %v", rec["b"])
	}
	if calls != 1 {
		t.Errorf("expected lazy value evaluated once, got %d", calls)
	}
	if v, ok := rec["c"]; !ok || v != nil {
		t.Errorf("expected explicit nil field, got %v (present=%v)", v, ok)
	}
}

func TestBodyEvaluate_NilValues(t *testing.T) {
	body := Body{{Name: "x"}, {Name: "y", Value: Lazy(nil)}}

	_, rec := body.evaluate()
	if rec["x"] != nil || rec["y"] != nil {
		t.Errorf("expected nil values, got %v", rec)
	}
}

func TestBodyOf(t *testing.T) {
	body := BodyOf(Record{"zeta": 1, "alpha": 2})

	if len(body) != 2 || body[0].Name != "alpha" || body[1].Name != "zeta" {
		t.Errorf("expected sorted fields, got %v", body)
	}
}
