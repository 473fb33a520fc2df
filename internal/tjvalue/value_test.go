package tjvalue

import "testing"

func TestConstructors(t *testing.T) {
	v := Object(
		Member{Key: "a", Value: Int64(1)},
		Member{Key: "b", Value: Array(String("x"), Bool(true), Null)},
	)
	if v.Kind != KindObject {
		t.Fatalf("expected object kind, got %v", v.Kind)
	}
	if len(v.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(v.Members))
	}
	arr := v.Members[1].Value
	if arr.Kind != KindArray || len(arr.Elems) != 3 {
		t.Fatalf("unexpected array value: %+v", arr)
	}
	if arr.Elems[2].Kind != KindNull {
		t.Fatalf("expected null element, got %v", arr.Elems[2].Kind)
	}
}

func TestUint64Value(t *testing.T) {
	v := Uint64(18446744073709551615)
	if v.Kind != KindUint64 || v.Uint64 != 18446744073709551615 {
		t.Fatalf("unexpected uint64 value: %+v", v)
	}
}
