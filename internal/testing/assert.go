package testing

import (
	"reflect"
	"testing"
)

// Success asserts that error did not occur.
func Success(t testing.TB, err error) {
	t.Helper()

	if err != nil || !isNil(err) {
		t.Fatalf("expected success, got '%v'", err)
	}
}

// Equal asserts that values are deeply equal.
func Equal[T any](t testing.TB, a, b T) {
	t.Helper()

	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected '%v' to be equal to '%v'", a, b)
	}
}

// Sorted asserts that values are ordered by cmp, or by the inverse of cmp when descending.
func Sorted[T any](t testing.TB, values []T, cmp func(a, b T) int, descending bool) {
	t.Helper()

	for i := 1; i < len(values); i++ {
		c := cmp(values[i-1], values[i])
		if descending {
			c = -c
		}
		if c > 0 {
			t.Fatalf("expected values to be sorted at index %d: '%v' before '%v'", i, values[i-1], values[i])
		}
	}
}

func isNil(a interface{}) bool {
	if a == nil {
		return true
	}

	switch reflect.TypeOf(a).Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return reflect.ValueOf(a).IsNil()
	}

	return false
}
