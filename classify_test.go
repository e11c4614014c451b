package quill

import (
	"reflect"
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	s := New()

	tests := []struct {
		value    any
		expected valueKind
	}{
		{5, kindScalar},
		{"s", kindScalar},
		{true, kindScalar},
		{3.14, kindScalar},
		{time.Now(), kindScalar},
		{time.Second, kindScalar},
		{[]byte("b"), kindScalar},
		{make(chan int), kindScalar},
		{[]int{1}, kindSequence},
		{[2]string{}, kindSequence},
		{struct{ X int }{}, kindRecord},
		{map[string]int{}, kindRecord},
	}

	for _, tt := range tests {
		result := s.classify(reflect.ValueOf(tt.value))
		if result != tt.expected {
			t.Errorf("classify(%T) = %d, want %d", tt.value, result, tt.expected)
		}
	}
}

func TestClassify_RegisteredLeafType(t *testing.T) {
	type level struct{ n int }
	rt := reflect.TypeOf(level{})

	plain := New()
	if got := plain.classify(reflect.ValueOf(level{})); got != kindRecord {
		t.Errorf("classify() = %d, want kindRecord", got)
	}

	leafy := New(WithLeafType(rt))
	if got := leafy.classify(reflect.ValueOf(level{})); got != kindScalar {
		t.Errorf("classify() = %d, want kindScalar", got)
	}
}

func TestScalarElement(t *testing.T) {
	tests := []struct {
		value    any
		expected bool
	}{
		{[]int{}, true},
		{[]string{}, true},
		{[]time.Time{}, true},
		{[][]int{}, true},
		{[]*int{}, true},
		{[]struct{ X int }{}, false},
		{[]any{}, false},
		{[]map[string]int{}, false},
	}

	for _, tt := range tests {
		result := scalarElement(reflect.TypeOf(tt.value).Elem())
		if result != tt.expected {
			t.Errorf("scalarElement(%T) = %v, want %v", tt.value, result, tt.expected)
		}
	}
}

type elemLoop []elemLoop

type ptrLoop *ptrLoop

func TestScalarElement_SelfReferentialType(t *testing.T) {
	// A type whose element chain leads back to itself never bottoms
	// out in a scalar.
	if scalarElement(reflect.TypeOf(elemLoop{})) {
		t.Error("scalarElement(elemLoop) = true, want false")
	}
	if scalarElement(reflect.TypeOf(ptrLoop(nil))) {
		t.Error("scalarElement(ptrLoop) = true, want false")
	}
}
