package quill

import (
	"reflect"
	"testing"
)

type planSubject struct {
	Zebra  int
	apple  int // unexported, excluded
	Apple  int
	Masked string `log.mask:"ssn"`
	Fixed  string `log.redact:"***"`
}

func TestBuildPlan_SortedExportedMembers(t *testing.T) {
	plan := buildPlan(reflect.TypeOf(planSubject{}))

	want := []string{"Apple", "Fixed", "Masked", "Zebra"}
	if len(plan.fields) != len(want) {
		t.Fatalf("buildPlan() produced %d fields, want %d", len(plan.fields), len(want))
	}
	for i, name := range want {
		if plan.fields[i].name != name {
			t.Errorf("fields[%d].name = %q, want %q", i, plan.fields[i].name, name)
		}
	}
}

func TestBuildPlan_TagExtraction(t *testing.T) {
	plan := buildPlan(reflect.TypeOf(planSubject{}))

	byName := make(map[string]memberField)
	for _, f := range plan.fields {
		byName[f.name] = f
	}

	if got := byName["Masked"].mask; got != MaskSSN {
		t.Errorf("Masked.mask = %q, want %q", got, MaskSSN)
	}
	if f := byName["Fixed"]; !f.hasRedact || f.redact != "***" {
		t.Errorf("Fixed.redact = (%q, %v), want (%q, true)", f.redact, f.hasRedact, "***")
	}
	if got := byName["Apple"].mask; got != "" {
		t.Errorf("Apple.mask = %q, want empty", got)
	}
}

func TestPlansFor_Cached(t *testing.T) {
	Reset()
	rt := reflect.TypeOf(planSubject{})

	p1 := plansFor(rt)
	p2 := plansFor(rt)
	if p1 != p2 {
		t.Error("plansFor() did not return the cached plan")
	}

	Reset()
	if p3 := plansFor(rt); p3 == p1 {
		t.Error("Reset() did not clear the registry")
	}
}
