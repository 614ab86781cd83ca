package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "amount", Message: "amount must be positive"},
	}
	got := errs.Error()
	want := "name: name is required; amount: amount must be positive"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name is required"},
		{Field: "tenure_months", Message: "tenure_months must be at least 1"},
	}
	got := errs.ToMap()
	want := map[string]string{
		"name":          "name is required",
		"tenure_months": "tenure_months must be at least 1",
	}
	if len(got) != len(want) {
		t.Errorf("ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestValidationErrors_ToMap_LastMessageWins(t *testing.T) {
	errs := ValidationErrors{
		{Field: "amount", Message: "amount is required"},
		{Field: "amount", Message: "amount must be positive"},
	}
	got := errs.ToMap()
	if got["amount"] != "amount must be positive" {
		t.Errorf("ToMap()[amount] = %q, want last message", got["amount"])
	}
}
