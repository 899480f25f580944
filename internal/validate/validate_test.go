package validate_test

import (
	"strings"
	"testing"

	"threadbound/internal/validate"
)

func TestSlug(t *testing.T) {
	for _, ok := range []string{"tops", "logo-tee", "a1-b2-c3"} {
		if _, valid := validate.Slug(ok); !valid {
			t.Errorf("%q should be a valid slug", ok)
		}
	}
	for _, bad := range []string{"", "Tops", "tee_", "-lead", "trail-", "a b", "../etc", strings.Repeat("a", 97)} {
		if _, valid := validate.Slug(bad); valid {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID("prod-hoodie"); !ok {
		t.Error("prod-hoodie should be a valid id")
	}
	for _, bad := range []string{"", "a b", "id;drop", strings.Repeat("x", 65)} {
		if _, ok := validate.ID(bad); ok {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestQuantityClamp(t *testing.T) {
	cases := map[int]int{-5: 1, 0: 1, 1: 1, 50: 50, 99: 99, 100: 99, 1000: 99}
	for in, want := range cases {
		if got := validate.Quantity(in); got != want {
			t.Errorf("Quantity(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestSizeLabel(t *testing.T) {
	if got, ok := validate.SizeLabel("  XL "); !ok || got != "XL" {
		t.Errorf("expected trimmed XL, got %q %v", got, ok)
	}
	if _, ok := validate.SizeLabel(`30"`); !ok {
		t.Error(`waist label 30" should be accepted`)
	}
	if _, ok := validate.SizeLabel(""); ok {
		t.Error("empty label should be rejected")
	}
	if _, ok := validate.SizeLabel(strings.Repeat("x", 33)); ok {
		t.Error("oversized label should be rejected")
	}
}
