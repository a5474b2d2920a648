package raw

import (
	"testing"
)

func TestPrefixAndGet(t *testing.T) {
	c := New().Prefix("SETUP_")
	t.Setenv("SETUP_SOURCE_DIR", "  /opt/driver ")
	if got := c.Get("SOURCE_DIR", "/fallback"); got != "/opt/driver" {
		t.Fatalf("Get = %q, want %q", got, "/opt/driver")
	}
	if got := c.Get("MISSING", "/fallback"); got != "/fallback" {
		t.Fatalf("Get default = %q, want %q", got, "/fallback")
	}
	// nested prefix
	nested := c.Prefix("UNIT_")
	if got := nested.key("DIR"); got != "SETUP_UNIT_DIR" {
		t.Fatalf("nested key() = %q, want %q", got, "SETUP_UNIT_DIR")
	}
}

func TestGetBool(t *testing.T) {
	c := New().Prefix("B_")
	for _, v := range []string{"1", "true", "YES"} {
		t.Setenv("B_ON", v)
		if !c.GetBool("ON", false) {
			t.Fatalf("GetBool(%q) = false, want true", v)
		}
	}
	t.Setenv("B_OFF", "nope")
	if c.GetBool("OFF", true) {
		t.Fatalf("GetBool(nope) = true, want false")
	}
	if !c.GetBool("MISSING", true) {
		t.Fatalf("GetBool missing should return default")
	}
}

func TestGetInt(t *testing.T) {
	c := New().Prefix("I_")
	t.Setenv("I_N", " 42 ")
	if got := c.GetInt("N", 7); got != 42 {
		t.Fatalf("GetInt = %d, want 42", got)
	}
	t.Setenv("I_BAD", "4x2")
	if got := c.GetInt("BAD", 7); got != 7 {
		t.Fatalf("GetInt non-numeric = %d, want default 7", got)
	}
	if got := c.GetInt("MISSING", 7); got != 7 {
		t.Fatalf("GetInt missing = %d, want default 7", got)
	}
}
