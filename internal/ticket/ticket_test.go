package ticket

import (
	"regexp"
	"strings"
	"testing"
)

var idRE = regexp.MustCompile(`^RWT-[0-9A-F]{8}$`)

// TestGenerate_Format verifies that generated identifiers match the
// expected PREFIX-XXXXXXXX format (uppercase hex, exactly 8 characters).
func TestGenerate_Format(t *testing.T) {
	id := UUIDGenerator{}.Generate("RWT")
	if id == "" {
		t.Fatal("Generate returned empty string")
	}
	if !idRE.MatchString(id) {
		t.Errorf("id %q does not match RWT-[0-9A-F]{8}", id)
	}
}

// TestGenerate_Unique generates 2000 identifiers and checks for
// collisions. With 32 bits of entropy the collision probability over 2000
// draws is ~0.05%, so this would only flake in astronomically unlikely
// circumstances.
func TestGenerate_Unique(t *testing.T) {
	const n = 2000
	gen := UUIDGenerator{}
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := gen.Generate("RWT")
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q generated on iteration %d", id, i)
		}
		seen[id] = struct{}{}
	}
}

func TestGenerate_Prefix(t *testing.T) {
	if id := (UUIDGenerator{}).Generate("VIP"); !strings.HasPrefix(id, "VIP-") {
		t.Errorf("expected VIP- prefix, got %q", id)
	}
	if id := (UUIDGenerator{}).Generate(""); !strings.HasPrefix(id, DefaultPrefix+"-") {
		t.Errorf("expected default prefix, got %q", id)
	}
}
