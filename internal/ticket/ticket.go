package ticket

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultPrefix matches the printed ticket stock for the event.
const DefaultPrefix = "RWT"

// Generator produces ticket identifiers. Implementations make no
// uniqueness guarantee; the registry's unique index is the enforcement
// point and callers retry on collision.
type Generator interface {
	Generate(prefix string) string
}

// UUIDGenerator renders identifiers as PREFIX-XXXXXXXX, where the suffix
// is the first 8 hex characters of a random UUID, uppercased.
type UUIDGenerator struct{}

func (UUIDGenerator) Generate(prefix string) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return prefix + "-" + strings.ToUpper(uuid.NewString()[:8])
}
