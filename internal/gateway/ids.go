package gateway

import (
	"strings"

	"github.com/oklog/ulid/v2"
)

// ULIDs carry a millisecond timestamp followed by random bits
func newID(prefix string) string {
	return prefix + strings.ToLower(ulid.Make().String())
}
