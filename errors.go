package sie

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStructural indicates the parsed data could not be finalized into a
// ledger. The tolerant decoders should make this unreachable; it exists so
// callers get a typed error rather than a panic if that assumption breaks.
var ErrStructural = errors.New("ledger cannot be finalized")

// DecodeError is returned when no configured encoding decodes the input.
// It is the only per-file fatal error; everything line-level becomes a
// diagnostic instead.
type DecodeError struct {
	Tried []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("no configured encoding could decode the input (tried %s)", strings.Join(e.Tried, ", "))
}
