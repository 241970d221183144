package merge

import (
	"errors"
	"fmt"
	"time"
)

// StampLayout is the operator-facing timestamp format, DD.MM.YYYY hh:mm:ss.
const StampLayout = "02.01.2006 15:04:05"

var ErrBadStamp = errors.New("timestamp must match DD.MM.YYYY hh:mm:ss")

// NormalizeStamp validates an operator-supplied timestamp. An empty
// string means the current local time.
func NormalizeStamp(s string) (string, error) {
	if s == "" {
		return time.Now().Format(StampLayout), nil
	}
	if _, err := time.Parse(StampLayout, s); err != nil {
		return "", fmt.Errorf("%w: got %q", ErrBadStamp, s)
	}
	return s, nil
}
