package solver

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MIBbrandon/Athena/pkg/domain"
)

// DefaultMaxInputSize bounds each puzzle text. Override with domain.EnvMaxInputSize.
var DefaultMaxInputSize = 4096

// SanitizeInput rejects oversized or invalid UTF-8 text and strips control
// characters other than newline, tab and carriage return.
func SanitizeInput(input string) (string, error) {
	limit := maxInputSize()
	if len(input) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", domain.ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return "", domain.ErrInvalidUTF8
	}

	clean := true
	for _, r := range input {
		if unicode.IsControl(r) && !isSafeControl(r) {
			clean = false
			break
		}
	}
	if clean {
		return input, nil
	}

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if !unicode.IsControl(r) || isSafeControl(r) {
			b.WriteRune(r)
		}
	}
	return b.String(), nil
}

// SanitizePuzzle applies SanitizeInput to every text of p.
func SanitizePuzzle(p domain.Puzzle) (domain.Puzzle, error) {
	fields := []struct {
		name string
		val  *string
	}{
		{"swaps", &p.SwapGraph},
		{"interactions", &p.InteractionGraph},
		{"soddi", &p.Soddi},
	}
	for _, f := range fields {
		clean, err := SanitizeInput(*f.val)
		if err != nil {
			return p, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.val = clean
	}
	return p, nil
}

func isSafeControl(r rune) bool {
	return r == '\n' || r == '\t' || r == '\r'
}

func maxInputSize() int {
	if val := os.Getenv(domain.EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
