// ABOUTME: Background descriptor for a board: a colour or an image file path.
// ABOUTME: Validation keeps kind within the two supported values and checks value against kind.
package board

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundKind selects how a background value is interpreted.
type BackgroundKind string

const (
	BackgroundColour BackgroundKind = "colour"
	BackgroundFile   BackgroundKind = "file"
)

// DefaultBackgroundColour is used for new boards.
const DefaultBackgroundColour = "#ffffff"

// Background is the board-level background descriptor.
type Background struct {
	Kind  BackgroundKind
	Value string
}

// DefaultBackground returns the background new boards start with.
func DefaultBackground() Background {
	return Background{Kind: BackgroundColour, Value: DefaultBackgroundColour}
}

var rgbPattern = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)

// ValidateBackground checks kind and value together.
func ValidateBackground(kind BackgroundKind, value string) error {
	switch kind {
	case BackgroundColour:
		if strings.TrimSpace(value) == "" {
			return &BackgroundError{Kind: kind, Value: value, Reason: "empty colour"}
		}
		if _, err := parseColour(value); err != nil {
			return &BackgroundError{Kind: kind, Value: value, Reason: err.Error()}
		}
	case BackgroundFile:
		if strings.TrimSpace(value) == "" {
			return &BackgroundError{Kind: kind, Value: value, Reason: "empty path"}
		}
		if strings.ContainsRune(value, 0) {
			return &BackgroundError{Kind: kind, Value: value, Reason: "path contains NUL"}
		}
		if filepath.Clean(value) == "." {
			return &BackgroundError{Kind: kind, Value: value, Reason: "not a file path"}
		}
	default:
		return &BackgroundError{Kind: kind, Value: value, Reason: "unsupported kind"}
	}
	return nil
}

// Validate checks the descriptor.
func (b Background) Validate() error {
	return ValidateBackground(b.Kind, b.Value)
}

// Hex returns a colour background as #rrggbb. ok is false for file
// backgrounds and invalid colours.
func (b Background) Hex() (hex string, ok bool) {
	if b.Kind != BackgroundColour {
		return "", false
	}
	c, err := parseColour(b.Value)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// parseColour accepts #rgb, #rrggbb and rgb(r, g, b).
func parseColour(value string) (colorful.Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if m := rgbPattern.FindStringSubmatch(v); m != nil {
		var rgb [3]float64
		for i := range rgb {
			n, err := strconv.Atoi(m[i+1])
			if err != nil || n > 255 {
				return colorful.Color{}, fmt.Errorf("rgb component %q out of range", m[i+1])
			}
			rgb[i] = float64(n) / 255.0
		}
		return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
	}
	if len(v) == 4 && v[0] == '#' {
		v = "#" + strings.Repeat(v[1:2], 2) + strings.Repeat(v[2:3], 2) + strings.Repeat(v[3:4], 2)
	}
	if len(v) != 7 || v[0] != '#' {
		return colorful.Color{}, fmt.Errorf("expected #rgb, #rrggbb or rgb(r, g, b)")
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse hex colour: %w", err)
	}
	return c, nil
}
