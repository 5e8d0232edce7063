package termrast

import (
	"fmt"
	"strings"
)

// BackendKind identifies a rendering backend.
type BackendKind int

const (
	BackendAuto BackendKind = iota
	BackendUnicode
	BackendKitty
	BackendITerm2
	BackendSixel
)

func (k BackendKind) String() string {
	switch k {
	case BackendAuto:
		return "auto"
	case BackendUnicode:
		return "unicode"
	case BackendKitty:
		return "kitty"
	case BackendITerm2:
		return "iterm2"
	case BackendSixel:
		return "sixel"
	default:
		return fmt.Sprintf("BackendKind(%d)", int(k))
	}
}

// BackendKinds lists the accepted backend names.
func BackendKinds() []string {
	return []string{"auto", "unicode", "kitty", "iterm2", "sixel"}
}

// ParseBackendKind parses a backend name.
func ParseBackendKind(value string) (BackendKind, error) {
	switch strings.ToLower(value) {
	case "auto":
		return BackendAuto, nil
	case "unicode", "block", "blocks":
		return BackendUnicode, nil
	case "kitty":
		return BackendKitty, nil
	case "iterm2", "iterm":
		return BackendITerm2, nil
	case "sixel":
		return BackendSixel, nil
	}
	return 0, fmt.Errorf("%w: %q (valid choices: %s)",
		ErrUnsupportedBackend, value, strings.Join(BackendKinds(), ", "))
}

// Backend renders decoded frames into terminal-ready lines. Implementations
// are stateless per call and safe for concurrent use across frames.
type Backend interface {
	Name() string
	Kind() BackendKind
	Render(frame *Frame, options RenderOptions) (*RenderedFrame, error)
}

// NewBackend builds the backend for the requested kind. Auto resolves to
// the unicode compositor. A kind whose support was excluded at build time
// (nokitty, noiterm2, nosixel build tags) yields an error; the factory
// never retries or falls back itself.
func NewBackend(kind BackendKind) (Backend, error) {
	switch kind {
	case BackendAuto, BackendUnicode:
		return &UnicodeBackend{}, nil
	case BackendKitty:
		return newKittyBackend()
	case BackendITerm2:
		return newITerm2Backend()
	case BackendSixel:
		return newSixelBackend()
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedBackend, kind)
	}
}

// AutoBackend resolves a guessed kind, falling back to the unicode
// compositor when the guess is unavailable.
func AutoBackend(guess BackendKind) Backend {
	backend, err := NewBackend(guess)
	if err != nil {
		return &UnicodeBackend{}
	}
	return backend
}

// Render renders a frame with the unicode compositor.
func Render(frame *Frame, options RenderOptions) (*RenderedFrame, error) {
	return (&UnicodeBackend{}).Render(frame, options)
}
