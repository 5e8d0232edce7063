//go:build noiterm2

package termrast

import "fmt"

func newITerm2Backend() (Backend, error) {
	return nil, fmt.Errorf("%w: iterm2 support was not compiled in", ErrUnsupportedBackend)
}
