//go:build nokitty

package termrast

import "fmt"

func newKittyBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: kitty support was not compiled in", ErrUnsupportedBackend)
}
