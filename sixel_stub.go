//go:build nosixel

package termrast

import "fmt"

func newSixelBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: sixel support was not compiled in", ErrUnsupportedBackend)
}
