/*
Package termrast renders decoded raster frames as output a terminal can
display: colored Unicode block glyphs, or inline graphics via the Kitty,
iTerm2, or Sixel protocols.

The package is a rendering core, not a viewer. It consumes already-decoded
RGBA frames plus a RenderOptions value describing the terminal geometry and
sizing policy, and produces a RenderedFrame: complete escape-framed lines
ready to be written verbatim. Image decoding, terminal capability
detection, and playback orchestration are the caller's business.

Basic Usage:

	frame := termrast.SingleFrame(img)

	opts := termrast.RenderOptions{
	    Sizing:   termrast.DefaultSizing(),
	    Terminal: termrast.CurrentTerminalSize(),
	}

	rendered, err := termrast.Render(frame, opts)
	if err != nil {
	    log.Fatal(err)
	}
	for _, line := range rendered.Lines {
	    fmt.Println(line)
	}

Graphics protocols:

	backend := termrast.AutoBackend(termrast.BackendKitty)
	rendered, err := backend.Render(frame, opts)

When running under tmux or screen, graphics-protocol output is
automatically wrapped in DCS passthrough envelopes. The unicode compositor
needs no wrapping; its SGR escapes are multiplexer-transparent.

Every render call is a pure function of (frame, options): there is no
shared state, so independent frames may be rendered concurrently.
*/
package termrast
