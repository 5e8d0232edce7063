package termrast

import (
	"os"
	"os/exec"
	"strings"
	"sync"
)

var (
	tmuxPassthroughEnabled bool
	tmuxPassthroughOnce    sync.Once
)

var (
	forceTmux      bool
	forceTmuxMutex sync.RWMutex
)

// ForceTmux forces multiplexer passthrough wrapping regardless of the
// environment. Useful for tests and for sessions where the usual TMUX
// variables are missing.
func ForceTmux(force bool) {
	forceTmuxMutex.Lock()
	defer forceTmuxMutex.Unlock()
	forceTmux = force
}

// IsTmuxForced returns whether tmux mode is being forced.
func IsTmuxForced() bool {
	forceTmuxMutex.RLock()
	defer forceTmuxMutex.RUnlock()
	return forceTmux
}

// InMultiplexer reports whether output is going through tmux or screen.
func InMultiplexer() bool {
	if IsTmuxForced() {
		return true
	}
	if os.Getenv("TMUX") != "" {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "tmux", "screen":
		return true
	}
	return false
}

// EnableTmuxPassthrough asks tmux (>= 3.3) to allow DCS passthrough for the
// current pane. Best effort: failure just means graphics sequences will not
// survive the multiplexer.
func EnableTmuxPassthrough() bool {
	tmuxPassthroughOnce.Do(func() {
		// -p sets the option for the current pane only
		cmd := exec.Command("tmux", "set", "-p", "allow-passthrough", "on")
		cmd.Stdin = nil
		cmd.Stdout = nil
		cmd.Stderr = nil
		if err := cmd.Run(); err == nil {
			tmuxPassthroughEnabled = true
		}
	})
	return tmuxPassthroughEnabled
}

// WrapTmuxPassthrough wraps a graphics escape sequence in a tmux DCS
// passthrough envelope: `ESC Ptmux;` prefix, `ESC \` suffix, and every
// interior ESC byte doubled (tmux would otherwise terminate the
// passthrough early).
//
// Only graphics-protocol sequences need wrapping; per-cell SGR escapes are
// multiplexer-transparent.
func WrapTmuxPassthrough(sequence string) string {
	var b strings.Builder
	b.Grow(len(sequence)*2 + 10)
	b.WriteString("\x1bPtmux;")
	for i := 0; i < len(sequence); i++ {
		if sequence[i] == 0x1b {
			b.WriteByte(0x1b)
		}
		b.WriteByte(sequence[i])
	}
	b.WriteString("\x1b\\")
	return b.String()
}
