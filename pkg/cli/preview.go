package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"
)

// Terminal preview helper for the kitty and iTerm2 inline-image
// protocols, with chafa as a last-resort approximation for everything
// else. Sending binary escape sequences to stdout is expected in this
// preview mode.
//
// Debug tracing is controlled by RESYNTH_PREVIEW_DEBUG=1.

func previewDebugOn() bool {
	return envTruthy("RESYNTH_PREVIEW_DEBUG")
}

func debugf(format string, args ...interface{}) {
	if previewDebugOn() {
		fmt.Fprintf(os.Stderr, "resynth-preview: "+format+"\n", args...)
	}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	// ghostty implements the kitty graphics protocol
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

// isInlineImageCapable detects terminals implementing the iTerm2-style
// OSC 1337 inline file sequence (WezTerm, Warp, Tabby, VSCode and
// friends implement compatible behavior).
func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "Tabby":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "wezterm") || strings.Contains(term, "warp")
}

// PreviewImage renders img inline in the terminal when a supported
// protocol or fallback renderer is available.
func PreviewImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	switch {
	case isKitty():
		debugf("using kitty graphics protocol")
		return previewKitty(buf.Bytes())
	case isInlineImageCapable():
		debugf("using OSC 1337 inline image")
		return previewOSC1337(buf.Bytes())
	}
	if path, err := exec.LookPath("chafa"); err == nil {
		debugf("falling back to chafa at %s", path)
		return previewChafa(path, buf.Bytes())
	}
	return fmt.Errorf("no supported terminal preview method")
}

// previewKitty sends PNG bytes via the kitty graphics protocol:
// chunked base64 inside ESC _G ... ESC \, m=1 on every chunk but the
// last.
func previewKitty(data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunk = 4096
	first := true
	for len(enc) > 0 {
		n := min(chunk, len(enc))
		part := enc[:n]
		enc = enc[n:]
		more := 1
		if len(enc) == 0 {
			more = 0
		}
		var ctrl string
		if first {
			ctrl = fmt.Sprintf("a=T,f=100,m=%d", more)
			first = false
		} else {
			ctrl = fmt.Sprintf("m=%d", more)
		}
		if _, err := fmt.Fprintf(os.Stdout, "\x1b_G%s;%s\x1b\\", ctrl, part); err != nil {
			return err
		}
	}
	fmt.Println()
	return nil
}

// previewOSC1337 sends PNG bytes via the iTerm2 inline file sequence.
func previewOSC1337(data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	if _, err := fmt.Fprintf(os.Stdout, "\x1b]1337;File=inline=1;size=%d:%s\a", len(data), enc); err != nil {
		return err
	}
	fmt.Println()
	return nil
}

// previewChafa pipes the PNG through the external chafa renderer.
func previewChafa(path string, data []byte) error {
	cmd := exec.Command(path)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
