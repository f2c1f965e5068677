// Package share exports the current chain: parameter snapshots for the
// clipboard, still images and QR codes. Every operation is best effort and
// reports through an Ack instead of an error.
package share

import (
	"fmt"
	"io"
	"os"

	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/san-kum/chainsim/internal/config"
	"github.com/skip2/go-qrcode"
	"gopkg.in/yaml.v3"
)

// Ack is the user-visible outcome of a share action.
type Ack struct {
	OK      bool
	Message string
}

func ok(format string, args ...any) Ack   { return Ack{OK: true, Message: fmt.Sprintf(format, args...)} }
func fail(format string, args ...any) Ack { return Ack{Message: fmt.Sprintf(format, args...)} }

// Snapshot renders cfg as YAML that config.Parse accepts.
func Snapshot(cfg *config.Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// CopyParams puts the parameter snapshot on the terminal clipboard by writing
// an OSC 52 sequence to w.
func CopyParams(w io.Writer, cfg *config.Config) Ack {
	text, err := Snapshot(cfg)
	if err != nil {
		return fail("copy failed: %v", err)
	}
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	}
	if _, err := seq.WriteTo(w); err != nil {
		return fail("copy failed: %v", err)
	}
	return ok("parameters copied (%d bytes)", len(text))
}

// QR writes a PNG QR code of the parameter snapshot to path.
func QR(path string, cfg *config.Config, size int) Ack {
	text, err := Snapshot(cfg)
	if err != nil {
		return fail("qr failed: %v", err)
	}
	if size <= 0 {
		size = 256
	}
	if err := qrcode.WriteFile(text, qrcode.Medium, size, path); err != nil {
		return fail("qr failed: %v", err)
	}
	return ok("qr code written to %s", path)
}
