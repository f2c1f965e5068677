package share

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/chainsim/internal/config"
	"github.com/san-kum/chainsim/internal/motion"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	cfg := config.GetPreset("gyro")
	text, err := Snapshot(cfg)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	got, err := config.Parse([]byte(text))
	if err != nil {
		t.Fatalf("snapshot should parse back: %v", err)
	}
	if got.Chain != cfg.Chain || got.Motion != cfg.Motion {
		t.Errorf("snapshot lost data:\n%s", text)
	}
}

func TestCopyParams(t *testing.T) {
	cfg := config.DefaultConfig()
	text, _ := Snapshot(cfg)

	var buf bytes.Buffer
	ack := CopyParams(&buf, cfg)
	if !ack.OK {
		t.Fatalf("copy failed: %s", ack.Message)
	}
	out := buf.String()
	if !strings.Contains(out, "]52;c;") {
		t.Errorf("expected an OSC 52 sequence, got %q", out)
	}
	if !strings.Contains(out, base64.StdEncoding.EncodeToString([]byte(text))) {
		t.Error("sequence should carry the snapshot")
	}
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("clipboard unavailable") }

func TestCopyParams_Failure(t *testing.T) {
	ack := CopyParams(brokenWriter{}, config.DefaultConfig())
	if ack.OK {
		t.Error("expected a failed ack")
	}
	if !strings.Contains(ack.Message, "clipboard unavailable") {
		t.Errorf("message should explain the failure, got %q", ack.Message)
	}
}

func red(c color.RGBA) bool { return c.R == 0xff && c.G == 0 && c.B == 0 }

func TestBake(t *testing.T) {
	size := motion.Size{Width: 100, Height: 100}
	square := motion.Transform{Width: 50, Height: 50, Color: "#ff0000"}

	img := Bake([]motion.Transform{square}, size)
	if !red(img.RGBAAt(50, 50)) {
		t.Error("center should be filled")
	}
	if img.RGBAAt(0, 0) != Background {
		t.Error("corner should stay background")
	}
	if red(img.RGBAAt(80, 50)) {
		t.Error("unrotated square should not reach x=80")
	}

	square.Rotation = 45
	img = Bake([]motion.Transform{square}, size)
	if !red(img.RGBAAt(80, 50)) {
		t.Error("rotated square should reach x=80 along its diagonal")
	}

	rounded := motion.Transform{Width: 100, Height: 100, Color: "#ff0000", Radius: 20}
	img = Bake([]motion.Transform{rounded}, size)
	if red(img.RGBAAt(0, 0)) {
		t.Error("rounded corner should be clipped")
	}
	if !red(img.RGBAAt(50, 0)) {
		t.Error("edge midpoint should be filled")
	}
}

func TestBake_EmptySize(t *testing.T) {
	img := Bake(nil, motion.Size{})
	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("expected 1x1 image, got %v", b)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.png")
	tr := []motion.Transform{{Width: 10, Height: 10, Color: "#00ff00"}}

	if ack := WritePNG(path, tr, motion.Size{Width: 20, Height: 20}); !ack.OK {
		t.Fatalf("write failed: %s", ack.Message)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 20 || b.Dy() != 20 {
		t.Errorf("unexpected bounds %v", b)
	}

	if ack := WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), tr, motion.Size{Width: 20, Height: 20}); ack.OK {
		t.Error("expected failure for a missing directory")
	}
}

type closeFailer struct {
	bytes.Buffer
	closed bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return errors.New("disk full on flush")
}

func TestEncodePNG_CloseError(t *testing.T) {
	w := &closeFailer{}
	err := encodePNG(w, Bake(nil, motion.Size{Width: 4, Height: 4}))
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("close error should be reported, got %v", err)
	}
	if !w.closed {
		t.Error("writer should be closed")
	}
	if w.Len() == 0 {
		t.Error("image should have been encoded before close")
	}
}

func TestQR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.png")
	if ack := QR(path, config.DefaultConfig(), 0); !ack.OK {
		t.Fatalf("qr failed: %s", ack.Message)
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		t.Errorf("qr file missing or empty: %v", err)
	}
}

func TestSVG(t *testing.T) {
	tr := []motion.Transform{{Width: 10, Height: 10, Color: "#123456", Rotation: 8}}
	svg := TransformsToSVG(tr, motion.Size{Width: 40, Height: 40})
	if !strings.Contains(svg, `fill="#123456"`) || !strings.Contains(svg, "rotate(8.00)") {
		t.Errorf("unexpected svg:\n%s", svg)
	}

	if PathToSVG([]motion.Vec2{{X: 1}}, 10, 10, "#fff") != "" {
		t.Error("a single point has no path")
	}
	path := PathToSVG([]motion.Vec2{{}, {X: 1, Y: 1}}, 100, 100, "#fff")
	if !strings.HasPrefix(path, "<?xml") || !strings.Contains(path, " L") {
		t.Errorf("unexpected path svg:\n%s", path)
	}

	if ack := WriteSVG(filepath.Join(t.TempDir(), "x.svg"), ""); ack.OK {
		t.Error("empty svg should not be written")
	}
}
