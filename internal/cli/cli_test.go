package cli

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-cutout/internal/config"
	"github.com/ironsheep/image-cutout/internal/cutout"
	"github.com/ironsheep/image-cutout/internal/heuristic"
	"github.com/ironsheep/image-cutout/internal/imaging"
	"github.com/rs/zerolog"
)

// newTestCLI returns a CLI with captured output and a silent logger.
func newTestCLI(engine cutout.Engine) (*CLI, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &CLI{
		Engine:   engine,
		Settings: config.Default(),
		Logger:   zerolog.Nop(),
		Stdout:   &stdout,
		Stderr:   &stderr,
		Version:  "test",
	}, &stdout, &stderr
}

func mustHeuristic(t *testing.T, opts ...heuristic.Option) *heuristic.Engine {
	t.Helper()
	e, err := heuristic.New(opts...)
	if err != nil {
		t.Fatalf("heuristic.New failed: %v", err)
	}
	return e
}

// createTestImage writes a 2x2 PNG whose top row is white and bottom row black.
func createTestImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	img.Set(1, 0, color.White)
	img.Set(0, 1, color.Black)
	img.Set(1, 1, color.Black)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

// createSubjectImage writes a 10x10 PNG: white with a black 4x4 square.
func createSubjectImage(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.RGBA{255, 255, 255, 255}
			if x >= 3 && x < 7 && y >= 3 && y < 7 {
				c = color.RGBA{0, 0, 0, 255}
			}
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
}

// halfEngine marks the first half of the pixels transparent.
func halfEngine() cutout.Engine {
	return cutout.EngineFunc(func(img *cutout.ImageBuffer, cfg cutout.Config) (*cutout.MatteResult, error) {
		data := make([]byte, img.Len())
		for i := img.Len() / 2; i < img.Len(); i++ {
			data[i] = 255
		}
		mask, err := cutout.NewAlphaMask(data)
		if err != nil {
			return nil, err
		}
		return &cutout.MatteResult{Alpha: mask}, nil
	})
}

func TestRun_Help(t *testing.T) {
	c, stdout, _ := newTestCLI(mustHeuristic(t))
	if code := c.Run([]string{"--help"}); code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
	if !strings.Contains(stdout.String(), "Usage: cutout") {
		t.Errorf("usage not printed: %q", stdout.String())
	}
}

func TestRun_Version(t *testing.T) {
	c, stdout, _ := newTestCLI(mustHeuristic(t))
	if code := c.Run([]string{"--version"}); code != ExitOK {
		t.Errorf("exit code: got %d, want %d", code, ExitOK)
	}
	if strings.TrimSpace(stdout.String()) != "cutout test" {
		t.Errorf("unexpected version output: %q", stdout.String())
	}
}

func TestRun_ParseError(t *testing.T) {
	c, _, stderr := newTestCLI(mustHeuristic(t))
	if code := c.Run([]string{"--mode", "auto"}); code != ExitParse {
		t.Errorf("exit code: got %d, want %d", code, ExitParse)
	}
	if !strings.Contains(stderr.String(), "Input and output paths are required") {
		t.Errorf("missing parse message: %q", stderr.String())
	}
}

func TestRun_MissingInput(t *testing.T) {
	c, _, stderr := newTestCLI(mustHeuristic(t))
	out := filepath.Join(t.TempDir(), "out.png")
	if code := c.Run([]string{"no-such-file.png", out}); code != ExitUsage {
		t.Errorf("exit code: got %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Input file does not exist") {
		t.Errorf("missing message: %q", stderr.String())
	}
}

func TestRun_UndecodableInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "broken.png")
	if err := os.WriteFile(in, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write input: %v", err)
	}

	c, _, _ := newTestCLI(mustHeuristic(t))
	if code := c.Run([]string{in, filepath.Join(dir, "out.png")}); code != ExitUsage {
		t.Errorf("exit code: got %d, want %d", code, ExitUsage)
	}
}

func TestRun_ProcessesImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	out := filepath.Join(dir, "output.png")
	createTestImage(t, in)

	c, _, stderr := newTestCLI(halfEngine())
	if code := c.Run([]string{in, out}); code != ExitOK {
		t.Fatalf("exit code: got %d, want %d (stderr %q)", code, ExitOK, stderr.String())
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	buf, err := imaging.ToBuffer(img)
	if err != nil {
		t.Fatalf("ToBuffer failed: %v", err)
	}
	want := []uint32{0x00FFFFFF, 0x00FFFFFF, 0xFF000000, 0xFF000000}
	for i, px := range want {
		if buf.Pixel(i) != px {
			t.Errorf("pixel %d: got %#08x, want %#08x", i, buf.Pixel(i), px)
		}
	}
}

func TestRun_HeuristicEndToEnd(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "subject.png")
	out := filepath.Join(dir, "results", "subject.png")
	createSubjectImage(t, in)

	c, _, stderr := newTestCLI(mustHeuristic(t))
	if code := c.Run([]string{in, out, "--hard", "128"}); code != ExitOK {
		t.Fatalf("exit code: got %d, want %d (stderr %q)", code, ExitOK, stderr.String())
	}

	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	buf, _ := imaging.ToBuffer(img)
	opaque := 0
	for i := 0; i < buf.Len(); i++ {
		switch buf.Pixel(i) >> 24 {
		case 255:
			opaque++
		case 0:
		default:
			t.Fatalf("pixel %d has intermediate alpha in hard mode", i)
		}
	}
	if opaque != 16 {
		t.Errorf("opaque pixels: got %d, want 16", opaque)
	}
}

func TestRun_SizeLimit(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	createTestImage(t, in)

	c, _, stderr := newTestCLI(mustHeuristic(t, heuristic.WithMaxPixels(4)))
	if code := c.Run([]string{in, filepath.Join(dir, "out.png")}); code != ExitUsage {
		t.Errorf("exit code: got %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "too large") {
		t.Errorf("missing size message: %q", stderr.String())
	}
}

func TestRun_EngineFailure(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	createTestImage(t, in)

	failing := cutout.EngineFunc(func(*cutout.ImageBuffer, cutout.Config) (*cutout.MatteResult, error) {
		return nil, errors.New("boom")
	})
	c, _, stderr := newTestCLI(failing)
	if code := c.Run([]string{in, filepath.Join(dir, "out.png")}); code != ExitUnexpected {
		t.Errorf("exit code: got %d, want %d", code, ExitUnexpected)
	}
	if !strings.Contains(stderr.String(), "Unexpected error") {
		t.Errorf("missing message: %q", stderr.String())
	}
}

func TestRun_MaskMismatch(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	createTestImage(t, in)

	short := cutout.EngineFunc(func(*cutout.ImageBuffer, cutout.Config) (*cutout.MatteResult, error) {
		mask, _ := cutout.NewAlphaMask([]byte{1})
		return &cutout.MatteResult{Alpha: mask}, nil
	})
	c, _, _ := newTestCLI(short)
	if code := c.Run([]string{in, filepath.Join(dir, "out.png")}); code != ExitUnexpected {
		t.Errorf("exit code: got %d, want %d", code, ExitUnexpected)
	}
}

func TestRun_Panic(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input.png")
	createTestImage(t, in)

	panicking := cutout.EngineFunc(func(*cutout.ImageBuffer, cutout.Config) (*cutout.MatteResult, error) {
		panic("engine bug")
	})
	c, _, _ := newTestCLI(panicking)
	if code := c.Run([]string{in, filepath.Join(dir, "out.png")}); code != ExitUnexpected {
		t.Errorf("exit code: got %d, want %d", code, ExitUnexpected)
	}
}
