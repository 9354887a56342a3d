package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomz197/starfall/internal/physics"
)

func TestCanvasFillRect(t *testing.T) {
	// 10x5 terminal over a 100x100 logical area: one column per 10 units,
	// one sub-pixel row per 10 units.
	c := NewScaledCanvas(10, 5, 100, 100)

	c.FillRect(physics.Rect{X: 0, Y: 0, W: 20, H: 20}, ColorRed)

	want := cell{ch: BlockFull, fg: ColorRed}
	for _, pos := range [][2]int{{0, 0}, {1, 0}} {
		if got := c.cellAt(pos[0], pos[1]); got != want {
			t.Errorf("cell %v = %+v, want %+v", pos, got, want)
		}
	}
	if got := c.cellAt(2, 0); got.ch != ' ' {
		t.Errorf("cell outside rect = %+v", got)
	}
}

func TestCanvasFillRect_TinyRectCoversOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.FillRect(physics.Rect{X: 41, Y: 1, W: 1, H: 1}, ColorYellow)

	if got := c.cellAt(4, 0); got.ch != BlockUpperHalf || got.fg != ColorYellow {
		t.Errorf("cell = %+v, want upper half yellow", got)
	}
}

func TestCanvasFillRect_Clipped(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	// Must not panic when partly outside.
	c.FillRect(physics.Rect{X: -50, Y: 90, W: 200, H: 50}, ColorBlue)

	if got := c.cellAt(0, 4); got.ch != BlockLowerHalf || got.fg != ColorBlue {
		t.Errorf("cell = %+v, want lower half blue", got)
	}
}

func TestCanvasHalfBlocksTwoColors(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.Set(5, 5, ColorRed)
	c.Set(5, 15, ColorBlue)

	want := cell{ch: BlockUpperHalf, fg: ColorRed, bg: ColorBlue}
	if got := c.cellAt(0, 0); got != want {
		t.Errorf("cell = %+v, want %+v", got, want)
	}
}

func TestCanvasRender_OnlyChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 40, 40)
	c.FillRect(physics.Rect{X: 0, Y: 0, W: 10, H: 20}, ColorGreen)

	var first bytes.Buffer
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Fatalf("first render = %q, want a full block", first.String())
	}

	var second bytes.Buffer
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("unchanged frame wrote %q", second.String())
	}

	c.MarkTextDirty(1, 1, 2)
	var third bytes.Buffer
	c.Render(&third)
	if third.Len() == 0 {
		t.Error("dirty cells were not repainted")
	}

	c.Clear()
	var fourth bytes.Buffer
	c.Render(&fourth)
	if strings.ContainsRune(fourth.String(), BlockFull) || fourth.Len() == 0 {
		t.Errorf("clearing should repaint with blanks, got %q", fourth.String())
	}
}

func TestCanvasRender_Offset(t *testing.T) {
	c := NewScaledCanvas(4, 2, 40, 40)
	c.SetOffset(3, 2)
	c.Set(0, 0, ColorWhite)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.HasPrefix(buf.String(), "\033[3;4H") {
		t.Errorf("render = %q, want first cell at row 3 col 4", buf.String())
	}
}

func TestTextWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"score", 5},
		{"♥♥♥", 3},
		{Colored(ColorRed, "hp"), 2},
	}

	for _, tt := range tests {
		if got := TextWidth(tt.in); got != tt.want {
			t.Errorf("TextWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	col := cw.WriteCentered(10, 1, "abcd")
	if col != 8 {
		t.Errorf("WriteCentered col = %d, want 8", col)
	}
	if out.Len() != 0 {
		t.Fatal("output written before Flush")
	}
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := out.String(); got != "\033[2;10Habcd" {
		t.Errorf("output = %q", got)
	}
}
