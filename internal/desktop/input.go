package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
}

func anyPressed(ks ...ebiten.Key) bool {
	for _, k := range ks {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(ks ...ebiten.Key) bool {
	for _, k := range ks {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// readKeys samples the keyboard for the current tick.
func readKeys() keys {
	k := keys{
		Left:    anyPressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		Right:   anyPressed(ebiten.KeyArrowRight, ebiten.KeyD),
		Up:      anyPressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Down:    anyPressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Fire:    anyPressed(ebiten.KeySpace),
		Restart: anyJustPressed(ebiten.KeyR),
		Prev:    anyJustPressed(ebiten.KeyArrowUp, ebiten.KeyW),
		Next:    anyJustPressed(ebiten.KeyArrowDown, ebiten.KeyS),
		Start:   anyJustPressed(ebiten.KeyEnter, ebiten.KeySpace),
		Escape:  anyJustPressed(ebiten.KeyEscape),
		Quit:    anyJustPressed(ebiten.KeyQ),
		Number:  -1,
	}
	for i, dk := range digitKeys {
		if inpututil.IsKeyJustPressed(dk) {
			k.Number = i + 1
		}
	}
	return k
}
