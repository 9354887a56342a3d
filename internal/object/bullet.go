package object

import "github.com/tomz197/starfall/internal/loop/config"

// BulletKind only affects how a bullet is drawn.
type BulletKind int

const (
	BulletNormal BulletKind = iota
	BulletDual
)

func (k BulletKind) String() string {
	if k == BulletDual {
		return "dual"
	}
	return "normal"
}

// MarshalText implements encoding.TextMarshaler.
func (k BulletKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode
// as normal bullets.
func (k *BulletKind) UnmarshalText(text []byte) error {
	*k = BulletNormal
	if string(text) == "dual" {
		*k = BulletDual
	}
	return nil
}

// Bullet is a shot fired by the player. It travels straight up.
type Bullet struct {
	Body
	VY         float64 // Constant vertical velocity (negative is up)
	BulletKind BulletKind
}

// NewBullet creates a bullet centered at (x, y).
func NewBullet(x, y float64, kind BulletKind) *Bullet {
	return &Bullet{
		Body: Body{
			X: x,
			Y: y,
			W: config.BulletWidth,
			H: config.BulletHeight,
		},
		VY:         -config.BulletSpeed,
		BulletKind: kind,
	}
}

// Kind implements Entity.
func (b *Bullet) Kind() Kind { return KindBullet }

// Advance moves the bullet and returns true once it has left the top of the area.
func (b *Bullet) Advance() (gone bool) {
	b.Y += b.VY
	return b.Bounds().Bottom() < 0
}
