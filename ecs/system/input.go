package system

import "github.com/hajimehoshi/ebiten/v2"

// Input is the keyboard state systems read.
type Input interface {
	KeyDown(k ebiten.Key) bool
}

// EbitenInput reads the live ebiten keyboard.
type EbitenInput struct{}

func (EbitenInput) KeyDown(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

// KeySet is a fixed set of held keys, handy for tests and replays.
type KeySet map[ebiten.Key]bool

func (s KeySet) KeyDown(k ebiten.Key) bool {
	return s[k]
}

type noInput struct{}

func (noInput) KeyDown(ebiten.Key) bool { return false }
