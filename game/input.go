package game

// Symbol is a bitset of pressed movement and action inputs.
type Symbol uint8

const (
	SymbolLeft Symbol = 1 << iota
	SymbolRight
	SymbolA
	SymbolD
	SymbolJump
	SymbolFire
)

// Input is the state of the input source for one frame.
type Input struct {
	Pressed Symbol
	// Target is the aim point in arena coordinates, read while SymbolFire is pressed.
	Target Position
}

// Has reports whether any of the given symbols is pressed.
func (in Input) Has(symbols Symbol) bool {
	return in.Pressed&symbols != 0
}

func (in Input) movingLeft() bool {
	return in.Has(SymbolLeft | SymbolA)
}

func (in Input) movingRight() bool {
	return in.Has(SymbolRight | SymbolD)
}
