// Package keymap maps symbolic key names to the logical CHIP-8 key indexes.
package keymap

import (
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Layout names accepted by ForLayout.
const (
	HexLayout    = "hex"
	QwertyLayout = "qwerty"
)

// Map translates key names to key indexes 0-15. Names are case-insensitive.
type Map map[string]int

// Hex returns the default mapping of the names "0"-"9" and "A"-"F".
func Hex() Map {
	m := make(Map, chip8.KeyCount)
	for i := range chip8.KeyCount {
		m[fmt.Sprintf("%X", i)] = i
	}
	return m
}

// Qwerty returns the mapping of the left hand keyboard block 1234, QWER,
// ASDF and ZXCV to the keys 0-15 in row order.
func Qwerty() Map {
	m := make(Map, chip8.KeyCount)
	for i, name := range []string{
		"1", "2", "3", "4",
		"Q", "W", "E", "R",
		"A", "S", "D", "F",
		"Z", "X", "C", "V",
	} {
		m[name] = i
	}
	return m
}

// ForLayout returns the mapping for the given layout name.
func ForLayout(layout string) (Map, error) {
	switch strings.ToLower(layout) {
	case "", HexLayout:
		return Hex(), nil
	case QwertyLayout:
		return Qwerty(), nil
	default:
		return nil, fmt.Errorf("unsupported key layout '%s'", layout)
	}
}

// New returns a mapping from the given names, it fails if a name maps to
// a key outside of 0-15.
func New(names map[string]int) (Map, error) {
	m := make(Map, len(names))
	for name, index := range names {
		if index < 0 || index >= chip8.KeyCount {
			return nil, fmt.Errorf("%w: '%s' maps to %d", chip8.ErrUnknownKey, name, index)
		}
		m[strings.ToUpper(name)] = index
	}
	return m, nil
}

// Lookup returns the key index of the given name.
func (m Map) Lookup(name string) (int, error) {
	index, ok := m[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: '%s'", chip8.ErrUnknownKey, name)
	}
	return index, nil
}
