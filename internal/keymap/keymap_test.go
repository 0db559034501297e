package keymap

import (
	"errors"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestHex(t *testing.T) {
	m := Hex()
	assert.Equal(t, chip8.KeyCount, len(m))

	tests := []struct {
		name  string
		index int
	}{
		{"0", 0},
		{"9", 9},
		{"A", 10},
		{"a", 10},
		{" f ", 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, err := m.Lookup(tt.name)
			assert.NoError(t, err)
			assert.Equal(t, tt.index, index)
		})
	}

	_, err := m.Lookup("G")
	assert.True(t, errors.Is(err, chip8.ErrUnknownKey))
	_, err = m.Lookup("10")
	assert.True(t, errors.Is(err, chip8.ErrUnknownKey))
}

func TestQwerty(t *testing.T) {
	m := Qwerty()
	assert.Equal(t, chip8.KeyCount, len(m))

	index, err := m.Lookup("1")
	assert.NoError(t, err)
	assert.Equal(t, 0, index)
	index, err = m.Lookup("q")
	assert.NoError(t, err)
	assert.Equal(t, 4, index)
	index, err = m.Lookup("V")
	assert.NoError(t, err)
	assert.Equal(t, 15, index)

	_, err = m.Lookup("5")
	assert.True(t, errors.Is(err, chip8.ErrUnknownKey))
}

func TestForLayout(t *testing.T) {
	m, err := ForLayout("")
	assert.NoError(t, err)
	assert.Equal(t, Hex()["B"], m["B"])

	m, err = ForLayout("QWERTY")
	assert.NoError(t, err)
	assert.Equal(t, 5, m["W"])

	_, err = ForLayout("dvorak")
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	m, err := New(map[string]int{"fire": 5, "left": 4})
	assert.NoError(t, err)
	index, err := m.Lookup("Fire")
	assert.NoError(t, err)
	assert.Equal(t, 5, index)

	_, err = New(map[string]int{"bad": 16})
	assert.True(t, errors.Is(err, chip8.ErrUnknownKey))
}
