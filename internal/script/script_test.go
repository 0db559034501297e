package script

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

type fakeMachine struct {
	keys      map[string]bool
	registers [chip8.RegisterCount]byte
	pc        uint16
	sound     bool
	display   chip8.Framebuffer
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{keys: map[string]bool{}}
}

func (m *fakeMachine) SetKey(name string, pressed bool) error {
	if name == "X" {
		return chip8.ErrUnknownKey
	}
	m.keys[name] = pressed
	return nil
}

func (m *fakeMachine) SoundOn() bool { return m.sound }

func (m *fakeMachine) PC() uint16 { return m.pc }

func (m *fakeMachine) Register(index int) (byte, error) {
	if index < 0 || index >= chip8.RegisterCount {
		return 0, errors.New("invalid register")
	}
	return m.registers[index], nil
}

func (m *fakeMachine) Display() chip8.Framebuffer { return m.display }

func TestFrameKeys(t *testing.T) {
	machine := newFakeMachine()
	s, err := LoadString(`
function on_frame(n)
  if n == 0 then press("5") end
  if n == 2 then release("5") end
end`, machine)
	assert.NoError(t, err)
	defer s.Close()

	stop, err := s.Frame(0)
	assert.NoError(t, err)
	assert.False(t, stop)
	assert.True(t, machine.keys["5"])

	_, err = s.Frame(1)
	assert.NoError(t, err)
	assert.True(t, machine.keys["5"])

	_, err = s.Frame(2)
	assert.NoError(t, err)
	assert.False(t, machine.keys["5"])
}

func TestObserveMachine(t *testing.T) {
	machine := newFakeMachine()
	machine.registers[3] = 0x2A
	machine.pc = 0x204
	machine.sound = true
	machine.display[1*chip8.DisplayWidth+2] = true

	s, err := LoadString(`
function on_frame(n)
  if reg(3) == 42 and pc() == 0x204 and sound() and pixel(2, 1) and not pixel(0, 0) then
    stop()
  end
end`, machine)
	assert.NoError(t, err)
	defer s.Close()

	stop, err := s.Frame(0)
	assert.NoError(t, err)
	assert.True(t, stop)
}

func TestScriptErrors(t *testing.T) {
	t.Run("missing frame function", func(t *testing.T) {
		_, err := LoadString(`x = 1`, newFakeMachine())
		assert.True(t, errors.Is(err, ErrMissingFrameFunction))
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := LoadString(`function on_frame(`, newFakeMachine())
		assert.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		s, err := LoadString(`function on_frame(n) press("X") end`, newFakeMachine())
		assert.NoError(t, err)
		defer s.Close()

		stop, err := s.Frame(7)
		assert.ErrorContains(t, err, "frame 7")
		assert.True(t, stop)
	})

	t.Run("invalid register", func(t *testing.T) {
		s, err := LoadString(`function on_frame(n) reg(16) end`, newFakeMachine())
		assert.NoError(t, err)
		defer s.Close()

		_, err = s.Frame(0)
		assert.ErrorContains(t, err, "invalid register")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.lua")
	err := os.WriteFile(path, []byte(`function on_frame(n) if n >= 1 then stop() end end`), 0600)
	assert.NoError(t, err)

	s, err := Load(path, newFakeMachine())
	assert.NoError(t, err)
	defer s.Close()

	stop, err := s.Frame(0)
	assert.NoError(t, err)
	assert.False(t, stop)
	stop, err = s.Frame(1)
	assert.NoError(t, err)
	assert.True(t, stop)

	_, err = Load(filepath.Join(t.TempDir(), "missing.lua"), newFakeMachine())
	assert.Error(t, err)
}
