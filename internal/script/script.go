// Package script drives the emulator input from a Lua script.
//
// A script defines a global on_frame(n) function that is called before every
// emulated frame with the zero based frame number. The following functions
// are available to the script:
//
//	press(key)      marks the named key as pressed
//	release(key)    marks the named key as released
//	reg(index)      returns the value of register V0-VF
//	pc()            returns the program counter
//	sound()         returns whether the sound timer is active
//	pixel(x, y)     returns whether the display pixel is lit
//	stop()          ends the run after the current frame
package script

import (
	"errors"
	"fmt"

	"github.com/retroenv/retrochip8/internal/chip8"
	lua "github.com/yuin/gopher-lua"
)

const frameFunction = "on_frame"

// ErrMissingFrameFunction is returned when a script does not define on_frame.
var ErrMissingFrameFunction = errors.New("script does not define function " + frameFunction)

// Machine is the emulator state that a script can observe and control.
type Machine interface {
	SetKey(name string, pressed bool) error
	SoundOn() bool
	PC() uint16
	Register(index int) (byte, error)
	Display() chip8.Framebuffer
}

// Script is a loaded Lua input script.
type Script struct {
	state   *lua.LState
	machine Machine
	frame   *lua.LFunction
	stop    bool
}

// Load loads the script file and binds it to the machine.
func Load(path string, machine Machine) (*Script, error) {
	return load(machine, func(state *lua.LState) error {
		return state.DoFile(path)
	})
}

// LoadString loads the script source and binds it to the machine.
func LoadString(source string, machine Machine) (*Script, error) {
	return load(machine, func(state *lua.LState) error {
		return state.DoString(source)
	})
}

func load(machine Machine, run func(state *lua.LState) error) (*Script, error) {
	s := &Script{
		state:   lua.NewState(),
		machine: machine,
	}
	s.registerFunctions()

	if err := run(s.state); err != nil {
		s.state.Close()
		return nil, fmt.Errorf("running script: %w", err)
	}

	fn, ok := s.state.GetGlobal(frameFunction).(*lua.LFunction)
	if !ok {
		s.state.Close()
		return nil, ErrMissingFrameFunction
	}
	s.frame = fn
	return s, nil
}

// Frame calls on_frame for the given frame number. It returns true once the
// script requested to stop the run.
func (s *Script) Frame(number int) (bool, error) {
	err := s.state.CallByParam(lua.P{
		Fn:      s.frame,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(number))
	if err != nil {
		return true, fmt.Errorf("calling %s for frame %d: %w", frameFunction, number, err)
	}
	return s.stop, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

func (s *Script) registerFunctions() {
	functions := map[string]lua.LGFunction{
		"press":   s.keyFunction(true),
		"release": s.keyFunction(false),
		"reg":     s.register,
		"pc":      s.pc,
		"sound":   s.sound,
		"pixel":   s.pixel,
		"stop":    s.requestStop,
	}
	for name, fn := range functions {
		s.state.SetGlobal(name, s.state.NewFunction(fn))
	}
}

func (s *Script) keyFunction(pressed bool) lua.LGFunction {
	return func(state *lua.LState) int {
		name := state.CheckString(1)
		if err := s.machine.SetKey(name, pressed); err != nil {
			state.RaiseError("%s", err.Error())
		}
		return 0
	}
}

func (s *Script) register(state *lua.LState) int {
	value, err := s.machine.Register(state.CheckInt(1))
	if err != nil {
		state.RaiseError("%s", err.Error())
		return 0
	}
	state.Push(lua.LNumber(value))
	return 1
}

func (s *Script) pc(state *lua.LState) int {
	state.Push(lua.LNumber(s.machine.PC()))
	return 1
}

func (s *Script) sound(state *lua.LState) int {
	state.Push(lua.LBool(s.machine.SoundOn()))
	return 1
}

func (s *Script) pixel(state *lua.LState) int {
	x := state.CheckInt(1)
	y := state.CheckInt(2)
	display := s.machine.Display()
	state.Push(lua.LBool(display.Pixel(x, y)))
	return 1
}

func (s *Script) requestStop(*lua.LState) int {
	s.stop = true
	return 0
}
