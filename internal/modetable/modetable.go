// Package modetable loads modal.ModeTable values from Lua scripts.
//
// A script defines the global arrays freqs, taus, amps_real and amps_imag
// and the number analysis_fs. Scripts may compute the columns; the host
// function spring_table(n) returns a table with the fields of
// modal.SpringTable(n) as a starting point.
//
//	local t = spring_table(32)
//	freqs, taus, amps_real, amps_imag = t.freqs, t.taus, t.amps_real, t.amps_imag
//	analysis_fs = t.analysis_fs
package modetable

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-modal/dsp/modal"
)

// Global names read from a script.
const (
	GlobalFreqs      = "freqs"
	GlobalTaus       = "taus"
	GlobalAmpsReal   = "amps_real"
	GlobalAmpsImag   = "amps_imag"
	GlobalAnalysisFs = "analysis_fs"
)

// ErrScript is returned when a script fails to run or leaves a global of
// the wrong shape.
var ErrScript = errors.New("modetable: script error")

// maxSpringModes bounds spring_table(n) so a script cannot allocate
// without limit.
const maxSpringModes = 1 << 16

// LoadString runs src and returns the table it defines.
func LoadString(src string) (modal.ModeTable, error) {
	return load(func(L *lua.LState) error { return L.DoString(src) })
}

// LoadFile runs the script at path and returns the table it defines.
func LoadFile(path string) (modal.ModeTable, error) {
	return load(func(L *lua.LState) error { return L.DoFile(path) })
}

func load(run func(*lua.LState) error) (modal.ModeTable, error) {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("spring_table", L.NewFunction(luaSpringTable))

	if err := run(L); err != nil {
		return modal.ModeTable{}, fmt.Errorf("%w: %w", ErrScript, err)
	}

	var (
		t   modal.ModeTable
		err error
	)
	if t.Freqs, err = numberArray(L, GlobalFreqs); err != nil {
		return modal.ModeTable{}, err
	}
	if t.Taus, err = numberArray(L, GlobalTaus); err != nil {
		return modal.ModeTable{}, err
	}
	if t.AmpsReal, err = numberArray(L, GlobalAmpsReal); err != nil {
		return modal.ModeTable{}, err
	}
	if t.AmpsImag, err = numberArray(L, GlobalAmpsImag); err != nil {
		return modal.ModeTable{}, err
	}

	fs, ok := L.GetGlobal(GlobalAnalysisFs).(lua.LNumber)
	if !ok {
		return modal.ModeTable{}, fmt.Errorf("%w: %s must be a number", ErrScript, GlobalAnalysisFs)
	}
	t.AnalysisSampleRate = float64(fs)

	if err := t.Validate(); err != nil {
		return modal.ModeTable{}, err
	}

	return t, nil
}

// numberArray reads the sequence part of a global table. Every element
// must be a number.
func numberArray(L *lua.LState, name string) ([]float64, error) {
	tbl, ok := L.GetGlobal(name).(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an array of numbers", ErrScript, name)
	}

	n := tbl.Len()
	out := make([]float64, n)
	for i := range n {
		v, ok := tbl.RawGetInt(i + 1).(lua.LNumber)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is not a number", ErrScript, name, i+1)
		}
		out[i] = float64(v)
	}

	return out, nil
}

func luaSpringTable(L *lua.LState) int {
	n := L.CheckInt(1)
	if n < 1 || n > maxSpringModes {
		L.ArgError(1, fmt.Sprintf("mode count must be in [1, %d]", maxSpringModes))
		return 0
	}

	t := modal.SpringTable(n)

	out := L.NewTable()
	out.RawSetString(GlobalFreqs, numberTable(L, t.Freqs))
	out.RawSetString(GlobalTaus, numberTable(L, t.Taus))
	out.RawSetString(GlobalAmpsReal, numberTable(L, t.AmpsReal))
	out.RawSetString(GlobalAmpsImag, numberTable(L, t.AmpsImag))
	out.RawSetString(GlobalAnalysisFs, lua.LNumber(t.AnalysisSampleRate))
	L.Push(out)

	return 1
}

func numberTable(L *lua.LState, xs []float64) *lua.LTable {
	tbl := L.CreateTable(len(xs), 0)
	for _, x := range xs {
		tbl.Append(lua.LNumber(x))
	}
	return tbl
}
