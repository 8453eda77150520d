package scripting

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for combat math and wave scaling.
// Go executes, Lua decides the numbers. Single-goroutine access only
// (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
	rng *rand.Rand
}

// NewEngine creates a Lua engine and loads all scripts under scriptsDir.
// Missing subdirectories are skipped, so a bare install still boots with
// the Go fallbacks.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{
		vm:  vm,
		log: log,
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
	for _, sub := range []string{"combat", "waves"} {
		if err := e.loadDir(filepath.Join(scriptsDir, sub)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// BiteDamage calls the Lua calc_bite_damage function. Results are clamped
// into [min, max]; a missing function or script error falls back to a
// uniform Go roll.
func (e *Engine) BiteDamage(min, max int) int {
	fn := e.vm.GetGlobal("calc_bite_damage")
	if fn == lua.LNil {
		return e.uniformRoll(min, max)
	}
	tbl := e.vm.NewTable()
	tbl.RawSetString("min_damage", lua.LNumber(min))
	tbl.RawSetString("max_damage", lua.LNumber(max))
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, tbl); err != nil {
		e.log.Error("calc_bite_damage failed", zap.Error(err))
		return e.uniformRoll(min, max)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Error("calc_bite_damage returned non-number")
		return e.uniformRoll(min, max)
	}
	dmg := int(n)
	if dmg < min {
		dmg = min
	}
	if dmg > max {
		dmg = max
	}
	return dmg
}

// ScaleWave calls the Lua scale_wave function for the spawn-count
// multiplier of a repeat cycle. Fallback: +15% per completed cycle.
func (e *Engine) ScaleWave(cycle int) float64 {
	fn := e.vm.GetGlobal("scale_wave")
	if fn == lua.LNil {
		return 1.0 + 0.15*float64(cycle)
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(cycle)); err != nil {
		e.log.Error("scale_wave failed", zap.Error(err))
		return 1.0 + 0.15*float64(cycle)
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok || float64(n) <= 0 {
		return 1.0 + 0.15*float64(cycle)
	}
	return float64(n)
}

func (e *Engine) uniformRoll(min, max int) int {
	if max <= min {
		return min
	}
	return min + e.rng.Intn(max-min+1)
}
