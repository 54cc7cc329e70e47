package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the director policy scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	for _, sub := range []string{"core", "director"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
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

// WeightContext is the player performance handed to the director policy.
type WeightContext struct {
	Finds  int
	Misses int
	Streak int
	Level  int
}

// AdjustWeights calls the Lua adjust_weights function with the player's
// performance and the static weight table. The returned table only carries
// keys present in weights; negative values become 0. When the function is
// missing or fails the input table is returned unchanged.
func (e *Engine) AdjustWeights(ctx WeightContext, weights map[string]int) map[string]int {
	fn := e.vm.GetGlobal("adjust_weights")
	if fn == lua.LNil {
		return weights
	}

	t := e.vm.NewTable()
	t.RawSetString("finds", lua.LNumber(ctx.Finds))
	t.RawSetString("misses", lua.LNumber(ctx.Misses))
	t.RawSetString("streak", lua.LNumber(ctx.Streak))
	t.RawSetString("level", lua.LNumber(ctx.Level))

	w := e.vm.NewTable()
	for k, v := range weights {
		w.RawSetString(k, lua.LNumber(v))
	}
	t.RawSetString("weights", w)

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, t); err != nil {
		e.log.Error("lua adjust_weights error", zap.Error(err))
		return weights
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		e.log.Error("lua adjust_weights returned non-table", zap.String("type", result.Type().String()))
		return weights
	}

	out := make(map[string]int, len(weights))
	for k := range weights {
		v := lInt(rt, k)
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}

// lInt reads an int field from a Lua table.
func lInt(t *lua.LTable, key string) int {
	return int(lua.LVAsNumber(t.RawGetString(key)))
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
