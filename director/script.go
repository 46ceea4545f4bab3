package director

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// The pacing script defines two functions:
//
//	pick(engine, state, elapsed)     -> category name, "" to skip
//	interval(engine, state, elapsed) -> seconds until the next wave
//
// state is a persistent map the script may mutate across calls; engine
// exposes rand(), active(name), capacity(name), and the tuning values.
const waveDispatchScript = `
if __phase == "pick" {
	__out = pick(__engine, __state, __elapsed)
} else if __phase == "interval" {
	__out = interval(__engine, __state, __elapsed)
}
`

type waveScript struct {
	compiled *tengo.Compiled
	state    *tengo.Map
}

func newWaveScript() (*waveScript, error) {
	src, err := LoadScript("waves.tengo")
	if err != nil {
		return nil, fmt.Errorf("director: load waves.tengo: %w", err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + waveDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__elapsed", 0.0)
	_ = script.Add("__out", "")

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("director: compile waves.tengo: %w", err)
	}

	ws := &waveScript{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// Run the top level once so a broken script fails at load, not
	// mid-game.
	if err := ws.run("noop", nil, 0); err != nil {
		return nil, fmt.Errorf("director: run waves.tengo: %w", err)
	}
	return ws, nil
}

func (ws *waveScript) run(phase string, engine *tengo.ImmutableMap, elapsed float64) error {
	if ws == nil || ws.compiled == nil {
		return fmt.Errorf("director: nil wave script")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := ws.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := ws.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := ws.compiled.Set("__state", ws.state); err != nil {
		return err
	}
	if err := ws.compiled.Set("__elapsed", elapsed); err != nil {
		return err
	}
	return ws.compiled.Run()
}

func (ws *waveScript) runPick(engine *tengo.ImmutableMap, elapsed float64) (string, error) {
	if err := ws.run("pick", engine, elapsed); err != nil {
		return "", err
	}
	return strings.TrimSpace(ws.compiled.Get("__out").String()), nil
}

func (ws *waveScript) runInterval(engine *tengo.ImmutableMap, elapsed float64) (float64, error) {
	if err := ws.run("interval", engine, elapsed); err != nil {
		return 0, err
	}
	return ws.compiled.Get("__out").Float(), nil
}

func (ws *waveScript) resetState() {
	if ws == nil {
		return
	}
	ws.state = &tengo.Map{Value: map[string]tengo.Object{}}
}
