package system

import (
	"fmt"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/ecs/component"
)

// Scripts define update(engine), called once per frame for every entity
// whose enabled Script component points at them.
const scriptDispatch = `
update(__engine)
`

func init() {
	Register(Descriptor{Name: "scripts", Run: scripts.run})
}

var scripts = &scriptRunner{}

// scriptRuntime is one entity's instance of a script. A script's top level
// runs again every frame, so values that must survive go in state.
type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	err      error
}

type scriptRunner struct {
	mu       sync.Mutex
	compiled map[string]*tengo.Compiled
	byEntity map[ecs.Entity]*scriptRuntime
}

// ReloadScripts forgets every compiled script so the next frame reads them
// from disk again.
func ReloadScripts() {
	scripts.reset()
}

func (s *scriptRunner) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compiled = nil
	s.byEntity = nil
}

func (s *scriptRunner) run(ctx *Context) {
	if ctx == nil || ctx.Scripts() == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	w := ctx.World()
	for e := range s.byEntity {
		if !ecs.Has(w, e, component.ScriptComponent.Kind()) {
			delete(s.byEntity, e)
		}
	}

	ecs.ForEach(w, component.ScriptComponent.Kind(), func(e ecs.Entity, sc *component.Script) {
		if !sc.Enabled || strings.TrimSpace(sc.Path) == "" {
			return
		}
		rt := s.runtime(ctx.Scripts(), e, sc.Path)
		if rt.err != nil {
			return
		}
		if err := rt.compiled.Set("__engine", buildScriptEngine(ctx, e, rt.state)); err != nil {
			log.Printf("[scripts] entity=%s %s: %v", e, rt.path, err)
			return
		}
		if err := rt.compiled.Run(); err != nil {
			log.Printf("[scripts] entity=%s %s: update error: %v", e, rt.path, err)
		}
	})
}

// runtime returns e's instance of the script at p, compiling it on first use.
// A script that fails to load is remembered so the error is logged once.
func (s *scriptRunner) runtime(fsys fs.FS, e ecs.Entity, p string) *scriptRuntime {
	if rt, ok := s.byEntity[e]; ok && rt.path == p {
		return rt
	}
	if s.byEntity == nil {
		s.byEntity = make(map[ecs.Entity]*scriptRuntime)
	}
	rt := &scriptRuntime{path: p, state: &tengo.Map{Value: map[string]tengo.Object{}}}
	s.byEntity[e] = rt

	base, err := s.compile(fsys, p)
	if err != nil {
		rt.err = err
		log.Printf("[scripts] entity=%s: %v", e, err)
		return rt
	}
	rt.compiled = base.Clone()
	return rt
}

func (s *scriptRunner) compile(fsys fs.FS, p string) (*tengo.Compiled, error) {
	if c, ok := s.compiled[p]; ok {
		return c, nil
	}
	src, err := fs.ReadFile(fsys, path.Clean(p))
	if err != nil {
		return nil, fmt.Errorf("load script %q: %w", p, err)
	}
	script := tengo.NewScript(append(append([]byte{}, src...), scriptDispatch...))
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile script %q: %w", p, err)
	}
	if s.compiled == nil {
		s.compiled = make(map[string]*tengo.Compiled)
	}
	s.compiled[p] = compiled
	return compiled, nil
}
