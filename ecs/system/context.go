package system

import (
	"io/fs"

	"github.com/milk9111/en/ecs"
	"github.com/milk9111/en/sprite"
)

// MaxFrameTime bounds the step handed to systems, in seconds.
const MaxFrameTime = 0.1

// Context is built by the host for a single frame and lent to each system in
// turn. Systems must not keep it past their Run call.
type Context struct {
	world   *ecs.World
	sprites *sprite.Manager
	input   Input
	scripts fs.FS
	dt      float32
	cmds    ecs.CommandBuffer
}

// NewContext clamps dt to [0, MaxFrameTime].
func NewContext(w *ecs.World, sprites *sprite.Manager, dt float64) *Context {
	if dt < 0 {
		dt = 0
	}
	if dt > MaxFrameTime {
		dt = MaxFrameTime
	}
	return &Context{world: w, sprites: sprites, input: noInput{}, dt: float32(dt)}
}

// WithInput sets the keyboard source. A nil input reports no keys held.
func (c *Context) WithInput(in Input) *Context {
	if in == nil {
		in = noInput{}
	}
	c.input = in
	return c
}

// WithScripts sets the file system Script paths are resolved against.
func (c *Context) WithScripts(fsys fs.FS) *Context {
	c.scripts = fsys
	return c
}

func (c *Context) World() *ecs.World { return c.world }

func (c *Context) Sprites() *sprite.Manager { return c.sprites }

func (c *Context) Input() Input { return c.input }

func (c *Context) Scripts() fs.FS { return c.scripts }

// Dt is the clamped frame time in seconds.
func (c *Context) Dt() float32 { return c.dt }

// Commands returns the buffer applied after the current system returns.
func (c *Context) Commands() *ecs.CommandBuffer { return &c.cmds }

func (c *Context) flush() {
	if c == nil {
		return
	}
	c.cmds.Run(c.world)
}
