package ecs

// CommandBuffer queues world mutations so they can be recorded while the world
// is being iterated and applied afterwards in FIFO order.
type CommandBuffer struct {
	cmds []func(*World)
}

// Despawn queues the destruction of e.
func (b *CommandBuffer) Despawn(e Entity) {
	b.Do(func(w *World) { DestroyEntity(w, e) })
}

// Do queues an arbitrary mutation.
func (b *CommandBuffer) Do(fn func(*World)) {
	if b == nil || fn == nil {
		return
	}
	b.cmds = append(b.cmds, fn)
}

// Len returns the number of queued commands.
func (b *CommandBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.cmds)
}

// Run applies and clears every queued command.
func (b *CommandBuffer) Run(w *World) {
	if b == nil || len(b.cmds) == 0 {
		return
	}
	cmds := b.cmds
	b.cmds = nil
	for _, cmd := range cmds {
		cmd(w)
	}
}
