// Package component holds the component kinds generated from schema.yaml and
// the field reflection facade used by tooling.
package component

//go:generate go run ../../cmd/ecsgen -schema schema.yaml -component components_gen.go -kinds ../schema/kinds_gen.go -scene ../scene/scene_gen.go

import (
	"errors"
	"strconv"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	return ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle pairs a kind id with the kind's schema name.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
	name string
}

func NewComponent[T any](name string) ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T](), name: name}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}

func (h ComponentHandle[T]) Name() string {
	return h.name
}

func (h ComponentHandle[T]) String() string {
	return h.name + "#" + strconv.FormatUint(uint64(h.kind.id), 10)
}

type ComponentID uint32

var nextComponentID atomic.Uint32
