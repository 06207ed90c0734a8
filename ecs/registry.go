package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// is bound to one registry and can only hold types registered with it.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers T with the registry. It must be called for
// every component type before an entity carrying it is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

func (r *ComponentRegistry) factory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

// componentStorage is the type-erased column of one component type inside an
// archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Len() int
	Iter() iter.Seq[int]
}

const storageBlockSize = 64

// blockStorage keeps components in fixed-size blocks so that pointers handed
// out by Get stay valid while the column grows.
type blockStorage[T any] struct {
	blocks []*[storageBlockSize]T
	filled [][storageBlockSize]bool
	free   []int
	next   int
	live   int
}

func (bs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(bs.free); n > 0 {
		index = bs.free[n-1]
		bs.free = bs.free[:n-1]
	} else {
		index = bs.next
		bs.next++
		if index/storageBlockSize >= len(bs.blocks) {
			bs.blocks = append(bs.blocks, new([storageBlockSize]T))
			bs.filled = append(bs.filled, [storageBlockSize]bool{})
		}
	}

	block, slot := index/storageBlockSize, index%storageBlockSize
	bs.blocks[block][slot] = value
	bs.filled[block][slot] = true
	bs.live++
	return index
}

func (bs *blockStorage[T]) has(index int) bool {
	if index < 0 || index >= bs.next {
		return false
	}
	return bs.filled[index/storageBlockSize][index%storageBlockSize]
}

// Get returns a *T for the slot, or nil when the slot is empty.
func (bs *blockStorage[T]) Get(index int) any {
	if !bs.has(index) {
		return nil
	}
	return &bs.blocks[index/storageBlockSize][index%storageBlockSize]
}

func (bs *blockStorage[T]) Delete(index int) {
	if !bs.has(index) {
		return
	}
	block, slot := index/storageBlockSize, index%storageBlockSize
	var zero T
	bs.blocks[block][slot] = zero
	bs.filled[block][slot] = false
	bs.free = append(bs.free, index)
	bs.live--
}

func (bs *blockStorage[T]) Len() int {
	return bs.live
}

func (bs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < bs.next; i++ {
			if !bs.filled[i/storageBlockSize][i%storageBlockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
