package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype and singleton of one ECS world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	singletons map[reflect.Type]*singletonEntry

	// layout is bumped whenever an archetype is created so queries know to
	// rebuild their archetype cache.
	layout int
}

// iface mirrors the runtime layout of an interface value.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

type singletonEntry struct {
	typ     reflect.Type
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage bound to the given registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](16),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates a new entity from the given components. Components may be
// passed by value or by pointer; the storage always keeps its own copy.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, ok := s.archetypes.Get(archetypeId)
	if !ok {
		archetype = newArchetype(archetypeId, types, s.registry)
		s.archetypes.Put(archetypeId, archetype)
		s.layout++
	}

	return NewEntityId(archetypeId, archetype.spawn(components))
}

// Delete removes the entity and all of its components. The freed slot is
// reused by the next spawn into the same archetype, so a deleted ID may
// resolve to that newer entity.
func (s *Storage) Delete(id EntityId) {
	if archetype, ok := s.archetypes.Get(id.ArchetypeId()); ok {
		archetype.delete(id.Index())
	}
}

// GetComponent returns a pointer to the entity's component of the given type,
// or nil when the entity does not carry it.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// ReadComponent is the typed form of GetComponent.
func ReadComponent[T any](storage *Storage, id EntityId) *T {
	comp := storage.GetComponent(id, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}

// Archetypes returns every archetype ordered by ID.
func (s *Storage) Archetypes() []*Archetype {
	out := make([]*Archetype, 0, s.archetypes.Len())
	for archetype := range s.archetypes.Values() {
		out = append(out, archetype)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Count returns the number of live entities across all archetypes.
func (s *Storage) Count() int {
	total := 0
	for archetype := range s.archetypes.Values() {
		total += archetype.Len()
	}
	return total
}

// AddSingleton stores value as the singleton of its type. Adding a singleton
// that already exists overwrites it in place, so outstanding Singleton
// accessors keep pointing at live data.
func (s *Storage) AddSingleton(value any) {
	typ := componentType(value)
	src := reflect.ValueOf(value)
	if src.Kind() == reflect.Ptr {
		src = src.Elem()
	}

	if entry, ok := s.singletons[typ]; ok {
		reflect.NewAt(typ, entry.dataPtr).Elem().Set(src)
		return
	}

	ptr := reflect.New(typ)
	ptr.Elem().Set(src)
	s.singletons[typ] = &singletonEntry{typ: typ, dataPtr: ptr.UnsafePointer()}
}

// ReadSingleton points target, which must be a **T, at the stored singleton
// of type T. It returns false when no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Ptr || dst.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	typ := dst.Elem().Type().Elem()
	entry := s.getSingletonEntry(typ)
	if entry == nil {
		return false
	}
	dst.Elem().Set(reflect.NewAt(typ, entry.dataPtr))
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func componentType(comp any) reflect.Type {
	typ := reflect.TypeOf(comp)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	return typ
}

// extractComponentTypes returns the sorted component types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		typ := componentType(comp)
		switch typ.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, typ)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 folds the runtime type pointers of a sorted type list
// into an FNV-1a hash.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}

	return h
}
