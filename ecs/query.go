package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// Query iterates every entity that carries the components named by T.
//
// T must be a struct whose fields are pointers to component types, plus at
// most one EntityId field that receives the entity's ID. Embedded pointer
// fields are required; named pointer fields tagged `ecs:"optional"` are set
// to nil when the entity lacks the component.
type Query[T any] struct {
	storage *Storage
	fields  []queryField

	archetypes []*Archetype
	columns    [][]int
	layout     int
}

type queryField struct {
	offset   uintptr
	typ      reflect.Type
	optional bool
	isId     bool
}

// NewQuery creates a query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it for Query fields of
// registered systems.
func (q *Query[T]) Init(storage *Storage) {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("Query type parameter must be a struct")
	}

	q.storage = storage
	q.fields = q.fields[:0]
	q.archetypes = nil
	q.layout = -1

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type == entityIdType {
			q.fields = append(q.fields, queryField{offset: field.Offset, isId: true})
			continue
		}
		if field.Type.Kind() != reflect.Ptr {
			panic("Query struct fields must be pointer types or EntityId")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
			optional = true
		}

		q.fields = append(q.fields, queryField{
			offset:   field.Offset,
			typ:      field.Type.Elem(),
			optional: optional,
		})
	}
}

func (q *Query[T]) refresh() {
	if q.layout == q.storage.layout && q.archetypes != nil {
		return
	}

	q.archetypes = q.archetypes[:0]
	q.columns = q.columns[:0]

	for archetype := range q.storage.archetypes.Values() {
		columns := make([]int, len(q.fields))
		matches := true
		for i, field := range q.fields {
			if field.isId {
				columns[i] = -1
				continue
			}
			columns[i] = archetype.column(field.typ)
			if columns[i] < 0 && !field.optional {
				matches = false
				break
			}
		}
		if matches {
			q.archetypes = append(q.archetypes, archetype)
			q.columns = append(q.columns, columns)
		}
	}

	q.layout = q.storage.layout
}

// Iter yields a populated T for every matching entity. The yielded pointers
// address live component data and may be mutated in place.
func (q *Query[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		q.refresh()

		var result T
		base := unsafe.Pointer(&result)

		for a, archetype := range q.archetypes {
			if len(archetype.storages) == 0 {
				continue
			}
			columns := q.columns[a]

			for index := range archetype.storages[0].Iter() {
				for i, field := range q.fields {
					dst := unsafe.Add(base, field.offset)
					if field.isId {
						*(*EntityId)(dst) = NewEntityId(archetype.id, uint32(index))
						continue
					}
					if columns[i] < 0 {
						*(*unsafe.Pointer)(dst) = nil
						continue
					}
					comp := archetype.storages[columns[i]].Get(index)
					*(*unsafe.Pointer)(dst) = (*iface)(unsafe.Pointer(&comp)).data
				}

				if !yield(result) {
					return
				}
			}
		}
	}
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	total := 0
	for _, archetype := range q.archetypes {
		total += archetype.Len()
	}
	return total
}
