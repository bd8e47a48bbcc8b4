package ast

import (
	"sort"

	"github.com/gqlkit/queryjson/internal/text"
)

// ValueKind discriminates the literal grammar.
type ValueKind int8

const (
	Variable ValueKind = iota
	IntValue
	FloatValue
	StringValue
	BooleanValue
	NullValue
	EnumValue
	ListValue
	ObjectValue
)

// Value is a literal or variable reference usable as an argument or as a
// variable default. The payload field in use depends on Kind: Str carries
// the variable name, string payload or enum symbol; List and Object carry
// the composite forms. Values are immutable once built.
type Value[T text.Value] struct {
	Kind   ValueKind
	Int    int64
	Float  float64
	Str    T
	Bool   bool
	List   []Value[T]
	Object *Object[T]
}

// Object is the payload of an object literal. Entries are kept ordered by
// key, not by insertion, so serialization is reproducible no matter how the
// parser inserted them. Keys are unique.
type Object[T text.Value] struct {
	fields []ObjectField[T]
}

// ObjectField is one (name, value) entry of an object literal.
type ObjectField[T text.Value] struct {
	Name  T
	Value Value[T]
}

// NewObject builds an object literal from the given entries, deduplicating
// on key (last write wins) and ordering by key.
func NewObject[T text.Value](fields ...ObjectField[T]) *Object[T] {
	o := &Object[T]{}
	for _, f := range fields {
		o.Set(f.Name, f.Value)
	}
	return o
}

// Set inserts or replaces the entry for name, keeping key order.
func (o *Object[T]) Set(name T, v Value[T]) {
	i := sort.Search(len(o.fields), func(i int) bool {
		return text.Compare(o.fields[i].Name, name) >= 0
	})
	if i < len(o.fields) && o.fields[i].Name == name {
		o.fields[i].Value = v
		return
	}
	o.fields = append(o.fields, ObjectField[T]{})
	copy(o.fields[i+1:], o.fields[i:])
	o.fields[i] = ObjectField[T]{Name: name, Value: v}
}

// Get returns the value for name and whether it is present.
func (o *Object[T]) Get(name T) (Value[T], bool) {
	i := sort.Search(len(o.fields), func(i int) bool {
		return text.Compare(o.fields[i].Name, name) >= 0
	})
	if i < len(o.fields) && o.fields[i].Name == name {
		return o.fields[i].Value, true
	}
	return Value[T]{}, false
}

// Len returns the number of entries.
func (o *Object[T]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Fields returns the entries in key order. The returned slice is shared;
// callers must not mutate it.
func (o *Object[T]) Fields() []ObjectField[T] {
	if o == nil {
		return nil
	}
	return o.fields
}
