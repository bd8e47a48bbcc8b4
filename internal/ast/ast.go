// Package ast holds the in-memory representation of a parsed GraphQL
// query-language document: operations, fragments, selections, directives and
// literal values.
//
// The tree is generic over text.Value, so the same node definitions serve
// both as a zero-copy view into the source buffer (text.Borrowed) and as a
// buffer-independent owned tree (text.Owned). Nodes are plain data: an
// external parser builds them once, with positions attached, and they are
// immutable afterwards. Positions exist for diagnostics only and never
// appear in the serialized form.
package ast

import "github.com/gqlkit/queryjson/internal/text"

// Pos is a line/column location in the query source.
type Pos struct {
	Line   int
	Column int
}

// Span is the source range covered by a selection set.
type Span struct {
	Start Pos
	End   Pos
}

// Document is the root of a parsed query document. Definition order is the
// source order and is preserved through serialization.
type Document[T text.Value] struct {
	Definitions []Definition[T]
}

// Definition is one top-level entry of a document: an operation or a
// fragment declaration.
type Definition[T text.Value] interface {
	isDefinition(T)
}

// OperationDefinition is either a bare selection set (the anonymous query
// shorthand "{ field }") or a full operation with an operation type.
type OperationDefinition[T text.Value] interface {
	Definition[T]
	isOperationDefinition(T)
}

// OperationType discriminates query, mutation and subscription operations.
type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

// Operation is a query, mutation or subscription with an optional name.
type Operation[T text.Value] struct {
	Position            Pos
	Type                OperationType
	Name                *T
	VariableDefinitions []VariableDefinition[T]
	Directives          []Directive[T]
	SelectionSet        SelectionSet[T]
}

func (*Operation[T]) isDefinition(T)          {}
func (*Operation[T]) isOperationDefinition(T) {}

// FragmentDefinition declares a named fragment with a type condition.
type FragmentDefinition[T text.Value] struct {
	Position      Pos
	Name          T
	TypeCondition TypeCondition[T]
	Directives    []Directive[T]
	SelectionSet  SelectionSet[T]
}

func (*FragmentDefinition[T]) isDefinition(T) {}

// SelectionSet is an ordered list of selections. The span covers the braces
// in the source and is kept for diagnostics only.
type SelectionSet[T text.Value] struct {
	Span  Span
	Items []Selection[T]
}

func (*SelectionSet[T]) isDefinition(T)          {}
func (*SelectionSet[T]) isOperationDefinition(T) {}

// Selection is one entry of a selection set.
type Selection[T text.Value] interface {
	isSelection(T)
}

// Field selects a single field, optionally aliased, with arguments in
// declaration order.
type Field[T text.Value] struct {
	Position     Pos
	Alias        *T
	Name         T
	Arguments    []Argument[T]
	Directives   []Directive[T]
	SelectionSet SelectionSet[T]
}

func (*Field[T]) isSelection(T) {}

// FragmentSpread references a named fragment ("...name").
type FragmentSpread[T text.Value] struct {
	Position     Pos
	FragmentName T
	Directives   []Directive[T]
}

func (*FragmentSpread[T]) isSelection(T) {}

// InlineFragment is an unnamed fragment, optionally constrained to a type.
type InlineFragment[T text.Value] struct {
	Position      Pos
	TypeCondition *TypeCondition[T]
	Directives    []Directive[T]
	SelectionSet  SelectionSet[T]
}

func (*InlineFragment[T]) isSelection(T) {}

// VariableDefinition declares one operation variable with its type and an
// optional default.
type VariableDefinition[T text.Value] struct {
	Position     Pos
	Name         T
	Type         *Type[T]
	DefaultValue *Value[T]
}

// Directive is a named annotation with arguments in declaration order.
type Directive[T text.Value] struct {
	Position  Pos
	Name      T
	Arguments []Argument[T]
}

// Argument is one (name, value) pair of a field or directive argument list.
// Argument lists stay ordered; they are never collapsed into a map.
type Argument[T text.Value] struct {
	Name  T
	Value Value[T]
}

// TypeCondition names the type a fragment applies to ("on Name").
type TypeCondition[T text.Value] struct {
	On T
}
