package ast

import (
	"strings"

	"github.com/gqlkit/queryjson/internal/text"
)

// TypeKind is the shape of a type reference.
type TypeKind string

const (
	TypeKindNamed   TypeKind = "NAMED"
	TypeKindList    TypeKind = "LIST"
	TypeKindNonNull TypeKind = "NON_NULL"
)

// Type is a GraphQL type reference (e.g. String, [String!], String!) as it
// appears in a variable definition. The type system that defines the named
// types lives outside this package; only the reference shape is modeled.
type Type[T text.Value] struct {
	Kind   TypeKind
	OfType *Type[T]
	Named  T
}

func NamedType[T text.Value](name T) *Type[T] {
	return &Type[T]{Kind: TypeKindNamed, Named: name}
}

func ListType[T text.Value](of *Type[T]) *Type[T] {
	return &Type[T]{Kind: TypeKindList, OfType: of}
}

func NonNullType[T text.Value](of *Type[T]) *Type[T] {
	return &Type[T]{Kind: TypeKindNonNull, OfType: of}
}

func (t *Type[T]) String() string {
	if t == nil {
		return "Unknown"
	}
	switch t.Kind {
	case TypeKindNamed:
		return string(t.Named)
	case TypeKindList:
		return "[" + t.OfType.String() + "]"
	case TypeKindNonNull:
		inner := t.OfType.String()
		if strings.HasSuffix(inner, "!") {
			return inner
		}
		return inner + "!"
	default:
		return "Unknown"
	}
}
