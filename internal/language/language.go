// Package language is the boundary to the external query parser. It wraps
// gqlparser and converts its document into this module's tree, which keeps
// the tree types themselves free of any parser dependency.
package language

import (
	gql "github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/gqlkit/queryjson/internal/ast"
	"github.com/gqlkit/queryjson/internal/text"
)

// ParseQuery parses a query-language document with gqlparser.
func ParseQuery(source string) (*gql.QueryDocument, error) {
	doc, err := parser.ParseQuery(&gql.Source{Input: source})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseQueryAs parses source and converts the result into a tree with the
// chosen text instantiation.
func ParseQueryAs[T text.Value](source string) (ast.Document[T], error) {
	doc, err := ParseQuery(source)
	if err != nil {
		return ast.Document[T]{}, err
	}
	return Convert[T](doc)
}
