package language

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	gql "github.com/vektah/gqlparser/v2/ast"

	"github.com/gqlkit/queryjson/internal/ast"
	"github.com/gqlkit/queryjson/internal/text"
)

// Convert maps a gqlparser document onto the query tree.
//
// gqlparser splits a document into separate operation and fragment lists;
// the tree keeps definitions in source order, so they are merged back by
// source offset. An unnamed query with no variables and no directives is
// the anonymous shorthand and becomes a bare selection set.
func Convert[T text.Value](doc *gql.QueryDocument) (ast.Document[T], error) {
	type entry struct {
		start int
		def   ast.Definition[T]
	}
	entries := make([]entry, 0, len(doc.Operations)+len(doc.Fragments))

	for _, op := range doc.Operations {
		def, err := convertOperation[T](op)
		if err != nil {
			return ast.Document[T]{}, err
		}
		entries = append(entries, entry{start: posStart(op.Position), def: def})
	}
	for _, frag := range doc.Fragments {
		def, err := convertFragment[T](frag)
		if err != nil {
			return ast.Document[T]{}, err
		}
		entries = append(entries, entry{start: posStart(frag.Position), def: def})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].start < entries[j].start })

	out := ast.Document[T]{Definitions: make([]ast.Definition[T], len(entries))}
	for i, e := range entries {
		out.Definitions[i] = e.def
	}
	return out, nil
}

func convertOperation[T text.Value](op *gql.OperationDefinition) (ast.Definition[T], error) {
	ss, err := convertSelectionSet[T](op.SelectionSet)
	if err != nil {
		return nil, err
	}
	if op.Name == "" && op.Operation == gql.Query &&
		len(op.VariableDefinitions) == 0 && len(op.Directives) == 0 {
		return &ss, nil
	}

	dirs, err := convertDirectives[T](op.Directives)
	if err != nil {
		return nil, err
	}
	out := &ast.Operation[T]{
		Position:     pos(op.Position),
		Type:         ast.OperationType(op.Operation),
		Directives:   dirs,
		SelectionSet: ss,
	}
	if op.Name != "" {
		name := T(op.Name)
		out.Name = &name
	}
	for _, vd := range op.VariableDefinitions {
		conv := ast.VariableDefinition[T]{
			Position: pos(vd.Position),
			Name:     T(strings.TrimPrefix(vd.Variable, "$")),
			Type:     convertType[T](vd.Type),
		}
		if vd.DefaultValue != nil {
			dv, err := convertValue[T](vd.DefaultValue)
			if err != nil {
				return nil, err
			}
			conv.DefaultValue = &dv
		}
		out.VariableDefinitions = append(out.VariableDefinitions, conv)
	}
	return out, nil
}

func convertFragment[T text.Value](frag *gql.FragmentDefinition) (ast.Definition[T], error) {
	ss, err := convertSelectionSet[T](frag.SelectionSet)
	if err != nil {
		return nil, err
	}
	dirs, err := convertDirectives[T](frag.Directives)
	if err != nil {
		return nil, err
	}
	return &ast.FragmentDefinition[T]{
		Position:      pos(frag.Position),
		Name:          T(frag.Name),
		TypeCondition: ast.TypeCondition[T]{On: T(frag.TypeCondition)},
		Directives:    dirs,
		SelectionSet:  ss,
	}, nil
}

// convertType maps gqlparser's type reference (NamedType/Elem/NonNull) onto
// the wrapper-kind representation. gqlparser folds non-null into a flag on
// the wrapped type, so it becomes the outermost wrapper here.
func convertType[T text.Value](t *gql.Type) *ast.Type[T] {
	if t == nil {
		return nil
	}
	var out *ast.Type[T]
	if t.NamedType != "" {
		out = ast.NamedType(T(t.NamedType))
	} else {
		out = ast.ListType(convertType[T](t.Elem))
	}
	if t.NonNull {
		out = ast.NonNullType(out)
	}
	return out
}

func convertSelectionSet[T text.Value](set gql.SelectionSet) (ast.SelectionSet[T], error) {
	out := ast.SelectionSet[T]{}
	for _, sel := range set {
		conv, err := convertSelection[T](sel)
		if err != nil {
			return ast.SelectionSet[T]{}, err
		}
		out.Items = append(out.Items, conv)
	}
	// gqlparser keeps no position for the braces themselves; the first and
	// last selections bound the span for diagnostics.
	if len(set) > 0 {
		out.Span.Start = pos(selectionPosition(set[0]))
		out.Span.End = pos(selectionPosition(set[len(set)-1]))
	}
	return out, nil
}

func selectionPosition(sel gql.Selection) *gql.Position {
	switch s := sel.(type) {
	case *gql.Field:
		return s.Position
	case *gql.FragmentSpread:
		return s.Position
	case *gql.InlineFragment:
		return s.Position
	default:
		return nil
	}
}

func convertSelection[T text.Value](sel gql.Selection) (ast.Selection[T], error) {
	switch s := sel.(type) {
	case *gql.Field:
		args, err := convertArguments[T](s.Arguments)
		if err != nil {
			return nil, err
		}
		dirs, err := convertDirectives[T](s.Directives)
		if err != nil {
			return nil, err
		}
		ss, err := convertSelectionSet[T](s.SelectionSet)
		if err != nil {
			return nil, err
		}
		out := &ast.Field[T]{
			Position:     pos(s.Position),
			Name:         T(s.Name),
			Arguments:    args,
			Directives:   dirs,
			SelectionSet: ss,
		}
		// gqlparser defaults the alias to the field name.
		if s.Alias != "" && s.Alias != s.Name {
			alias := T(s.Alias)
			out.Alias = &alias
		}
		return out, nil
	case *gql.FragmentSpread:
		dirs, err := convertDirectives[T](s.Directives)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread[T]{
			Position:     pos(s.Position),
			FragmentName: T(s.Name),
			Directives:   dirs,
		}, nil
	case *gql.InlineFragment:
		dirs, err := convertDirectives[T](s.Directives)
		if err != nil {
			return nil, err
		}
		ss, err := convertSelectionSet[T](s.SelectionSet)
		if err != nil {
			return nil, err
		}
		out := &ast.InlineFragment[T]{
			Position:     pos(s.Position),
			Directives:   dirs,
			SelectionSet: ss,
		}
		if s.TypeCondition != "" {
			out.TypeCondition = &ast.TypeCondition[T]{On: T(s.TypeCondition)}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("language: unknown selection type %T", sel)
	}
}

func convertDirectives[T text.Value](dirs gql.DirectiveList) ([]ast.Directive[T], error) {
	var out []ast.Directive[T]
	for _, d := range dirs {
		args, err := convertArguments[T](d.Arguments)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Directive[T]{
			Position:  pos(d.Position),
			Name:      T(d.Name),
			Arguments: args,
		})
	}
	return out, nil
}

func convertArguments[T text.Value](args gql.ArgumentList) ([]ast.Argument[T], error) {
	var out []ast.Argument[T]
	for _, a := range args {
		v, err := convertValue[T](a.Value)
		if err != nil {
			return nil, err
		}
		out = append(out, ast.Argument[T]{Name: T(a.Name), Value: v})
	}
	return out, nil
}

func convertValue[T text.Value](v *gql.Value) (ast.Value[T], error) {
	switch v.Kind {
	case gql.Variable:
		return ast.Value[T]{Kind: ast.Variable, Str: T(strings.TrimPrefix(v.Raw, "$"))}, nil
	case gql.IntValue:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return ast.Value[T]{}, fmt.Errorf("language: int literal %q: %w", v.Raw, err)
		}
		return ast.Value[T]{Kind: ast.IntValue, Int: n}, nil
	case gql.FloatValue:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return ast.Value[T]{}, fmt.Errorf("language: float literal %q: %w", v.Raw, err)
		}
		return ast.Value[T]{Kind: ast.FloatValue, Float: f}, nil
	case gql.StringValue, gql.BlockValue:
		return ast.Value[T]{Kind: ast.StringValue, Str: T(v.Raw)}, nil
	case gql.BooleanValue:
		return ast.Value[T]{Kind: ast.BooleanValue, Bool: v.Raw == "true"}, nil
	case gql.NullValue:
		return ast.Value[T]{Kind: ast.NullValue}, nil
	case gql.EnumValue:
		return ast.Value[T]{Kind: ast.EnumValue, Str: T(v.Raw)}, nil
	case gql.ListValue:
		out := ast.Value[T]{Kind: ast.ListValue, List: []ast.Value[T]{}}
		for _, c := range v.Children {
			item, err := convertValue[T](c.Value)
			if err != nil {
				return ast.Value[T]{}, err
			}
			out.List = append(out.List, item)
		}
		return out, nil
	case gql.ObjectValue:
		obj := ast.NewObject[T]()
		for _, c := range v.Children {
			fv, err := convertValue[T](c.Value)
			if err != nil {
				return ast.Value[T]{}, err
			}
			obj.Set(T(c.Name), fv)
		}
		return ast.Value[T]{Kind: ast.ObjectValue, Object: obj}, nil
	default:
		return ast.Value[T]{}, fmt.Errorf("language: unknown value kind %d", v.Kind)
	}
}

func pos(p *gql.Position) ast.Pos {
	if p == nil {
		return ast.Pos{}
	}
	return ast.Pos{Line: p.Line, Column: p.Column}
}

func posStart(p *gql.Position) int {
	if p == nil {
		return 0
	}
	return p.Start
}
