package ast

import "github.com/gqlkit/queryjson/internal/text"

// Detach declares a document independent of the buffer it was parsed from.
//
// It is only defined for owned trees: text.Owned values hold no view into
// the source, so there is nothing to copy and the function is the identity.
// A Document[text.Borrowed] has no Detach path at all — widening a
// borrowing tree would leave it aliasing a buffer the caller believes it
// has let go of, so the signature makes that unwritable instead of
// checking for it at runtime.
func Detach(d Document[text.Owned]) Document[text.Owned] {
	return d
}

// ToOwned deep-copies a borrowing document into one whose text no longer
// references the source buffer. This is the single allocation path between
// the two text forms; positions and structure carry over unchanged.
func ToOwned(d Document[text.Borrowed]) Document[text.Owned] {
	out := Document[text.Owned]{Definitions: make([]Definition[text.Owned], len(d.Definitions))}
	for i, def := range d.Definitions {
		out.Definitions[i] = ownDefinition(def)
	}
	return out
}

func ownDefinition(def Definition[text.Borrowed]) Definition[text.Owned] {
	switch d := def.(type) {
	case *SelectionSet[text.Borrowed]:
		ss := ownSelectionSet(*d)
		return &ss
	case *Operation[text.Borrowed]:
		return &Operation[text.Owned]{
			Position:            d.Position,
			Type:                d.Type,
			Name:                ownOptional(d.Name),
			VariableDefinitions: ownVariableDefinitions(d.VariableDefinitions),
			Directives:          ownDirectives(d.Directives),
			SelectionSet:        ownSelectionSet(d.SelectionSet),
		}
	case *FragmentDefinition[text.Borrowed]:
		return &FragmentDefinition[text.Owned]{
			Position:      d.Position,
			Name:          text.Own(d.Name),
			TypeCondition: TypeCondition[text.Owned]{On: text.Own(d.TypeCondition.On)},
			Directives:    ownDirectives(d.Directives),
			SelectionSet:  ownSelectionSet(d.SelectionSet),
		}
	default:
		return nil
	}
}

func ownSelectionSet(ss SelectionSet[text.Borrowed]) SelectionSet[text.Owned] {
	out := SelectionSet[text.Owned]{Span: ss.Span}
	if ss.Items != nil {
		out.Items = make([]Selection[text.Owned], len(ss.Items))
		for i, sel := range ss.Items {
			out.Items[i] = ownSelection(sel)
		}
	}
	return out
}

func ownSelection(sel Selection[text.Borrowed]) Selection[text.Owned] {
	switch s := sel.(type) {
	case *Field[text.Borrowed]:
		return &Field[text.Owned]{
			Position:     s.Position,
			Alias:        ownOptional(s.Alias),
			Name:         text.Own(s.Name),
			Arguments:    ownArguments(s.Arguments),
			Directives:   ownDirectives(s.Directives),
			SelectionSet: ownSelectionSet(s.SelectionSet),
		}
	case *FragmentSpread[text.Borrowed]:
		return &FragmentSpread[text.Owned]{
			Position:     s.Position,
			FragmentName: text.Own(s.FragmentName),
			Directives:   ownDirectives(s.Directives),
		}
	case *InlineFragment[text.Borrowed]:
		out := &InlineFragment[text.Owned]{
			Position:     s.Position,
			Directives:   ownDirectives(s.Directives),
			SelectionSet: ownSelectionSet(s.SelectionSet),
		}
		if s.TypeCondition != nil {
			out.TypeCondition = &TypeCondition[text.Owned]{On: text.Own(s.TypeCondition.On)}
		}
		return out
	default:
		return nil
	}
}

func ownVariableDefinitions(defs []VariableDefinition[text.Borrowed]) []VariableDefinition[text.Owned] {
	if defs == nil {
		return nil
	}
	out := make([]VariableDefinition[text.Owned], len(defs))
	for i, vd := range defs {
		out[i] = VariableDefinition[text.Owned]{
			Position: vd.Position,
			Name:     text.Own(vd.Name),
			Type:     ownType(vd.Type),
		}
		if vd.DefaultValue != nil {
			v := ownValue(*vd.DefaultValue)
			out[i].DefaultValue = &v
		}
	}
	return out
}

func ownType(t *Type[text.Borrowed]) *Type[text.Owned] {
	if t == nil {
		return nil
	}
	return &Type[text.Owned]{
		Kind:   t.Kind,
		OfType: ownType(t.OfType),
		Named:  text.Own(t.Named),
	}
}

func ownDirectives(dirs []Directive[text.Borrowed]) []Directive[text.Owned] {
	if dirs == nil {
		return nil
	}
	out := make([]Directive[text.Owned], len(dirs))
	for i, d := range dirs {
		out[i] = Directive[text.Owned]{
			Position:  d.Position,
			Name:      text.Own(d.Name),
			Arguments: ownArguments(d.Arguments),
		}
	}
	return out
}

func ownArguments(args []Argument[text.Borrowed]) []Argument[text.Owned] {
	if args == nil {
		return nil
	}
	out := make([]Argument[text.Owned], len(args))
	for i, a := range args {
		out[i] = Argument[text.Owned]{Name: text.Own(a.Name), Value: ownValue(a.Value)}
	}
	return out
}

func ownValue(v Value[text.Borrowed]) Value[text.Owned] {
	out := Value[text.Owned]{
		Kind:  v.Kind,
		Int:   v.Int,
		Float: v.Float,
		Str:   text.Own(v.Str),
		Bool:  v.Bool,
	}
	if v.List != nil {
		out.List = make([]Value[text.Owned], len(v.List))
		for i, item := range v.List {
			out.List[i] = ownValue(item)
		}
	}
	if v.Object != nil {
		obj := &Object[text.Owned]{}
		for _, f := range v.Object.Fields() {
			obj.Set(text.Own(f.Name), ownValue(f.Value))
		}
		out.Object = obj
	}
	return out
}

func ownOptional(v *text.Borrowed) *text.Owned {
	if v == nil {
		return nil
	}
	o := text.Own(*v)
	return &o
}
