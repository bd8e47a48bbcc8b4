package ast

import "github.com/gqlkit/queryjson/internal/text"

// EqualDocuments reports structural equality of two documents, including
// positions. The two sides may use different text instantiations; text
// values compare by content, which is what lets a borrowing tree be checked
// against its owned copy.
func EqualDocuments[A, B text.Value](a Document[A], b Document[B]) bool {
	if len(a.Definitions) != len(b.Definitions) {
		return false
	}
	for i := range a.Definitions {
		if !equalDefinition(a.Definitions[i], b.Definitions[i]) {
			return false
		}
	}
	return true
}

// EqualValues reports structural equality of two literal values.
func EqualValues[A, B text.Value](a Value[A], b Value[B]) bool {
	return equalValue(a, b)
}

func equalDefinition[A, B text.Value](a Definition[A], b Definition[B]) bool {
	switch av := a.(type) {
	case *SelectionSet[A]:
		bv, ok := b.(*SelectionSet[B])
		return ok && equalSelectionSet(*av, *bv)
	case *Operation[A]:
		bv, ok := b.(*Operation[B])
		return ok &&
			av.Position == bv.Position &&
			av.Type == bv.Type &&
			equalOptional(av.Name, bv.Name) &&
			equalVariableDefinitions(av.VariableDefinitions, bv.VariableDefinitions) &&
			equalDirectives(av.Directives, bv.Directives) &&
			equalSelectionSet(av.SelectionSet, bv.SelectionSet)
	case *FragmentDefinition[A]:
		bv, ok := b.(*FragmentDefinition[B])
		return ok &&
			av.Position == bv.Position &&
			string(av.Name) == string(bv.Name) &&
			string(av.TypeCondition.On) == string(bv.TypeCondition.On) &&
			equalDirectives(av.Directives, bv.Directives) &&
			equalSelectionSet(av.SelectionSet, bv.SelectionSet)
	default:
		return false
	}
}

func equalSelectionSet[A, B text.Value](a SelectionSet[A], b SelectionSet[B]) bool {
	if a.Span != b.Span || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !equalSelection(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

func equalSelection[A, B text.Value](a Selection[A], b Selection[B]) bool {
	switch av := a.(type) {
	case *Field[A]:
		bv, ok := b.(*Field[B])
		return ok &&
			av.Position == bv.Position &&
			equalOptional(av.Alias, bv.Alias) &&
			string(av.Name) == string(bv.Name) &&
			equalArguments(av.Arguments, bv.Arguments) &&
			equalDirectives(av.Directives, bv.Directives) &&
			equalSelectionSet(av.SelectionSet, bv.SelectionSet)
	case *FragmentSpread[A]:
		bv, ok := b.(*FragmentSpread[B])
		return ok &&
			av.Position == bv.Position &&
			string(av.FragmentName) == string(bv.FragmentName) &&
			equalDirectives(av.Directives, bv.Directives)
	case *InlineFragment[A]:
		bv, ok := b.(*InlineFragment[B])
		if !ok || av.Position != bv.Position {
			return false
		}
		if (av.TypeCondition == nil) != (bv.TypeCondition == nil) {
			return false
		}
		if av.TypeCondition != nil && string(av.TypeCondition.On) != string(bv.TypeCondition.On) {
			return false
		}
		return equalDirectives(av.Directives, bv.Directives) &&
			equalSelectionSet(av.SelectionSet, bv.SelectionSet)
	default:
		return false
	}
}

func equalVariableDefinitions[A, B text.Value](a []VariableDefinition[A], b []VariableDefinition[B]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Position != b[i].Position ||
			string(a[i].Name) != string(b[i].Name) ||
			!equalType(a[i].Type, b[i].Type) {
			return false
		}
		if (a[i].DefaultValue == nil) != (b[i].DefaultValue == nil) {
			return false
		}
		if a[i].DefaultValue != nil && !equalValue(*a[i].DefaultValue, *b[i].DefaultValue) {
			return false
		}
	}
	return true
}

func equalType[A, B text.Value](a *Type[A], b *Type[B]) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind == b.Kind &&
		string(a.Named) == string(b.Named) &&
		equalType(a.OfType, b.OfType)
}

func equalDirectives[A, B text.Value](a []Directive[A], b []Directive[B]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Position != b[i].Position ||
			string(a[i].Name) != string(b[i].Name) ||
			!equalArguments(a[i].Arguments, b[i].Arguments) {
			return false
		}
	}
	return true
}

func equalArguments[A, B text.Value](a []Argument[A], b []Argument[B]) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if string(a[i].Name) != string(b[i].Name) || !equalValue(a[i].Value, b[i].Value) {
			return false
		}
	}
	return true
}

func equalValue[A, B text.Value](a Value[A], b Value[B]) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case IntValue:
		return a.Int == b.Int
	case FloatValue:
		return a.Float == b.Float
	case BooleanValue:
		return a.Bool == b.Bool
	case NullValue:
		return true
	case Variable, StringValue, EnumValue:
		return string(a.Str) == string(b.Str)
	case ListValue:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !equalValue(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case ObjectValue:
		af, bf := a.Object.Fields(), b.Object.Fields()
		if len(af) != len(bf) {
			return false
		}
		for i := range af {
			if string(af[i].Name) != string(bf[i].Name) || !equalValue(af[i].Value, bf[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func equalOptional[A, B text.Value](a *A, b *B) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return string(*a) == string(*b)
}
