// Package astjson serializes a query document into the reference grammar's
// canonical JSON shape.
//
// The shape rules are the external contract and take precedence over
// whatever a struct-tag based encoding would produce: tagged unions carry a
// "kind" (or "operation") discriminator merged into the node object, keys
// are camelCase, Name values are wrapped as {"kind":"Name","value":...},
// absent optional names are omitted rather than null, argument lists keep
// declaration order, object literals emit in key order, and source
// positions never appear.
package astjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gqlkit/queryjson/internal/ast"
	"github.com/gqlkit/queryjson/internal/text"
)

// Marshal serializes doc. Encoding errors from encoding/json (e.g. a NaN
// float literal) are returned verbatim.
func Marshal[T text.Value](doc ast.Document[T]) ([]byte, error) {
	var e encoder[T]
	if err := e.document(doc); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

// MarshalIndent is Marshal with the output re-indented for display.
func MarshalIndent[T text.Value](doc ast.Document[T], prefix, indent string) ([]byte, error) {
	b, err := Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, prefix, indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalValue serializes a single literal value.
func MarshalValue[T text.Value](v ast.Value[T]) ([]byte, error) {
	var e encoder[T]
	if err := e.value(v); err != nil {
		return nil, err
	}
	return e.buf.Bytes(), nil
}

type encoder[T text.Value] struct {
	buf bytes.Buffer
}

func (e *encoder[T]) document(d ast.Document[T]) error {
	e.buf.WriteString(`{"definitions":[`)
	for i, def := range d.Definitions {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.definition(def); err != nil {
			return err
		}
	}
	e.buf.WriteString(`]}`)
	return nil
}

func (e *encoder[T]) definition(def ast.Definition[T]) error {
	switch d := def.(type) {
	case ast.OperationDefinition[T]:
		e.buf.WriteString(`{"kind":"OperationDefinition",`)
		if err := e.operation(d); err != nil {
			return err
		}
	case *ast.FragmentDefinition[T]:
		e.buf.WriteString(`{"kind":"FragmentDefinition","name":`)
		if err := e.name(d.Name); err != nil {
			return err
		}
		e.buf.WriteString(`,"typeCondition":`)
		if err := e.typeCondition(d.TypeCondition); err != nil {
			return err
		}
		e.buf.WriteString(`,"directives":`)
		if err := e.directives(d.Directives); err != nil {
			return err
		}
		e.buf.WriteString(`,"selectionSet":`)
		if err := e.selectionSet(d.SelectionSet); err != nil {
			return err
		}
	default:
		return fmt.Errorf("astjson: unknown definition type %T", def)
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) operation(op ast.OperationDefinition[T]) error {
	switch o := op.(type) {
	case *ast.SelectionSet[T]:
		// Anonymous query shorthand: only the tag and the selections.
		e.buf.WriteString(`"operation":"selectionSet","selections":`)
		return e.selections(o.Items)
	case *ast.Operation[T]:
		e.buf.WriteString(`"operation":`)
		if err := e.str(string(o.Type)); err != nil {
			return err
		}
		if o.Name != nil {
			e.buf.WriteString(`,"name":`)
			if err := e.name(*o.Name); err != nil {
				return err
			}
		}
		e.buf.WriteString(`,"variableDefinitions":[`)
		for i, vd := range o.VariableDefinitions {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.variableDefinition(vd); err != nil {
				return err
			}
		}
		e.buf.WriteString(`],"directives":`)
		if err := e.directives(o.Directives); err != nil {
			return err
		}
		e.buf.WriteString(`,"selectionSet":`)
		return e.selectionSet(o.SelectionSet)
	default:
		return fmt.Errorf("astjson: unknown operation type %T", op)
	}
}

func (e *encoder[T]) selectionSet(ss ast.SelectionSet[T]) error {
	e.buf.WriteString(`{"selections":`)
	if err := e.selections(ss.Items); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) selections(items []ast.Selection[T]) error {
	e.buf.WriteByte('[')
	for i, sel := range items {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		if err := e.selection(sel); err != nil {
			return err
		}
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder[T]) selection(sel ast.Selection[T]) error {
	switch s := sel.(type) {
	case *ast.Field[T]:
		e.buf.WriteString(`{"kind":"Field",`)
		if s.Alias != nil {
			e.buf.WriteString(`"alias":`)
			if err := e.name(*s.Alias); err != nil {
				return err
			}
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(`"name":`)
		if err := e.name(s.Name); err != nil {
			return err
		}
		e.buf.WriteString(`,"arguments":`)
		if err := e.arguments(s.Arguments); err != nil {
			return err
		}
		e.buf.WriteString(`,"directives":`)
		if err := e.directives(s.Directives); err != nil {
			return err
		}
		e.buf.WriteString(`,"selectionSet":`)
		if err := e.selectionSet(s.SelectionSet); err != nil {
			return err
		}
	case *ast.FragmentSpread[T]:
		e.buf.WriteString(`{"kind":"FragmentSpread","fragmentName":`)
		if err := e.name(s.FragmentName); err != nil {
			return err
		}
		e.buf.WriteString(`,"directives":`)
		if err := e.directives(s.Directives); err != nil {
			return err
		}
	case *ast.InlineFragment[T]:
		e.buf.WriteString(`{"kind":"InlineFragment","typeCondition":`)
		if s.TypeCondition == nil {
			e.buf.WriteString(`null`)
		} else if err := e.typeCondition(*s.TypeCondition); err != nil {
			return err
		}
		e.buf.WriteString(`,"directives":`)
		if err := e.directives(s.Directives); err != nil {
			return err
		}
		e.buf.WriteString(`,"selectionSet":`)
		if err := e.selectionSet(s.SelectionSet); err != nil {
			return err
		}
	default:
		return fmt.Errorf("astjson: unknown selection type %T", sel)
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) variableDefinition(vd ast.VariableDefinition[T]) error {
	e.buf.WriteString(`{"name":`)
	if err := e.name(vd.Name); err != nil {
		return err
	}
	e.buf.WriteString(`,"type":`)
	if err := e.str(vd.Type.String()); err != nil {
		return err
	}
	e.buf.WriteString(`,"defaultValue":`)
	if vd.DefaultValue == nil {
		e.buf.WriteString(`null`)
	} else if err := e.value(*vd.DefaultValue); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) directives(dirs []ast.Directive[T]) error {
	e.buf.WriteByte('[')
	for i, d := range dirs {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(`{"name":`)
		if err := e.name(d.Name); err != nil {
			return err
		}
		e.buf.WriteString(`,"arguments":`)
		if err := e.arguments(d.Arguments); err != nil {
			return err
		}
		e.buf.WriteByte('}')
	}
	e.buf.WriteByte(']')
	return nil
}

// arguments keeps declaration order: the list is a sequence of
// {name, value} objects, never a map.
func (e *encoder[T]) arguments(args []ast.Argument[T]) error {
	e.buf.WriteByte('[')
	for i, a := range args {
		if i > 0 {
			e.buf.WriteByte(',')
		}
		e.buf.WriteString(`{"name":`)
		if err := e.name(a.Name); err != nil {
			return err
		}
		e.buf.WriteString(`,"value":`)
		if err := e.value(a.Value); err != nil {
			return err
		}
		e.buf.WriteByte('}')
	}
	e.buf.WriteByte(']')
	return nil
}

func (e *encoder[T]) typeCondition(tc ast.TypeCondition[T]) error {
	e.buf.WriteString(`{"kind":"NamedType","value":`)
	if err := e.name(tc.On); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) value(v ast.Value[T]) error {
	switch v.Kind {
	case ast.NullValue:
		e.buf.WriteString(`null`)
	case ast.BooleanValue:
		e.buf.WriteString(strconv.FormatBool(v.Bool))
	case ast.IntValue:
		e.buf.WriteString(strconv.FormatInt(v.Int, 10))
	case ast.FloatValue:
		b, err := json.Marshal(v.Float)
		if err != nil {
			return err
		}
		e.buf.Write(b)
	case ast.StringValue, ast.EnumValue:
		return e.str(string(v.Str))
	case ast.Variable:
		return e.str("$" + string(v.Str))
	case ast.ListValue:
		e.buf.WriteByte('[')
		for i, item := range v.List {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.value(item); err != nil {
				return err
			}
		}
		e.buf.WriteByte(']')
	case ast.ObjectValue:
		// Entries come out in key order regardless of how the parser
		// inserted them.
		e.buf.WriteByte('{')
		for i, f := range v.Object.Fields() {
			if i > 0 {
				e.buf.WriteByte(',')
			}
			if err := e.str(string(f.Name)); err != nil {
				return err
			}
			e.buf.WriteByte(':')
			if err := e.value(f.Value); err != nil {
				return err
			}
		}
		e.buf.WriteByte('}')
	default:
		return fmt.Errorf("astjson: unknown value kind %d", v.Kind)
	}
	return nil
}

// name writes the Name node wrapping used for every identifier position.
func (e *encoder[T]) name(v T) error {
	e.buf.WriteString(`{"kind":"Name","value":`)
	if err := e.str(string(v)); err != nil {
		return err
	}
	e.buf.WriteByte('}')
	return nil
}

func (e *encoder[T]) str(s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	e.buf.Write(b)
	return nil
}
