package astjson

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gqlkit/queryjson/internal/ast"
	"github.com/gqlkit/queryjson/internal/text"
)

type owned = text.Owned

func intVal(n int64) ast.Value[owned] {
	return ast.Value[owned]{Kind: ast.IntValue, Int: n}
}

const nameField = `{"kind":"Name","value":"field"}`

func TestAnonymousOperationEndToEnd(t *testing.T) {
	// { field(x: 1) { sub } }
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Span: ast.Span{Start: ast.Pos{Line: 1, Column: 1}, End: ast.Pos{Line: 1, Column: 23}},
				Items: []ast.Selection[owned]{
					&ast.Field[owned]{
						Position:  ast.Pos{Line: 1, Column: 3},
						Name:      "field",
						Arguments: []ast.Argument[owned]{{Name: "x", Value: intVal(1)}},
						SelectionSet: ast.SelectionSet[owned]{
							Items: []ast.Selection[owned]{
								&ast.Field[owned]{Name: "sub"},
							},
						},
					},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)

	want := `{"definitions":[` +
		`{"kind":"OperationDefinition","operation":"selectionSet","selections":[` +
		`{"kind":"Field","name":` + nameField + `,` +
		`"arguments":[{"name":{"kind":"Name","value":"x"},"value":1}],` +
		`"directives":[],` +
		`"selectionSet":{"selections":[` +
		`{"kind":"Field","name":{"kind":"Name","value":"sub"},"arguments":[],"directives":[],"selectionSet":{"selections":[]}}` +
		`]}}]}]}`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("canonical JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalIsDeterministic(t *testing.T) {
	name := owned("Q")
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.Operation[owned]{
				Type: ast.Query,
				Name: &name,
				SelectionSet: ast.SelectionSet[owned]{
					Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "field"}},
				},
			},
		},
	}

	first, err := Marshal(doc)
	require.NoError(t, err)
	second, err := Marshal(doc)
	require.NoError(t, err)
	require.Equal(t, string(first), string(second))
}

func TestNamedQueryDiscriminators(t *testing.T) {
	name := owned("GetUser")
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.Operation[owned]{
				Type: ast.Query,
				Name: &name,
				SelectionSet: ast.SelectionSet[owned]{
					Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "user"}},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(b), `"kind":"OperationDefinition"`)
	require.Contains(t, string(b), `"operation":"query"`)
	require.Contains(t, string(b), `"name":{"kind":"Name","value":"GetUser"}`)
	require.Contains(t, string(b), `"variableDefinitions":[]`)
}

func TestMutationAndSubscriptionTags(t *testing.T) {
	for _, opType := range []ast.OperationType{ast.Mutation, ast.Subscription} {
		doc := ast.Document[owned]{
			Definitions: []ast.Definition[owned]{
				&ast.Operation[owned]{
					Type: opType,
					SelectionSet: ast.SelectionSet[owned]{
						Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "field"}},
					},
				},
			},
		}
		b, err := Marshal(doc)
		require.NoError(t, err)
		require.Contains(t, string(b), `"operation":"`+string(opType)+`"`)
	}
}

func TestAliasOmittedWhenAbsent(t *testing.T) {
	withoutAlias := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "field"}},
			},
		},
	}
	b, err := Marshal(withoutAlias)
	require.NoError(t, err)
	require.NotContains(t, string(b), `"alias"`)

	alias := owned("a")
	withAlias := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{&ast.Field[owned]{Alias: &alias, Name: "field"}},
			},
		},
	}
	b, err = Marshal(withAlias)
	require.NoError(t, err)
	require.Contains(t, string(b), `"alias":{"kind":"Name","value":"a"}`)
}

func TestArgumentOrderPreserved(t *testing.T) {
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{
					&ast.Field[owned]{
						Name: "field",
						Arguments: []ast.Argument[owned]{
							{Name: "x", Value: intVal(1)},
							{Name: "y", Value: intVal(2)},
						},
					},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	want := `"arguments":[` +
		`{"name":{"kind":"Name","value":"x"},"value":1},` +
		`{"name":{"kind":"Name","value":"y"},"value":2}]`
	require.Contains(t, string(b), want)
}

func TestObjectValueKeyOrder(t *testing.T) {
	obj := ast.NewObject[owned]()
	obj.Set("b", intVal(1))
	obj.Set("a", intVal(2))

	b, err := MarshalValue(ast.Value[owned]{Kind: ast.ObjectValue, Object: obj})
	require.NoError(t, err)
	require.Equal(t, `{"a":2,"b":1}`, string(b))
}

func TestValueScalars(t *testing.T) {
	cases := []struct {
		name string
		val  ast.Value[owned]
		want string
	}{
		{"null", ast.Value[owned]{Kind: ast.NullValue}, `null`},
		{"true", ast.Value[owned]{Kind: ast.BooleanValue, Bool: true}, `true`},
		{"false", ast.Value[owned]{Kind: ast.BooleanValue}, `false`},
		{"int", intVal(-42), `-42`},
		{"float", ast.Value[owned]{Kind: ast.FloatValue, Float: 1.5}, `1.5`},
		{"string", ast.Value[owned]{Kind: ast.StringValue, Str: `say "hi"`}, `"say \"hi\""`},
		{"enum", ast.Value[owned]{Kind: ast.EnumValue, Str: "NORTH"}, `"NORTH"`},
		{"variable", ast.Value[owned]{Kind: ast.Variable, Str: "id"}, `"$id"`},
		{"list", ast.Value[owned]{Kind: ast.ListValue, List: []ast.Value[owned]{intVal(1), intVal(2)}}, `[1,2]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b, err := MarshalValue(tc.val)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(b))
		})
	}
}

func TestFragmentDefinitionShape(t *testing.T) {
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.FragmentDefinition[owned]{
				Position:      ast.Pos{Line: 3, Column: 1},
				Name:          "userFields",
				TypeCondition: ast.TypeCondition[owned]{On: "User"},
				SelectionSet: ast.SelectionSet[owned]{
					Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "id"}},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(b), `"kind":"FragmentDefinition"`)
	require.Contains(t, string(b), `"typeCondition":{"kind":"NamedType","value":{"kind":"Name","value":"User"}}`)
	// Positions never leak into the output.
	require.NotContains(t, string(b), `"position"`)
	require.NotContains(t, string(b), `"span"`)
}

func TestInlineFragmentAndSpread(t *testing.T) {
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{
					&ast.InlineFragment[owned]{
						TypeCondition: &ast.TypeCondition[owned]{On: "Droid"},
						SelectionSet: ast.SelectionSet[owned]{
							Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "primaryFunction"}},
						},
					},
					&ast.InlineFragment[owned]{
						SelectionSet: ast.SelectionSet[owned]{
							Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "name"}},
						},
					},
					&ast.FragmentSpread[owned]{FragmentName: "userFields"},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(b), `{"kind":"InlineFragment","typeCondition":{"kind":"NamedType","value":{"kind":"Name","value":"Droid"}}`)
	require.Contains(t, string(b), `{"kind":"InlineFragment","typeCondition":null`)
	require.Contains(t, string(b), `{"kind":"FragmentSpread","fragmentName":{"kind":"Name","value":"userFields"},"directives":[]}`)
}

func TestVariableDefinitions(t *testing.T) {
	def := ast.Value[owned]{Kind: ast.IntValue, Int: 10}
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.Operation[owned]{
				Type: ast.Query,
				VariableDefinitions: []ast.VariableDefinition[owned]{
					{Name: "first", Type: ast.NonNullType(ast.NamedType[owned]("Int")), DefaultValue: &def},
					{Name: "after", Type: ast.NamedType[owned]("String")},
				},
				SelectionSet: ast.SelectionSet[owned]{
					Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "field"}},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(b), `{"name":{"kind":"Name","value":"first"},"type":"Int!","defaultValue":10}`)
	require.Contains(t, string(b), `{"name":{"kind":"Name","value":"after"},"type":"String","defaultValue":null}`)
}

func TestDirectivesOnFieldAndOperation(t *testing.T) {
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{
					&ast.Field[owned]{
						Name: "field",
						Directives: []ast.Directive[owned]{
							{Name: "include", Arguments: []ast.Argument[owned]{
								{Name: "if", Value: ast.Value[owned]{Kind: ast.Variable, Str: "cond"}},
							}},
						},
					},
				},
			},
		},
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(b), `"directives":[{"name":{"kind":"Name","value":"include"},"arguments":[{"name":{"kind":"Name","value":"if"},"value":"$cond"}]}]`)
}

func TestFloatEncodingErrorPropagates(t *testing.T) {
	v := ast.Value[owned]{Kind: ast.FloatValue, Float: nan()}
	_, err := MarshalValue(v)
	require.Error(t, err)
	require.Contains(t, err.Error(), "json")
}

func nan() float64 {
	zero := 0.0
	return zero / zero
}

func TestMarshalIndent(t *testing.T) {
	doc := ast.Document[owned]{
		Definitions: []ast.Definition[owned]{
			&ast.SelectionSet[owned]{
				Items: []ast.Selection[owned]{&ast.Field[owned]{Name: "field"}},
			},
		},
	}

	plain, err := Marshal(doc)
	require.NoError(t, err)
	pretty, err := MarshalIndent(doc, "", "  ")
	require.NoError(t, err)
	require.NotEqual(t, string(plain), string(pretty))
	require.JSONEq(t, string(plain), string(pretty))
}

func TestBorrowedTreeSerializesIdentically(t *testing.T) {
	source := "{ field }"
	borrowed := ast.Document[text.Borrowed]{
		Definitions: []ast.Definition[text.Borrowed]{
			&ast.SelectionSet[text.Borrowed]{
				Items: []ast.Selection[text.Borrowed]{
					&ast.Field[text.Borrowed]{Name: text.Borrowed(source[2:7])},
				},
			},
		},
	}

	got, err := Marshal(borrowed)
	require.NoError(t, err)
	want, err := Marshal(ast.ToOwned(borrowed))
	require.NoError(t, err)
	require.Equal(t, string(want), string(got))
}
