package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNode_Validate_Valid(t *testing.T) {
	require.NoError(t, sampleNode().Validate())
}

func TestNode_Validate_Errors(t *testing.T) {
	tests := []struct {
		name     string
		node     Node
		wantPath string
	}{
		{
			name:     "missing id",
			node:     Node{Type: TypeNameObject, Properties: map[string]Property{"a": String().Build()}},
			wantPath: "id",
		},
		{
			name:     "not an object",
			node:     Node{ID: "n", Type: TypeNameString, Properties: map[string]Property{"a": String().Build()}},
			wantPath: "n.type",
		},
		{
			name:     "no properties",
			node:     NewNode("n").Build(),
			wantPath: "n.properties",
		},
		{
			name:     "empty property key",
			node:     NewNode("n").Property("", String().Build()).Build(),
			wantPath: "n.properties",
		},
		{
			name:     "unknown property type",
			node:     NewNode("n").Property("n.x", NewBuilder().Type("color").Build()).Build(),
			wantPath: "n.x.type",
		},
		{
			name:     "default outside enum",
			node:     NewNode("n").Property("n.x", StringEnum("a", "b").Default("c").Build()).Build(),
			wantPath: "n.x.default",
		},
		{
			name:     "default of wrong type",
			node:     NewNode("n").Property("n.x", String().Default(3).Build()).Build(),
			wantPath: "n.x.default",
		},
		{
			name:     "enum value of wrong type",
			node:     NewNode("n").Property("n.x", String().Enum("a", 2).Build()).Build(),
			wantPath: "n.x.enum[1]",
		},
		{
			name:     "duplicate enum value",
			node:     NewNode("n").Property("n.x", StringEnum("a", "b", "a").Build()).Build(),
			wantPath: "n.x.enum[2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Validate()
			require.Error(t, err)

			var verrs *ValidationErrors
			require.True(t, errors.As(err, &verrs))
			assert.NotEmpty(t, verrs.ErrorsForPath(tt.wantPath), "errors: %v", verrs)
		})
	}
}

func TestNode_Validate_CollectsAllErrors(t *testing.T) {
	n := Node{
		Type: "array",
		Properties: map[string]Property{
			"x.a": StringEnum("a").Default("z").Build(),
			"x.b": NewBuilder().Type("bogus").Build(),
		},
	}

	var verrs *ValidationErrors
	require.True(t, errors.As(n.Validate(), &verrs))
	assert.Equal(t, 4, len(verrs.Errors))
}

func TestProperty_Validate_NumericEnumAcceptsDecodedNumbers(t *testing.T) {
	p := NewBuilder().Type(TypeNameInteger).Enum(1, 2, 4).Default(float64(2)).Build()
	require.NoError(t, p.Validate("n.size"))
}

func TestProperty_ValidateValue(t *testing.T) {
	p := StringEnum("default", "light", "dark").Default("default").Build()

	require.NoError(t, p.ValidateValue("k", "dark"))

	err := p.ValidateValue("k", "purple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not one of allowed values")

	err = p.ValidateValue("k", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string, got bool")
}

func TestProperty_Validate_DefaultMustBeEnumMember(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		values := rapid.SliceOfNDistinct(rapid.StringMatching(`[a-z]{1,8}`), 1, 6, func(s string) string { return s }).Draw(t, "enum")
		def := rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "default")

		p := StringEnum(values...).Default(def).Build()
		err := p.Validate("k")

		member := false
		for _, v := range values {
			if v == def {
				member = true
				break
			}
		}
		if member && err != nil {
			t.Fatalf("default %q is in %v but validation failed: %v", def, values, err)
		}
		if !member && err == nil {
			t.Fatalf("default %q is not in %v but validation passed", def, values)
		}
	})
}

func TestValidationErrors_Error(t *testing.T) {
	errs := &ValidationErrors{}
	assert.Equal(t, "no validation errors", errs.Error())
	assert.NoError(t, errs.AsError())

	errs.Add("a", "first")
	assert.Equal(t, "a: first", errs.Error())

	errs.Add("b", "second")
	assert.Equal(t, "2 validation errors:\n  - a: first\n  - b: second", errs.Error())
	assert.Error(t, errs.AsError())
}
