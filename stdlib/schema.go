// Schema validation builtins (§4.6): a lightweight structural
// required-fields check plus full JSON-Schema validation. The latter is
// grounded on github.com/google/jsonschema-go, the same schema
// representation the domain stack's schema-generation tooling produces
// (magicschema's *jsonschema.Schema), used here in its other direction:
// resolving a schema document and validating a script value against it.
package stdlib

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/exec"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/sig"
	"github.com/meschsystems/jyro/value"
)

func init() {
	register(sig.Signature{
		Name: "HasFields",
		Params: []sig.Param{
			{Name: "obj", Type: sig.Of(value.TypeObject), Required: true},
			{Name: "fields", Type: sig.Of(value.TypeArray), Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinHasFields)

	register(sig.Signature{
		Name: "ValidateSchema",
		Params: []sig.Param{
			{Name: "v", Type: sig.Any, Required: true},
			{Name: "schema", Type: sig.Of(value.TypeString), Required: true},
		},
		ReturnType: sig.Of(value.TypeBoolean),
	}, builtinValidateSchema)
}

// HasFields is a cheap structural check — every name in fields must
// exist as a key on obj — for the common case of "does this object look
// roughly right" without paying for a full schema compile.
func builtinHasFields(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	obj, err := wantObject("HasFields", args[0])
	if err != nil {
		return nil, err
	}
	fields, err := wantArray("HasFields", args[1])
	if err != nil {
		return nil, err
	}
	for _, f := range fields.Elements {
		name, ok := f.(value.Str)
		if !ok {
			return nil, invalidArg("HasFields", "fields array must contain only Strings")
		}
		if _, ok := obj.Get(string(name)); !ok {
			return value.False, nil
		}
	}
	return value.True, nil
}

func builtinValidateSchema(args []exec.Arg, invoke exec.Invoker, rc *runtime.Context) (value.Value, error) {
	schemaText, err := wantString("ValidateSchema", args[1])
	if err != nil {
		return nil, err
	}

	var schema jsonschema.Schema
	if err := json.Unmarshal([]byte(schemaText), &schema); err != nil {
		return nil, invalidArg("ValidateSchema", "not a valid JSON Schema document: "+err.Error())
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, invalidArg("ValidateSchema", "schema did not resolve: "+err.Error())
	}

	raw, err := value.ToJSON(args[0].Value)
	if err != nil {
		return nil, invalidArg("ValidateSchema", "value is not JSON-representable: "+err.Error())
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return nil, invalidArg("ValidateSchema", "value did not round-trip through JSON: "+err.Error())
	}

	if err := resolved.Validate(instance); err != nil {
		return nil, diag.NewError(diag.SchemaValidationFailed, "ValidateSchema", err.Error())
	}
	return value.True, nil
}
