package exec

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/value"
)

// eval evaluates expr in env, returning a Value. A *ast.Lambda
// expression is the one case that cannot surface here directly — it is
// only meaningful as a VarDecl initializer or a Call argument, both of
// which intercept it before reaching eval; if one does reach here (a
// lambda literal used as a plain expression value, e.g. `data.x =
// (y => y)`), eval returns a RuntimeErrorGeneric instead of a Value,
// since Value has no Lambda variant (§3).
func (ex *Executor) eval(expr ast.Expr, env *Environment, rc *runtime.Context) (value.Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		return e.Value, nil

	case *ast.Identifier:
		cell, ok := env.Lookup(e.Name)
		if !ok {
			return nil, diag.NewError(diag.RuntimeErrorGeneric, "reference to undeclared variable "+e.Name)
		}
		if cell.Lambda != nil {
			return nil, diag.NewError(diag.RuntimeErrorGeneric, "variable "+e.Name+" holds a lambda and cannot be used as a value")
		}
		return cell.Value, nil

	case *ast.PropertyAccess:
		obj, err := ex.eval(e.Object, env, rc)
		if err != nil {
			return nil, err
		}
		if e.Optional && value.Is(obj, value.KindNull) {
			return value.Null, nil
		}
		return value.GetProperty(obj, e.Name)

	case *ast.IndexAccess:
		coll, err := ex.eval(e.Collection, env, rc)
		if err != nil {
			return nil, err
		}
		idx, err := ex.eval(e.Index, env, rc)
		if err != nil {
			return nil, err
		}
		return value.GetIndex(coll, idx)

	case *ast.Binary:
		left, err := ex.eval(e.Left, env, rc)
		if err != nil {
			return nil, err
		}
		// and/or short-circuit: the right operand is only evaluated if the
		// left one doesn't already determine the result (EvaluateBinary's
		// own doc comment defers this to the caller).
		if e.Op == value.OpAnd {
			if !value.Truthy(left) {
				return left, nil
			}
			return ex.eval(e.Right, env, rc)
		}
		if e.Op == value.OpOr {
			if value.Truthy(left) {
				return left, nil
			}
			return ex.eval(e.Right, env, rc)
		}
		right, err := ex.eval(e.Right, env, rc)
		if err != nil {
			return nil, err
		}
		return value.EvaluateBinary(e.Op, left, right)

	case *ast.Unary:
		operand, err := ex.eval(e.Operand, env, rc)
		if err != nil {
			return nil, err
		}
		return value.EvaluateUnary(e.Op, operand)

	case *ast.TypeTest:
		operand, err := ex.eval(e.Operand, env, rc)
		if err != nil {
			return nil, err
		}
		return value.Bool(value.Matches(operand, e.TypeHint)), nil

	case *ast.Call:
		return ex.evalCall(e, env, rc)

	case *ast.Lambda:
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "lambda literal used where a value was expected")

	case *ast.ArrayLit:
		elems := make([]value.Value, len(e.Elements))
		for i, elExpr := range e.Elements {
			v, err := ex.eval(elExpr, env, rc)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return value.NewArray(elems...), nil

	case *ast.ObjectLit:
		obj := value.NewObject()
		for _, f := range e.Fields {
			v, err := ex.eval(f.Value, env, rc)
			if err != nil {
				return nil, err
			}
			obj.Set(f.Key, v)
		}
		return obj, nil

	default:
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "unknown expression node")
	}
}

// evalCall resolves and invokes either a named builtin/host function
// (the common case) or, when Callee is set, a first-class lambda value
// produced by evaluating a non-identifier expression in call position
// (§3's "(lambdaExpr)(args...)" form — link.Linker skips name resolution
// for this shape entirely and leaves arity enforcement to the call
// itself).
func (ex *Executor) evalCall(call *ast.Call, env *Environment, rc *runtime.Context) (value.Value, error) {
	if call.Callee != nil {
		handle, err := ex.evalLambdaExpr(call.Callee, env, rc)
		if err != nil {
			return nil, err
		}
		args := make([]value.Value, len(call.Args))
		for i, a := range call.Args {
			v, err := ex.eval(a, env, rc)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ex.invokeLambda(handle, args, rc)
	}

	fn, ok := ex.builtins[call.Name]
	if !ok {
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "call to unresolved function "+call.Name)
	}

	sigEntry, hasSig := ex.program.Functions[call.Name]
	var lambdaIdx []int
	if hasSig {
		lambdaIdx = sigEntry.Signature.LambdaParamIndexes()
	}
	isLambdaParam := make(map[int]bool, len(lambdaIdx))
	for _, i := range lambdaIdx {
		isLambdaParam[i] = true
	}

	args := make([]Arg, len(call.Args))
	for i, a := range call.Args {
		if isLambdaParam[i] {
			handle, err := ex.evalLambdaExpr(a, env, rc)
			if err != nil {
				return nil, err
			}
			args[i] = Arg{Lambda: handle}
			continue
		}
		v, err := ex.eval(a, env, rc)
		if err != nil {
			return nil, err
		}
		args[i] = Arg{Value: v}
	}

	exit, breach := rc.EnterCall()
	if breach != nil {
		return nil, breach
	}
	defer exit()

	invoker := func(handle *LambdaHandle, args []value.Value) (value.Value, error) {
		return ex.invokeLambda(handle, args, rc)
	}
	return fn(args, invoker, rc)
}

// evalLambdaExpr resolves expr to a LambdaHandle without evaluating it
// as an ordinary Value: a literal `*ast.Lambda` captures env directly, an
// identifier must resolve to a cell already holding one (a variable a
// lambda-typed VarDecl or parameter bound), and anything else is an
// error since it is not invocable.
func (ex *Executor) evalLambdaExpr(expr ast.Expr, env *Environment, rc *runtime.Context) (*LambdaHandle, error) {
	switch e := expr.(type) {
	case *ast.Lambda:
		return &LambdaHandle{Lambda: e, Env: env}, nil
	case *ast.Identifier:
		cell, ok := env.Lookup(e.Name)
		if !ok {
			return nil, diag.NewError(diag.RuntimeErrorGeneric, "reference to undeclared variable "+e.Name)
		}
		if cell.Lambda == nil {
			return nil, diag.NewError(diag.RuntimeErrorGeneric, "variable "+e.Name+" does not hold a lambda")
		}
		return cell.Lambda, nil
	default:
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "expression is not invocable as a lambda")
	}
}

// invokeLambda runs handle's body against args bound to its parameter
// names, in a fresh scope nested in the closure's captured environment
// (not the caller's environment — §4.3's capture-by-reference rule).
// Call-depth accounting happens here so every lambda invocation —
// whether from a builtin's Invoker callback or a direct Callee call —
// counts uniformly (§4.6).
func (ex *Executor) invokeLambda(handle *LambdaHandle, args []value.Value, rc *runtime.Context) (value.Value, error) {
	if len(args) != len(handle.Lambda.Params) {
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "lambda invoked with the wrong number of arguments")
	}

	exit, breach := rc.EnterCall()
	if breach != nil {
		return nil, breach
	}
	defer exit()

	callEnv := NewEnvironment(handle.Env)
	for i, p := range handle.Lambda.Params {
		callEnv.Declare(p, &Cell{Value: args[i]})
	}
	return ex.eval(handle.Lambda.Body, callEnv, rc)
}
