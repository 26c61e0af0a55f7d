package exec

import (
	"github.com/meschsystems/jyro/ast"
	"github.com/meschsystems/jyro/diag"
	"github.com/meschsystems/jyro/runtime"
	"github.com/meschsystems/jyro/value"
)

func (ex *Executor) execStmtInner(stmt ast.Stmt, env *Environment, rc *runtime.Context) error {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		return ex.execVarDecl(s, env, rc)
	case *ast.Assignment:
		return ex.execAssignment(s, env, rc)
	case *ast.If:
		return ex.execIf(s, env, rc)
	case *ast.Switch:
		return ex.execSwitch(s, env, rc)
	case *ast.While:
		return ex.execWhile(s, env, rc)
	case *ast.For:
		return ex.execFor(s, env, rc)
	case *ast.ForEach:
		return ex.execForEach(s, env, rc)
	case *ast.Return:
		return ex.execReturn(s, env, rc)
	case *ast.Fail:
		return ex.execFail(s, env, rc)
	case *ast.Break:
		return breakSignal{}
	case *ast.Continue:
		return continueSignal{}
	case *ast.ExprStmt:
		_, err := ex.eval(s.Expr, env, rc)
		return err
	default:
		return diag.NewError(diag.RuntimeErrorGeneric, "unknown statement node")
	}
}

func (ex *Executor) execVarDecl(s *ast.VarDecl, env *Environment, rc *runtime.Context) error {
	cell := &Cell{TypeHint: s.TypeHint, HasTypeHint: s.HasTypeHint}
	if s.Init != nil {
		if lam, ok := s.Init.(*ast.Lambda); ok {
			cell.Lambda = &LambdaHandle{Lambda: lam, Env: env}
		} else {
			v, err := ex.eval(s.Init, env, rc)
			if err != nil {
				return err
			}
			if cell.HasTypeHint {
				coerced, err := value.CoerceToType(v, cell.TypeHint, s.Name)
				if err != nil {
					return err
				}
				v = coerced
			}
			cell.Value = v
		}
	} else {
		cell.Value = value.Null
	}
	env.Declare(s.Name, cell)
	return nil
}

func (ex *Executor) execAssignment(s *ast.Assignment, env *Environment, rc *runtime.Context) error {
	rhs, err := ex.eval(s.Value, env, rc)
	if err != nil {
		return err
	}
	return ex.assignTo(s.Target, s.Op, rhs, env, rc)
}

// assignTo implements §4.3's compound-assignment desugaring: read the
// current value through the target's access path, apply EvaluateBinary
// if op is compound, type-coerce identifier targets with a hint, and
// write back through the same path.
func (ex *Executor) assignTo(target ast.Expr, op ast.AssignOp, rhs value.Value, env *Environment, rc *runtime.Context) error {
	switch t := target.(type) {
	case *ast.Identifier:
		cell, ok := env.Lookup(t.Name)
		if !ok {
			return diag.NewError(diag.RuntimeErrorGeneric, "assignment to undeclared variable "+t.Name)
		}
		newVal, err := applyCompound(op, cell.Value, rhs)
		if err != nil {
			return err
		}
		if cell.HasTypeHint {
			coerced, err := value.CoerceToType(newVal, cell.TypeHint, t.Name)
			if err != nil {
				return err
			}
			newVal = coerced
		}
		cell.Value = newVal
		return nil

	case *ast.PropertyAccess:
		obj, err := ex.eval(t.Object, env, rc)
		if err != nil {
			return err
		}
		var current value.Value
		if op != ast.AssignSet {
			current, err = value.GetProperty(obj, t.Name)
			if err != nil {
				return err
			}
		}
		newVal, err := applyCompound(op, current, rhs)
		if err != nil {
			return err
		}
		return value.SetProperty(obj, t.Name, newVal)

	case *ast.IndexAccess:
		coll, err := ex.eval(t.Collection, env, rc)
		if err != nil {
			return err
		}
		idx, err := ex.eval(t.Index, env, rc)
		if err != nil {
			return err
		}
		var current value.Value
		if op != ast.AssignSet {
			current, err = value.GetIndex(coll, idx)
			if err != nil {
				return err
			}
		}
		newVal, err := applyCompound(op, current, rhs)
		if err != nil {
			return err
		}
		return value.SetIndex(coll, idx, newVal)

	default:
		return diag.NewError(diag.RuntimeErrorGeneric, "invalid assignment target")
	}
}

func applyCompound(op ast.AssignOp, current, rhs value.Value) (value.Value, error) {
	if op == ast.AssignSet {
		return rhs, nil
	}
	binOp, ok := map[ast.AssignOp]value.BinaryOp{
		ast.AssignAddSet: value.OpAdd,
		ast.AssignSubSet: value.OpSub,
		ast.AssignMulSet: value.OpMul,
		ast.AssignDivSet: value.OpDiv,
		ast.AssignModSet: value.OpMod,
	}[op]
	if !ok {
		return nil, diag.NewError(diag.RuntimeErrorGeneric, "unknown assignment operator")
	}
	return value.EvaluateBinary(binOp, current, rhs)
}

func (ex *Executor) execIf(s *ast.If, env *Environment, rc *runtime.Context) error {
	cond, err := ex.eval(s.Cond, env, rc)
	if err != nil {
		return err
	}
	if value.Truthy(cond) {
		return ex.execBlock(s.Then, NewEnvironment(env), rc)
	}
	for _, ei := range s.ElseIfs {
		c, err := ex.eval(ei.Cond, env, rc)
		if err != nil {
			return err
		}
		if value.Truthy(c) {
			return ex.execBlock(ei.Body, NewEnvironment(env), rc)
		}
	}
	if s.Else != nil {
		return ex.execBlock(s.Else, NewEnvironment(env), rc)
	}
	return nil
}

// execSwitch implements §4.3: evaluate the scrutinee once, test each
// case's comparands with deep equality, take the first match, fall
// back to default. No fall-through.
func (ex *Executor) execSwitch(s *ast.Switch, env *Environment, rc *runtime.Context) error {
	scrutinee, err := ex.eval(s.Scrutinee, env, rc)
	if err != nil {
		return err
	}
	for _, c := range s.Cases {
		for _, cmpExpr := range c.Comparands {
			cmp, err := ex.eval(cmpExpr, env, rc)
			if err != nil {
				return err
			}
			if value.Equal(scrutinee, cmp) {
				return ex.execBlock(c.Body, NewEnvironment(env), rc)
			}
		}
	}
	if s.Default != nil {
		return ex.execBlock(s.Default, NewEnvironment(env), rc)
	}
	return nil
}

func (ex *Executor) execWhile(s *ast.While, env *Environment, rc *runtime.Context) error {
	for {
		cond, err := ex.eval(s.Cond, env, rc)
		if err != nil {
			return err
		}
		if !value.Truthy(cond) {
			return nil
		}
		if d := rc.AccountLoopIteration(); d != nil {
			return d
		}
		if err := ex.execBlock(s.Body, NewEnvironment(env), rc); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
}

// execFor implements §4.3's counted-loop contract: the step is
// evaluated once at entry and must be a strictly positive integer
// (NonNegativeIntegerRequired otherwise); the termination test is
// strict (`<` ascending, `>` descending); continue advances to the step
// update, not past it.
func (ex *Executor) execFor(s *ast.For, env *Environment, rc *runtime.Context) error {
	startVal, err := ex.eval(s.Start, env, rc)
	if err != nil {
		return err
	}
	endVal, err := ex.eval(s.End, env, rc)
	if err != nil {
		return err
	}
	start, ok := startVal.(value.Number)
	if !ok {
		return diag.NewError(diag.InvalidType, "for-loop start", "Number", value.KindOf(startVal).String())
	}
	end, ok := endVal.(value.Number)
	if !ok {
		return diag.NewError(diag.InvalidType, "for-loop end", "Number", value.KindOf(endVal).String())
	}

	step := value.Number(1)
	if s.Step != nil {
		stepVal, err := ex.eval(s.Step, env, rc)
		if err != nil {
			return err
		}
		n, ok := stepVal.(value.Number)
		if !ok || !n.IsInteger() || float64(n) <= 0 {
			return diag.NewError(diag.NonNegativeIntegerRequired, "for-loop step")
		}
		step = n
	}

	cur := start
	for {
		if s.Direction == ast.Ascending {
			if !(cur < end) {
				return nil
			}
		} else {
			if !(cur > end) {
				return nil
			}
		}
		if d := rc.AccountLoopIteration(); d != nil {
			return d
		}
		loopEnv := NewEnvironment(env)
		loopEnv.Declare(s.Var, &Cell{Value: cur})
		if err := ex.execBlock(s.Body, loopEnv, rc); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				// fall through to the step update below
			} else {
				return err
			}
		}
		if s.Direction == ast.Ascending {
			cur += step
		} else {
			cur -= step
		}
	}
}

// execForEach implements §3's foreach: over an Array, Var is bound to
// each element; over an Object, Var is bound to a {key, value} Object
// per entry, in insertion order.
func (ex *Executor) execForEach(s *ast.ForEach, env *Environment, rc *runtime.Context) error {
	coll, err := ex.eval(s.Collection, env, rc)
	if err != nil {
		return err
	}
	elements, pairs, err := value.ToIterable(coll)
	if err != nil {
		return err
	}

	var items []value.Value
	if pairs != nil {
		for _, p := range pairs {
			entry := value.NewObject()
			entry.Set("key", value.Str(p.Key))
			entry.Set("value", p.Value)
			items = append(items, entry)
		}
	} else {
		items = elements
	}

	for _, item := range items {
		if d := rc.AccountLoopIteration(); d != nil {
			return d
		}
		loopEnv := NewEnvironment(env)
		loopEnv.Declare(s.Var, &Cell{Value: item})
		if err := ex.execBlock(s.Body, loopEnv, rc); err != nil {
			if _, ok := err.(breakSignal); ok {
				return nil
			}
			if _, ok := err.(continueSignal); ok {
				continue
			}
			return err
		}
	}
	return nil
}

// messageText renders a return/fail message Value as the human-readable
// completion reason: a String is used verbatim (not quoted, unlike
// value.Display's diagnostic-message rendering), anything else falls
// back to Display.
func messageText(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return value.Display(v)
}

func (ex *Executor) execReturn(s *ast.Return, env *Environment, rc *runtime.Context) error {
	sig := returnSignal{}
	if s.Message != nil {
		msgVal, err := ex.eval(s.Message, env, rc)
		if err != nil {
			return err
		}
		sig.message = messageText(msgVal)
		sig.hasMessage = true
		// The returned value becomes the run's result.
		if cell, ok := env.Lookup("data"); ok {
			cell.Value = msgVal
		}
	}
	rc.SetCompletionMessage(sig.message)
	return sig
}

func (ex *Executor) execFail(s *ast.Fail, env *Environment, rc *runtime.Context) error {
	sig := failSignal{}
	if s.Message != nil {
		msgVal, err := ex.eval(s.Message, env, rc)
		if err != nil {
			return err
		}
		sig.message = messageText(msgVal)
		rc.SetCompletionMessage(sig.message)
	}
	return sig
}
