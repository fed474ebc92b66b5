package koru

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Generator lowers parsed Function values into LLVM IR. Every koru value is
// a double; prototypes become double-typed function signatures and extern
// declarations stay body-less. The generator accumulates functions into one
// module for the lifetime of a session.
type Generator struct {
	mod   *ir.Module
	funcs map[string]*ir.Func
}

func NewGenerator() *Generator {
	g := &Generator{
		mod:   ir.NewModule(),
		funcs: make(map[string]*ir.Func),
	}

	// Native callbacks supplied by the host runtime. Declared up front so
	// calls to them resolve; their implementations live outside the module.
	g.declare(Prototype{Name: "putchard", Args: []string{"x"}})
	g.declare(Prototype{Name: "printd", Args: []string{"x"}})

	return g
}

// Module returns the accumulated IR module.
func (g *Generator) Module() *ir.Module {
	return g.mod
}

// Generate lowers one top-level construct. Extern declarations produce a
// declaration only; definitions and wrapped top-level expressions get an
// entry block whose final value is returned.
func (g *Generator) Generate(fn *Function) (*ir.Func, error) {
	f := g.declare(fn.Proto)
	if fn.Body == nil {
		return f, nil
	}

	vars := make(map[string]value.Value, len(f.Params))
	for _, param := range f.Params {
		vars[param.Name()] = param
	}

	block := f.NewBlock("entry")
	ret, err := g.expr(block, vars, fn.Body)
	if err != nil {
		return nil, err
	}
	block.NewRet(ret)

	return f, nil
}

func (g *Generator) declare(proto Prototype) *ir.Func {
	params := make([]*ir.Param, len(proto.Args))
	for i, arg := range proto.Args {
		params[i] = ir.NewParam(arg, types.Double)
	}

	f := g.mod.NewFunc(proto.Name, types.Double, params...)
	g.funcs[proto.Name] = f

	return f
}

func (g *Generator) expr(block *ir.Block, vars map[string]value.Value, expr Expr) (value.Value, error) {
	switch e := expr.(type) {
	case *NumberExpr:
		return constant.NewFloat(types.Double, e.Value), nil

	case *VariableExpr:
		v, ok := vars[e.Name]
		if !ok {
			return nil, fmt.Errorf("undefined variable '%s'", e.Name)
		}
		return v, nil

	case *CallExpr:
		callee, ok := g.funcs[e.Callee]
		if !ok {
			return nil, fmt.Errorf("call to undefined function '%s'", e.Callee)
		}
		if len(callee.Params) != len(e.Args) {
			return nil, fmt.Errorf("function '%s' takes %d arguments, got %d",
				e.Callee, len(callee.Params), len(e.Args))
		}

		args := make([]value.Value, len(e.Args))
		for i, arg := range e.Args {
			v, err := g.expr(block, vars, arg)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}

		return block.NewCall(callee, args...), nil

	case *BinaryExpr:
		lhs, err := g.expr(block, vars, e.LHS)
		if err != nil {
			return nil, err
		}
		rhs, err := g.expr(block, vars, e.RHS)
		if err != nil {
			return nil, err
		}

		switch e.Op {
		case '+':
			return block.NewFAdd(lhs, rhs), nil
		case '-':
			return block.NewFSub(lhs, rhs), nil
		case '*':
			return block.NewFMul(lhs, rhs), nil
		case '/':
			return block.NewFDiv(lhs, rhs), nil
		case '<':
			cmp := block.NewFCmp(enum.FPredULT, lhs, rhs)
			return block.NewUIToFP(cmp, types.Double), nil
		default:
			// Custom operators compile to a call of their definition.
			callee, ok := g.funcs["binary"+string(e.Op)]
			if !ok {
				return nil, fmt.Errorf("undefined binary operator '%c'", e.Op)
			}
			return block.NewCall(callee, lhs, rhs), nil
		}
	}

	return nil, fmt.Errorf("cannot lower expression of type %T", expr)
}
