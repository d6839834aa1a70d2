// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package interp

import (
	"github.com/gx-org/tensorcontract/backend/kernels"
	"github.com/gx-org/tensorcontract/build/tree"
	"github.com/gx-org/tensorcontract/internal/base/scope"
)

// execBlock executes the statements of a block in a new scope.
func (itp *interpreter) execBlock(parent *scope.RWScope[Value], block *tree.Block) ([]Value, bool, error) {
	return itp.execStmts(scope.NewScope[Value](parent), block.List)
}

// execStmts executes statements in order.
// It returns true if a return statement has been executed.
func (itp *interpreter) execStmts(scp *scope.RWScope[Value], stmts []tree.Stmt) ([]Value, bool, error) {
	for _, stmt := range stmts {
		returned, done, err := itp.execStmt(scp, stmt)
		if err != nil || done {
			return returned, done, err
		}
	}
	return nil, false, nil
}

func (itp *interpreter) execStmt(scp *scope.RWScope[Value], stmt tree.Stmt) ([]Value, bool, error) {
	switch stmtT := stmt.(type) {
	case *tree.Assign:
		return nil, false, itp.execAssign(scp, stmtT)
	case *tree.ExprStmt:
		_, err := itp.eval(scp, stmtT.X)
		return nil, false, err
	case *tree.Return:
		values, err := itp.evalAll(scp, stmtT.Results)
		return values, true, err
	case *tree.Block:
		return itp.execBlock(scp, stmtT)
	default:
		return nil, false, itp.fset.Errorf(stmt.Source(), "cannot execute statement %T", stmt)
	}
}

func (itp *interpreter) evalAll(scp scope.Scope[Value], exprs []tree.Expr) ([]Value, error) {
	values := make([]Value, len(exprs))
	for i, x := range exprs {
		var err error
		if values[i], err = itp.eval(scp, x); err != nil {
			return nil, err
		}
	}
	return values, nil
}

// execAssign evaluates all the values before assigning them.
func (itp *interpreter) execAssign(scp *scope.RWScope[Value], stmt *tree.Assign) error {
	if len(stmt.Lhs) != len(stmt.Rhs) {
		return itp.fset.Errorf(stmt.Source(), "assignment mismatch: %d variables but %d values", len(stmt.Lhs), len(stmt.Rhs))
	}
	values, err := itp.evalAll(scp, stmt.Rhs)
	if err != nil {
		return err
	}
	for i, target := range stmt.Lhs {
		if err := itp.assign(scp, target, values[i], stmt.Define); err != nil {
			return err
		}
	}
	return nil
}

func (itp *interpreter) assign(scp *scope.RWScope[Value], target tree.Expr, value Value, define bool) error {
	switch targetT := target.(type) {
	case *tree.Ident:
		if targetT.Name == "_" {
			return nil
		}
		if define {
			scp.Define(targetT.Name, value)
			return nil
		}
		if _, found := scp.Find(targetT.Name); !found {
			itp.fnScope.Define(targetT.Name, value)
			return nil
		}
		if err := scp.Assign(targetT.Name, value); err != nil {
			return itp.fset.Position(target.Source(), err)
		}
		return nil
	case *tree.Subscript:
		arr, sels, err := itp.evalSubscript(scp, targetT)
		if err != nil {
			return err
		}
		val, ok := value.(*kernels.Array)
		if !ok {
			return itp.fset.Errorf(target.Source(), "cannot assign %T to %s", value, target.String())
		}
		if err := arr.SetIndex(val, sels...); err != nil {
			return itp.fset.Position(target.Source(), err)
		}
		return nil
	default:
		return itp.fset.Errorf(target.Source(), "cannot assign to %s", target.String())
	}
}
