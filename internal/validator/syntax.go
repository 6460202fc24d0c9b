package validator

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/yuin/gopher-lua/ast"
	"github.com/yuin/gopher-lua/parse"
)

// checkSyntax parses the script and lints the tree. A parse failure is the
// only error it reports; lint findings are warnings or info.
func checkSyntax(script string) []ValidationError {
	chunk, err := parse.Parse(strings.NewReader(script), "<script>")
	if err != nil {
		var perr *parse.Error
		if stderrors.As(err, &perr) {
			return []ValidationError{findingAt(TypeSyntax, SeverityError, perr.Pos.Line,
				fmt.Sprintf("Syntax error: %s near '%s'", perr.Message, perr.Token))}
		}
		return []ValidationError{finding(TypeSyntax, SeverityError, "Syntax error: "+err.Error())}
	}

	l := &linter{
		short:   make(map[string]bool),
		private: make(map[string]bool),
	}
	l.stmts(chunk)
	return l.findings
}

// linter walks the tree for naming smells. Short names and private calls
// are reported once per name.
type linter struct {
	findings []ValidationError
	short    map[string]bool
	private  map[string]bool
}

func (l *linter) name(name string, line int) {
	if len(name) >= 2 || name == "_" || l.short[name] {
		return
	}
	l.short[name] = true
	l.findings = append(l.findings, findingAt(TypeSyntax, SeverityWarning, line,
		fmt.Sprintf("Variable name '%s' is too short", name)))
}

func (l *linter) stmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		l.stmt(s)
	}
}

func (l *linter) stmt(s ast.Stmt) {
	switch st := s.(type) {
	case *ast.AssignStmt:
		l.exprs(st.Lhs)
		for _, e := range st.Rhs {
			l.bound(e)
		}
	case *ast.LocalAssignStmt:
		for _, n := range st.Names {
			l.name(n, st.Line())
		}
		for _, e := range st.Exprs {
			l.bound(e)
		}
	case *ast.FuncCallStmt:
		l.expr(st.Expr)
	case *ast.DoBlockStmt:
		l.stmts(st.Stmts)
	case *ast.WhileStmt:
		l.expr(st.Condition)
		l.stmts(st.Stmts)
	case *ast.RepeatStmt:
		l.expr(st.Condition)
		l.stmts(st.Stmts)
	case *ast.IfStmt:
		l.expr(st.Condition)
		l.stmts(st.Then)
		l.stmts(st.Else)
	case *ast.NumberForStmt:
		l.name(st.Name, st.Line())
		l.expr(st.Init)
		l.expr(st.Limit)
		if st.Step != nil {
			l.expr(st.Step)
		}
		l.stmts(st.Stmts)
	case *ast.GenericForStmt:
		for _, n := range st.Names {
			l.name(n, st.Line())
		}
		l.exprs(st.Exprs)
		l.stmts(st.Stmts)
	case *ast.FuncDefStmt:
		if st.Name != nil {
			if st.Name.Func != nil {
				l.expr(st.Name.Func)
			}
			if st.Name.Receiver != nil {
				l.expr(st.Name.Receiver)
			}
		}
		l.function(st.Func)
	case *ast.ReturnStmt:
		l.exprs(st.Exprs)
	}
}

// bound walks an expression whose value is assigned to a name, so a
// function literal there is not anonymous.
func (l *linter) bound(e ast.Expr) {
	if fn, ok := e.(*ast.FunctionExpr); ok {
		l.function(fn)
		return
	}
	l.expr(e)
}

func (l *linter) function(fn *ast.FunctionExpr) {
	if fn == nil {
		return
	}
	if fn.ParList != nil {
		for _, n := range fn.ParList.Names {
			l.name(n, fn.Line())
		}
	}
	l.stmts(fn.Stmts)
}

func (l *linter) exprs(exprs []ast.Expr) {
	for _, e := range exprs {
		l.expr(e)
	}
}

func (l *linter) expr(e ast.Expr) {
	switch ex := e.(type) {
	case *ast.IdentExpr:
		l.name(ex.Value, ex.Line())
	case *ast.AttrGetExpr:
		l.expr(ex.Object)
		l.expr(ex.Key)
	case *ast.TableExpr:
		for _, f := range ex.Fields {
			if f.Key != nil {
				l.expr(f.Key)
			}
			l.expr(f.Value)
		}
	case *ast.FuncCallExpr:
		if id, ok := ex.Func.(*ast.IdentExpr); ok && strings.HasPrefix(id.Value, "_") && !l.private[id.Value] {
			l.private[id.Value] = true
			l.findings = append(l.findings, findingAt(TypeSyntax, SeverityWarning, ex.Line(),
				fmt.Sprintf("Calling private function '%s'", id.Value)))
		}
		if ex.Func != nil {
			l.expr(ex.Func)
		}
		if ex.Receiver != nil {
			l.expr(ex.Receiver)
		}
		l.exprs(ex.Args)
	case *ast.LogicalOpExpr:
		l.expr(ex.Lhs)
		l.expr(ex.Rhs)
	case *ast.RelationalOpExpr:
		l.expr(ex.Lhs)
		l.expr(ex.Rhs)
	case *ast.StringConcatOpExpr:
		l.expr(ex.Lhs)
		l.expr(ex.Rhs)
	case *ast.ArithmeticOpExpr:
		l.expr(ex.Lhs)
		l.expr(ex.Rhs)
	case *ast.UnaryMinusOpExpr:
		l.expr(ex.Expr)
	case *ast.UnaryNotOpExpr:
		l.expr(ex.Expr)
	case *ast.UnaryLenOpExpr:
		l.expr(ex.Expr)
	case *ast.FunctionExpr:
		l.findings = append(l.findings, findingAt(TypeSyntax, SeverityInfo, ex.Line(), "Anonymous function found"))
		l.function(ex)
	}
}
