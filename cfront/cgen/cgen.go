// Package cgen walks a cast tree and emits interpreter source text,
// one AST node at a time, in postfix order.
//
// STORE's contract is ( ref val -- ): it pops the value on top first,
// then the reference beneath it. Declarations and assignments compute
// their value before the target is known to be local, so they push
// value then name and need a SWAP to put the reference back on the
// bottom: `<value> <name> SWAP STORE`. Bookkeeping stores generated
// internally (loop flags, switch dispatch) push the reference first
// and need no SWAP. See DESIGN.md.
package cgen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sayakbrahmachari/struix/cfront/cast"
)

// Warning is a recorded but non-fatal lowering note (an unsupported
// construct that was skipped).
type Warning struct {
	Msg string
}

func (w Warning) String() string { return w.Msg }

// GenError is one hard lowering failure (an unsupported binary
// operator, a malformed call target, etc).
type GenError struct {
	Msg string
}

func (e *GenError) Error() string { return e.Msg }

var binOps = map[string]string{
	"+": "+", "-": "-", "*": "*", "/": "/", "%": "%",
	"<<": "<<", ">>": ">>", "&": "&", "|": "|", "^": "^",
	"<": "<", ">": ">", "<=": "<=", ">=": ">=", "==": "==", "!=": "!=",
	"&&": "AND", "||": "OR",
}

type loopCtx struct {
	breakFlag, continueFlag string
}

// Generator accumulates emitted tokens and tracks the symbol table
// (which identifiers are local variables, vs. function names) and the
// stack of enclosing loops/switches for break/continue resolution.
type Generator struct {
	out      strings.Builder
	locals   []map[string]bool
	loops    []loopCtx
	breakTgt []string // innermost breakable context (loop or switch)
	counter  int
	Warnings []Warning
	Errors   []error
}

// New returns a ready Generator.
func New() *Generator { return &Generator{locals: []map[string]bool{{}}} }

func (g *Generator) pushScope() { g.locals = append(g.locals, map[string]bool{}) }
func (g *Generator) popScope()  { g.locals = g.locals[:len(g.locals)-1] }

func (g *Generator) declareLocal(name string) {
	g.locals[len(g.locals)-1][name] = true
}

func (g *Generator) isLocal(name string) bool {
	for i := len(g.locals) - 1; i >= 0; i-- {
		if g.locals[i][name] {
			return true
		}
	}
	return false
}

func (g *Generator) nextName(base string) string {
	g.counter++
	return fmt.Sprintf("__%s_%d", base, g.counter)
}

func (g *Generator) emit(tokens ...string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		g.out.WriteString(t)
		g.out.WriteByte(' ')
	}
}

func (g *Generator) warnf(format string, args ...interface{}) {
	g.Warnings = append(g.Warnings, Warning{Msg: fmt.Sprintf(format, args...)})
}

func (g *Generator) errorf(format string, args ...interface{}) {
	g.Errors = append(g.Errors, &GenError{Msg: fmt.Sprintf(format, args...)})
}

// Generate lowers a translation unit to interpreter source text,
// returning the text, any warnings (skipped unsupported nodes), and
// any hard errors aggregated during the walk.
func Generate(tu *cast.TranslationUnit) (string, []Warning, []error) {
	g := New()
	g.genTranslationUnit(tu)
	return strings.TrimSpace(g.out.String()), g.Warnings, g.Errors
}

func (g *Generator) genTranslationUnit(tu *cast.TranslationUnit) {
	for _, d := range tu.Decls {
		switch n := d.(type) {
		case *cast.FuncDef:
			g.genFuncDef(n)
		case *cast.VarDecl:
			g.genVarDecl(n)
		default:
			g.warnf("unsupported top-level declaration")
		}
		g.emit("\n")
	}
}

func (g *Generator) genFuncDef(f *cast.FuncDef) {
	g.emit("DEF", f.Name)
	g.pushScope()
	for i := len(f.Params) - 1; i >= 0; i-- {
		p := f.Params[i]
		g.emit("VAR", p.Name, p.Name, "PARAM")
		g.declareLocal(p.Name)
	}
	g.genStmt(f.Body)
	g.popScope()
	g.emit("END")
}

func (g *Generator) genVarDecl(d *cast.VarDecl) {
	g.emit("VAR", d.Name)
	g.declareLocal(d.Name)
	switch {
	case d.IsArray:
		if d.Init != nil {
			g.warnf("array initializer lists are not supported for %q", d.Name)
		}
		g.emit("[")
		for i := 0; i < d.ArrayN; i++ {
			g.emit("0")
		}
		g.emit("]", d.Name, "SWAP", "STORE")
	case d.Init != nil:
		g.genExpr(d.Init)
		g.emit(d.Name, "SWAP", "STORE")
	}
}

func (g *Generator) genStmt(s cast.Stmt) {
	switch n := s.(type) {
	case *cast.Compound:
		for _, inner := range n.Stmts {
			g.genStmt(inner)
		}
	case *cast.VarDecl:
		g.genVarDecl(n)
	case *cast.ExprStmt:
		if a, ok := n.X.(*cast.Assign); ok {
			g.genAssignStmt(a)
		} else {
			g.genExpr(n.X)
			g.emit("DROP")
		}
	case *cast.If:
		g.genIf(n)
	case *cast.While:
		g.genWhile(n.Cond, n.Body)
	case *cast.DoWhile:
		g.genDoWhile(n)
	case *cast.For:
		g.genFor(n)
	case *cast.Break:
		if len(g.breakTgt) == 0 {
			g.errorf("break outside any loop or switch")
			return
		}
		g.emit(g.breakTgt[len(g.breakTgt)-1], "TRUE", "STORE")
	case *cast.Continue:
		if len(g.loops) == 0 {
			g.errorf("continue outside any loop")
			return
		}
		g.emit(g.loops[len(g.loops)-1].continueFlag, "TRUE", "STORE")
	case *cast.Return:
		if n.X != nil {
			g.genExpr(n.X)
		}
		g.emit("RETURN")
	case *cast.Switch:
		g.genSwitch(n)
	default:
		g.warnf("unsupported statement node")
	}
}

func (g *Generator) genIf(n *cast.If) {
	g.genExpr(n.Cond)
	g.emit("[")
	g.genStmt(n.Then)
	g.emit("]")
	if n.Else != nil {
		g.emit("[")
		g.genStmt(n.Else)
		g.emit("]", "IFELSE")
		return
	}
	g.emit("IFTRUE")
}

// genWhile lowers `while (cond) body`: two fresh local flags guard
// break/continue, and WHILE re-tests cond before every pass.
func (g *Generator) genWhile(cond cast.Expr, body cast.Stmt) {
	breakFlag := g.nextName("BREAK")
	contFlag := g.nextName("CONTINUE")
	g.emit("VAR", breakFlag, breakFlag, "FALSE", "STORE")
	g.emit("VAR", contFlag, contFlag, "FALSE", "STORE")

	g.loops = append(g.loops, loopCtx{breakFlag: breakFlag, continueFlag: contFlag})
	g.breakTgt = append(g.breakTgt, breakFlag)

	g.emit("[", breakFlag, "FETCH", "NOT")
	if cond != nil {
		g.genExpr(cond)
	} else {
		g.emit("TRUE")
	}
	g.emit("AND", "]")

	g.emit("[", contFlag, "FETCH", "NOT", "[")
	g.genStmt(body)
	g.emit("]", "IFTRUE", contFlag, "FALSE", "STORE", "]")

	g.loops = g.loops[:len(g.loops)-1]
	g.breakTgt = g.breakTgt[:len(g.breakTgt)-1]

	g.emit("WHILE")
}

func (g *Generator) genDoWhile(n *cast.DoWhile) {
	breakFlag := g.nextName("BREAK")
	contFlag := g.nextName("CONTINUE")
	g.emit("VAR", breakFlag, breakFlag, "FALSE", "STORE")
	g.emit("VAR", contFlag, contFlag, "FALSE", "STORE")

	g.loops = append(g.loops, loopCtx{breakFlag: breakFlag, continueFlag: contFlag})
	g.breakTgt = append(g.breakTgt, breakFlag)

	g.emit("[", breakFlag, "FETCH", "NOT")
	g.genExpr(n.Cond)
	g.emit("AND", "]")

	g.emit("[", contFlag, "FETCH", "NOT", "[")
	g.genStmt(n.Body)
	g.emit("]", "IFTRUE", contFlag, "FALSE", "STORE", "]")

	g.loops = g.loops[:len(g.loops)-1]
	g.breakTgt = g.breakTgt[:len(g.breakTgt)-1]

	g.emit("DOWHILE")
}

// genFor lowers `for (init; cond; post) body` to init followed by the
// same guarded-WHILE pattern genWhile uses, with post appended inside
// the body so it still runs on a `continue`.
func (g *Generator) genFor(n *cast.For) {
	g.pushScope()
	if n.Init != nil {
		g.genStmt(n.Init)
	}
	body := n.Body
	if n.Post != nil {
		body = &cast.Compound{Stmts: []cast.Stmt{body, &cast.ExprStmt{X: n.Post}}}
	}
	g.genWhile(n.Cond, body)
	g.popScope()
}

// genSwitch lowers switch/case/default: each case is an independently
// guarded IFTRUE on SWITCH_EXPR equality, so a `break`
// stops later guards from firing but a case without one does not chain
// into an unrelated later case's body (a known simplification of the
// described mechanism, not full C fallthrough).
func (g *Generator) genSwitch(n *cast.Switch) {
	switchVar := g.nextName("SWITCH_EXPR")
	breakFlag := g.nextName("BREAK")
	g.emit("VAR", switchVar, switchVar)
	g.genExpr(n.Tag)
	g.emit("STORE")
	g.emit("VAR", breakFlag, breakFlag, "FALSE", "STORE")

	g.breakTgt = append(g.breakTgt, breakFlag)
	for _, c := range n.Cases {
		if c.IsDefault {
			g.emit(breakFlag, "FETCH", "NOT", "[")
		} else {
			g.emit(switchVar, "FETCH")
			g.genExpr(c.Value)
			g.emit("==", breakFlag, "FETCH", "NOT", "AND", "[")
		}
		for _, s := range c.Body {
			g.genStmt(s)
		}
		g.emit("]", "IFTRUE")
	}
	g.breakTgt = g.breakTgt[:len(g.breakTgt)-1]
}

func (g *Generator) genExpr(e cast.Expr) {
	switch n := e.(type) {
	case *cast.Ident:
		if g.isLocal(n.Name) {
			g.emit(n.Name, "FETCH")
		} else {
			g.emit(n.Name)
		}
	case *cast.IntLit:
		g.emit(n.Text)
	case *cast.FloatLit:
		g.emit(n.Text)
	case *cast.CharLit:
		g.emit(strconv.Itoa(int(n.Value)))
	case *cast.StringLit:
		g.emit(quoteString(n.Value))
	case *cast.Binary:
		g.genExpr(n.Left)
		g.genExpr(n.Right)
		op, ok := binOps[n.Op]
		if !ok {
			g.errorf("unsupported binary operator %q", n.Op)
			return
		}
		g.emit(op)
	case *cast.Unary:
		g.genUnary(n)
	case *cast.Postfix:
		g.genPostfix(n)
	case *cast.Assign:
		g.warnf("assignment used as a sub-expression is not supported; its value lowers to 0")
		g.genAssignStmt(n)
		g.emit("0")
	case *cast.Ternary:
		g.genExpr(n.Cond)
		g.emit("[")
		g.genExpr(n.Then)
		g.emit("]", "[")
		g.genExpr(n.Else)
		g.emit("]", "IFELSE")
	case *cast.Call:
		for _, a := range n.Args {
			g.genExpr(a)
		}
		g.emit(n.Fn)
	case *cast.Index:
		g.genArrayRef(n)
		g.emit("ITEM")
	case *cast.Cast:
		g.genExpr(n.X)
	default:
		g.warnf("unsupported expression node")
		g.emit("0")
	}
}

func (g *Generator) genArrayRef(idx *cast.Index) {
	id, ok := idx.Arr.(*cast.Ident)
	if !ok {
		g.errorf("only a plain array name may be indexed")
		return
	}
	g.emit(id.Name, "FETCH")
	g.genExpr(idx.Idx)
}

func (g *Generator) genUnary(n *cast.Unary) {
	switch n.Op {
	case "-":
		g.genExpr(n.X)
		g.emit("NEGATE")
	case "!":
		g.genExpr(n.X)
		g.emit("NOT")
	case "~":
		g.genExpr(n.X)
		g.emit("BITNOT")
	case "++", "--":
		id, ok := n.X.(*cast.Ident)
		if !ok {
			g.errorf("prefix %s requires a plain variable", n.Op)
			return
		}
		delta := "1"
		opWord := "+"
		if n.Op == "--" {
			opWord = "-"
		}
		g.emit(id.Name, "FETCH", delta, opWord, id.Name, "SWAP", "STORE", id.Name, "FETCH")
	default:
		g.errorf("unsupported unary operator %q", n.Op)
	}
}

func (g *Generator) genPostfix(n *cast.Postfix) {
	id, ok := n.X.(*cast.Ident)
	if !ok {
		g.errorf("postfix %s requires a plain variable", n.Op)
		return
	}
	opWord := "+"
	if n.Op == "--" {
		opWord = "-"
	}
	g.emit(id.Name, "FETCH", "DUP", "1", opWord, id.Name, "SWAP", "STORE")
}

// genAssignStmt lowers an assignment used as a statement: rhs, name,
// SWAP STORE (scalar target) or rhs, the array's current list, the
// index, STORE_ITEM, name, SWAP STORE (array-element target). Nothing
// is left on the stack.
func (g *Generator) genAssignStmt(n *cast.Assign) {
	switch t := n.Target.(type) {
	case *cast.Ident:
		g.genExpr(n.Value)
		g.emit(t.Name, "SWAP", "STORE")
	case *cast.Index:
		id, ok := t.Arr.(*cast.Ident)
		if !ok {
			g.errorf("only a plain array name may be assigned by index")
			return
		}
		g.genExpr(n.Value)
		g.emit(id.Name, "FETCH")
		g.genExpr(t.Idx)
		g.emit("STORE_ITEM", id.Name, "SWAP", "STORE")
	default:
		g.errorf("unsupported assignment target")
	}
}

func quoteString(s string) string {
	if !strings.ContainsRune(s, '"') {
		return `"` + s + `"`
	}
	if !strings.ContainsRune(s, '\'') {
		return "'" + s + "'"
	}
	return `"""` + s + `"""`
}
