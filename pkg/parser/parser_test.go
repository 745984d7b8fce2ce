package parser

import (
	"testing"

	"github.com/krizos/zs/pkg/ast"
	"github.com/krizos/zs/pkg/lexer"
)

func parseSrc(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src, "t.zs"))
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("parse errors: %v", errs)
	}
	return prog
}

func TestParseVarDecl(t *testing.T) {
	prog := parseSrc(t, `mut a = 1 + 2 * 3;`)
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	decl, ok := prog.Stmts[0].(*ast.VarDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.VarDecl", prog.Stmts[0])
	}
	if decl.Name != "a" {
		t.Fatalf("got name %q, want %q", decl.Name, "a")
	}
	bin, ok := decl.Value.(*ast.Binary)
	if !ok {
		t.Fatalf("value is %T, want *ast.Binary", decl.Value)
	}
	if bin.Op != ast.OpAdd {
		t.Fatalf("got op %q, want +", bin.Op)
	}
	rhs, ok := bin.Right.(*ast.Binary)
	if !ok || rhs.Op != ast.OpMul {
		t.Fatalf("expected 2*3 to bind tighter than +, got %#v", bin.Right)
	}
}

func TestParsePublicProcDecl(t *testing.T) {
	prog := parseSrc(t, `public proc add(x, y) { return x + y; }`)
	decl, ok := prog.Stmts[0].(*ast.ProcDecl)
	if !ok {
		t.Fatalf("got %T, want *ast.ProcDecl", prog.Stmts[0])
	}
	if !decl.Public || decl.Name != "add" {
		t.Fatalf("got %+v", decl)
	}
	if len(decl.Params) != 2 || decl.Params[0] != "x" || decl.Params[1] != "y" {
		t.Fatalf("got params %v", decl.Params)
	}
	if len(decl.Body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(decl.Body.Stmts))
	}
	ret, ok := decl.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.Return", decl.Body.Stmts[0])
	}
	if _, ok := ret.Value.(*ast.Binary); !ok {
		t.Fatalf("return value is %T, want *ast.Binary", ret.Value)
	}
}

func TestParseEmptyProcBody(t *testing.T) {
	prog := parseSrc(t, `proc noop() { }`)
	decl := prog.Stmts[0].(*ast.ProcDecl)
	if len(decl.Params) != 0 {
		t.Fatalf("got params %v, want none", decl.Params)
	}
	if len(decl.Body.Stmts) != 0 {
		t.Fatalf("got %d body statements, want 0", len(decl.Body.Stmts))
	}
}

func TestParseIfElifElse(t *testing.T) {
	prog := parseSrc(t, `
if (a < 1) {
	mut x = 1;
} elif (a < 2) {
	mut x = 2;
} else {
	mut x = 3;
}`)
	ifs, ok := prog.Stmts[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", prog.Stmts[0])
	}
	if len(ifs.Elifs) != 1 {
		t.Fatalf("got %d elifs, want 1", len(ifs.Elifs))
	}
	if ifs.Else == nil {
		t.Fatalf("expected else clause")
	}
	cond, ok := ifs.Cond.(*ast.Binary)
	if !ok || cond.Op != ast.OpLt {
		t.Fatalf("cond is %#v, want a < 1", ifs.Cond)
	}
}

func TestParseWhile(t *testing.T) {
	prog := parseSrc(t, `while (i < 10) { i = i + 1; }`)
	w, ok := prog.Stmts[0].(*ast.While)
	if !ok {
		t.Fatalf("got %T, want *ast.While", prog.Stmts[0])
	}
	if len(w.Body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(w.Body.Stmts))
	}
	es, ok := w.Body.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.ExprStmt", w.Body.Stmts[0])
	}
	assign, ok := es.X.(*ast.Assign)
	if !ok {
		t.Fatalf("expr is %T, want *ast.Assign", es.X)
	}
	if _, ok := assign.Target.(*ast.Ident); !ok {
		t.Fatalf("assign target is %T, want *ast.Ident", assign.Target)
	}
}

func TestParseForFullAndEmptyClauses(t *testing.T) {
	prog := parseSrc(t, `for (mut i = 0; i < 3; i = i + 1) { print(i); }`)
	f, ok := prog.Stmts[0].(*ast.For)
	if !ok {
		t.Fatalf("got %T, want *ast.For", prog.Stmts[0])
	}
	if _, ok := f.Init.(*ast.VarDecl); !ok {
		t.Fatalf("init is %T, want *ast.VarDecl", f.Init)
	}
	if f.Cond == nil || f.Post == nil {
		t.Fatalf("expected cond and post to be present")
	}

	prog2 := parseSrc(t, `for (;;) { break; }`)
	f2 := prog2.Stmts[0].(*ast.For)
	if f2.Init != nil || f2.Cond != nil || f2.Post != nil {
		t.Fatalf("expected all-empty for-clauses, got %+v", f2)
	}
	if len(f2.Body.Stmts) != 1 {
		t.Fatalf("got %d body statements, want 1", len(f2.Body.Stmts))
	}
	if _, ok := f2.Body.Stmts[0].(*ast.Break); !ok {
		t.Fatalf("body[0] is %T, want *ast.Break", f2.Body.Stmts[0])
	}
}

func TestParseTryCatchThrow(t *testing.T) {
	prog := parseSrc(t, `try { throw {msg: "boom"}; } catch(e) { print(e.msg); }`)
	try, ok := prog.Stmts[0].(*ast.Try)
	if !ok {
		t.Fatalf("got %T, want *ast.Try", prog.Stmts[0])
	}
	if try.CatchVar != "e" {
		t.Fatalf("got catch var %q, want %q", try.CatchVar, "e")
	}
	throw, ok := try.Body.Stmts[0].(*ast.Throw)
	if !ok {
		t.Fatalf("body[0] is %T, want *ast.Throw", try.Body.Stmts[0])
	}
	rec, ok := throw.Value.(*ast.RecordLit)
	if !ok || len(rec.Fields) != 1 || rec.Fields[0].Name != "msg" {
		t.Fatalf("throw value is %#v", throw.Value)
	}
	call, ok := try.Catch.Stmts[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("catch[0] is %T, want *ast.ExprStmt", try.Catch.Stmts[0])
	}
	if _, ok := call.X.(*ast.Call); !ok {
		t.Fatalf("catch expr is %T, want *ast.Call", call.X)
	}
}

func TestParseClosureAndCallChain(t *testing.T) {
	prog := parseSrc(t, `mut adder = proc(x) { return proc(y) { return x + y; }; };`)
	decl := prog.Stmts[0].(*ast.VarDecl)
	outer, ok := decl.Value.(*ast.ProcLit)
	if !ok {
		t.Fatalf("value is %T, want *ast.ProcLit", decl.Value)
	}
	ret := outer.Body.Stmts[0].(*ast.Return)
	inner, ok := ret.Value.(*ast.ProcLit)
	if !ok {
		t.Fatalf("nested value is %T, want *ast.ProcLit", ret.Value)
	}
	innerRet := inner.Body.Stmts[0].(*ast.Return)
	if _, ok := innerRet.Value.(*ast.Binary); !ok {
		t.Fatalf("inner return is %T, want *ast.Binary", innerRet.Value)
	}
}

func TestParseIndexAccessCallChain(t *testing.T) {
	prog := parseSrc(t, `mut r = a[0].b(1, 2);`)
	decl := prog.Stmts[0].(*ast.VarDecl)
	call, ok := decl.Value.(*ast.Call)
	if !ok {
		t.Fatalf("value is %T, want *ast.Call", decl.Value)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(call.Args))
	}
	acc, ok := call.Callee.(*ast.Access)
	if !ok || acc.Name != "b" {
		t.Fatalf("callee is %#v, want access .b", call.Callee)
	}
	idx, ok := acc.X.(*ast.Index)
	if !ok {
		t.Fatalf("access base is %T, want *ast.Index", acc.X)
	}
	if _, ok := idx.X.(*ast.Ident); !ok {
		t.Fatalf("index base is %T, want *ast.Ident", idx.X)
	}
}

func TestParseListDictArrayLiterals(t *testing.T) {
	prog := parseSrc(t, `mut xs = [1, 2, 3];
mut ls = list(1, 2);
mut ds = dict("a" to 1, "b" to 2);`)
	arr := prog.Stmts[0].(*ast.VarDecl).Value.(*ast.ArrayLit)
	if len(arr.Elems) != 3 {
		t.Fatalf("got %d array elems, want 3", len(arr.Elems))
	}
	lst := prog.Stmts[1].(*ast.VarDecl).Value.(*ast.ListLit)
	if len(lst.Elems) != 2 {
		t.Fatalf("got %d list elems, want 2", len(lst.Elems))
	}
	dct := prog.Stmts[2].(*ast.VarDecl).Value.(*ast.DictLit)
	if len(dct.Pairs) != 2 {
		t.Fatalf("got %d dict pairs, want 2", len(dct.Pairs))
	}
	if _, ok := dct.Pairs[0].Key.(*ast.StringLit); !ok {
		t.Fatalf("dict key is %T, want *ast.StringLit", dct.Pairs[0].Key)
	}
}

func TestParseLogicalShortCircuitAndIsOperator(t *testing.T) {
	prog := parseSrc(t, `mut ok = a && b || c;
mut k = v is Int;`)
	log := prog.Stmts[0].(*ast.VarDecl).Value.(*ast.Logical)
	if log.Op != "||" {
		t.Fatalf("got top op %q, want ||", log.Op)
	}
	lhs, ok := log.Left.(*ast.Logical)
	if !ok || lhs.Op != "&&" {
		t.Fatalf("left is %#v, want a && b", log.Left)
	}

	isExpr := prog.Stmts[1].(*ast.VarDecl).Value.(*ast.Is)
	if isExpr.KindName != "Int" {
		t.Fatalf("got kind %q, want Int", isExpr.KindName)
	}
}

func TestParseAssignIsRightAssociative(t *testing.T) {
	es := parseSrc(t, `a = b = c;`).Stmts[0].(*ast.ExprStmt)
	assign, ok := es.X.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", es.X)
	}
	if _, ok := assign.Target.(*ast.Ident); !ok {
		t.Fatalf("target is %T, want *ast.Ident", assign.Target)
	}
	inner, ok := assign.Value.(*ast.Assign)
	if !ok {
		t.Fatalf("value is %T, want nested *ast.Assign", assign.Value)
	}
	if _, ok := inner.Value.(*ast.Ident); !ok {
		t.Fatalf("innermost value is %T, want *ast.Ident", inner.Value)
	}
}

func TestParseImportWithAlias(t *testing.T) {
	prog := parseSrc(t, `import "io" as io;`)
	imp, ok := prog.Stmts[0].(*ast.Import)
	if !ok {
		t.Fatalf("got %T, want *ast.Import", prog.Stmts[0])
	}
	if imp.Path != "io" || imp.Alias != "io" {
		t.Fatalf("got %+v", imp)
	}
}

func TestParseUnaryPrecedence(t *testing.T) {
	prog := parseSrc(t, `mut n = -a + !b;`)
	bin := prog.Stmts[0].(*ast.VarDecl).Value.(*ast.Binary)
	if bin.Op != ast.OpAdd {
		t.Fatalf("got op %q, want +", bin.Op)
	}
	if _, ok := bin.Left.(*ast.Unary); !ok {
		t.Fatalf("left is %T, want *ast.Unary", bin.Left)
	}
	if _, ok := bin.Right.(*ast.Unary); !ok {
		t.Fatalf("right is %T, want *ast.Unary", bin.Right)
	}
}
