package rill

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	diagHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	diagMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	diagErrorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// DumpTokens renders a verbose, styled token listing, one token per line,
// for --verbose diagnostics.
func DumpTokens(tokens []Token) string {
	var b strings.Builder
	b.WriteString(diagHeaderStyle.Render("tokens") + "\n")
	for _, tok := range tokens {
		pos := diagMutedStyle.Render(strconv.Itoa(tok.Row) + ":" + strconv.Itoa(tok.Column))
		b.WriteString(fmt.Sprintf("%s  %-12s %q\n", pos, tok.Kind.String(), tok.Value))
	}
	return b.String()
}

// DumpAST renders an indented, styled tree of a parsed Root for --verbose
// diagnostics.
func DumpAST(root *Root) string {
	var b strings.Builder
	b.WriteString(diagHeaderStyle.Render("ast") + "\n")
	names := make([]string, 0, len(root.Functions))
	for name := range root.Functions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fn := root.Functions[name]
		b.WriteString(fmt.Sprintf("fn %s(%s)\n", name, strings.Join(fn.Params, ", ")))
		dumpStatements(&b, fn.Body.Body, 1)
	}
	dumpStatements(&b, root.Statements, 0)
	return b.String()
}

func dumpStatements(b *strings.Builder, stmts []Statement, depth int) {
	for _, s := range stmts {
		dumpNode(b, s, depth)
	}
}

func indent(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
}

func dumpNode(b *strings.Builder, n Node, depth int) {
	indent(b, depth)
	switch v := n.(type) {
	case *DeclarationStmt:
		b.WriteString("Declaration " + v.Name + "\n")
		dumpNode(b, v.Value, depth+1)
	case *AssignmentStmt:
		b.WriteString("Assignment $" + v.Target.Name + "\n")
		dumpNode(b, v.Value, depth+1)
	case *ReturnStmt:
		b.WriteString("Return\n")
		if v.Value != nil {
			dumpNode(b, v.Value, depth+1)
		}
	case *ScopeStmt:
		b.WriteString("Scope\n")
		dumpStatements(b, v.Body, depth+1)
	case *BranchStmt:
		b.WriteString("Branch\n")
		dumpNode(b, v.Condition, depth+1)
		dumpNode(b, v.Then, depth+1)
		if v.Else != nil {
			dumpNode(b, v.Else, depth+1)
		}
	case *LoopStmt:
		if v.Iterable != nil {
			b.WriteString("Loop for " + v.Iterator + " in\n")
			dumpNode(b, v.Iterable, depth+1)
		} else {
			b.WriteString("Loop while\n")
			dumpNode(b, v.Condition, depth+1)
		}
		dumpNode(b, v.Body, depth+1)
	case *ExprStmt:
		b.WriteString("ExprStmt\n")
		dumpNode(b, v.Expr, depth+1)
	case *FunctionCallExpr:
		b.WriteString("FunctionCall " + v.Name + "\n")
		for _, a := range v.Args {
			dumpNode(b, a, depth+1)
		}
		if v.Pipe != nil {
			indent(b, depth)
			b.WriteString("| \n")
			dumpNode(b, v.Pipe, depth+1)
		}
	case *BinaryExpr:
		b.WriteString("BinaryOperator " + v.Tok.Kind.String() + "\n")
		dumpNode(b, v.Left, depth+1)
		dumpNode(b, v.Right, depth+1)
	case *UnaryExpr:
		b.WriteString("UnaryOperator " + v.Tok.Kind.String() + "\n")
		dumpNode(b, v.Operand, depth+1)
	case *ArrayLiteralExpr:
		b.WriteString("ArrayLiteral\n")
		for _, e := range v.Elements {
			dumpNode(b, e, depth+1)
		}
	case *VariableExpr:
		b.WriteString("Variable $" + v.Name + "\n")
	case *IdentifierExpr:
		b.WriteString("Identifier " + v.Name + "\n")
	case *BarewordExpr:
		b.WriteString("Bareword " + v.Value + "\n")
	case *StringLiteralExpr:
		b.WriteString(fmt.Sprintf("StringLiteral %q\n", v.Raw))
	case *BoolLiteralExpr:
		b.WriteString(fmt.Sprintf("BoolLiteral %v\n", v.Value))
	case *IntegerLiteralExpr:
		b.WriteString(fmt.Sprintf("IntegerLiteral %d\n", v.Value))
	default:
		b.WriteString(fmt.Sprintf("%T\n", v))
	}
}

// RenderError styles a parse or runtime error's one-line message the way
// the teacher's CLI highlights error output, without introducing a
// logging dependency.
func RenderError(err error) string {
	return diagErrorStyle.Render("error: ") + err.Error()
}
