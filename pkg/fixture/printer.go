package fixture

import (
	"fmt"
	"strings"

	"github.com/plasmerge/plasmerge/pkg/model"
)

// Printer is a reference implementation of assemble.Printer: a deterministic
// text rendering of a merged Program, good enough to assert against in
// tests and to drive the demonstration binary. It makes no claim to
// producing syntactically valid JavaScript for every RawKind — only the
// shapes this module's algorithms actually emit.
type Printer struct{}

func (Printer) Print(program *model.RawNode) (string, error) {
	var b strings.Builder
	for i, stmt := range program.Children {
		if i > 0 {
			b.WriteString("\n\n")
		}
		printNode(&b, stmt)
	}
	return b.String(), nil
}

func printNode(b *strings.Builder, n *model.RawNode) {
	if n == nil {
		return
	}
	for _, c := range n.LeadingComments {
		b.WriteString("// " + c + "\n")
	}
	switch n.Kind {
	case model.RawProgram:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString("\n\n")
			}
			printNode(b, c)
		}
	case model.RawImportDeclaration:
		printImport(b, n)
	case model.RawJSXElement:
		printElement(b, n)
	case model.RawJSXExpressionContainer:
		b.WriteString("{")
		printNode(b, n.Value)
		b.WriteString("}")
	case model.RawJSXSpreadAttribute:
		b.WriteString("{...")
		printNode(b, n.Value)
		b.WriteString("}")
	case model.RawJSXAttribute:
		b.WriteString(n.Text)
		if n.Value != nil {
			b.WriteString("=")
			if n.Value.Kind == model.RawStringLiteral {
				fmt.Fprintf(b, "%q", n.Value.Text)
			} else {
				printNode(b, n.Value)
			}
		}
	case model.RawJSXText:
		b.WriteString(n.Text)
	case model.RawStringLiteral:
		fmt.Fprintf(b, "%q", n.Text)
	case model.RawNullLiteral:
		b.WriteString("null")
	case model.RawBooleanLiteral:
		b.WriteString(n.Text)
	case model.RawCallExpression:
		printNode(b, n.Value)
		b.WriteString("(")
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString(", ")
			}
			printNode(b, c)
		}
		b.WriteString(")")
	case model.RawMemberExpression:
		b.WriteString(n.Text)
		b.WriteString(".")
		b.WriteString(n.Text2)
	case model.RawIdentifier:
		b.WriteString(n.Text)
	case model.RawLogicalAnd:
		printNode(b, n.Children[0])
		b.WriteString(" && ")
		printNode(b, n.Children[1])
	case model.RawOpaqueExpression:
		b.WriteString(n.Text)
	default:
		b.WriteString(fmt.Sprintf("/* unprintable kind %s */", n.Kind))
	}
}

func printImport(b *strings.Builder, n *model.RawNode) {
	b.WriteString("import ")
	var defaultSpec, namespaceSpec *model.RawNode
	var named []*model.RawNode
	for _, s := range n.Children {
		switch s.Kind {
		case model.RawImportDefaultSpecifier:
			defaultSpec = s
		case model.RawImportNamespaceSpecifier:
			namespaceSpec = s
		case model.RawImportSpecifier:
			named = append(named, s)
		}
	}
	var parts []string
	if defaultSpec != nil {
		parts = append(parts, defaultSpec.Text)
	}
	if namespaceSpec != nil {
		parts = append(parts, "* as "+namespaceSpec.Text)
	}
	if len(named) > 0 {
		var items []string
		for _, s := range named {
			if s.Text2 != "" && s.Text2 != s.Text {
				items = append(items, s.Text2+" as "+s.Text)
			} else {
				items = append(items, s.Text)
			}
		}
		parts = append(parts, "{ "+strings.Join(items, ", ")+" }")
	}
	b.WriteString(strings.Join(parts, ", "))
	fmt.Fprintf(b, " from %q;", n.Text)
	if n.TrailingComment != "" {
		b.WriteString(" " + n.TrailingComment)
	}
}

func printElement(b *strings.Builder, n *model.RawNode) {
	b.WriteString("<" + n.Text)
	for _, a := range n.Attrs {
		b.WriteString(" ")
		printNode(b, a)
	}
	if n.SelfClosing {
		b.WriteString(" />")
		return
	}
	b.WriteString(">")
	for _, c := range n.Children {
		printNode(b, c)
	}
	b.WriteString("</" + n.Text + ">")
}
