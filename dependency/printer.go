package dependency

import (
	"fmt"
	"io"
	"strings"
)

// TextPrinter writes the graph as an indented outline:
//
//	com.example
//	    Shape
//	        <-- com.example.Main
//	        --> java.lang.Object *
//	        area()
//
// Edges print the full name of the other end; a trailing "*" marks nodes
// that were referenced but never parsed.
type TextPrinter struct {
	VisitorBase
	w      io.Writer
	indent string
	depth  int
	err    error
}

func NewTextPrinter(w io.Writer) *TextPrinter {
	p := &TextPrinter{w: w, indent: "    "}
	p.Bind(p)
	return p
}

// SetIndent changes the text written per nesting level.
func (p *TextPrinter) SetIndent(indent string) { p.indent = indent }

// Err returns the first write error.
func (p *TextPrinter) Err() error { return p.err }

func (p *TextPrinter) line(text string, confirmed bool) {
	if p.err != nil {
		return
	}
	marker := ""
	if !confirmed {
		marker = " *"
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s%s\n", strings.Repeat(p.indent, p.depth), text, marker)
}

func (p *TextPrinter) VisitPackageNode(node *PackageNode) {
	name := node.Name()
	if name == "" {
		name = "(default package)"
	}
	p.line(name, node.IsConfirmed())
	p.depth++
	p.VisitorBase.VisitPackageNode(node)
	p.depth--
}

func (p *TextPrinter) VisitClassNode(node *ClassNode) {
	p.line(node.SimpleName(), node.IsConfirmed())
	p.depth++
	p.VisitorBase.VisitClassNode(node)
	p.depth--
}

func (p *TextPrinter) VisitFeatureNode(node *FeatureNode) {
	p.line(node.SimpleName(), node.IsConfirmed())
	p.depth++
	p.VisitorBase.VisitFeatureNode(node)
	p.depth--
}

func (p *TextPrinter) edge(arrow string, node Node) {
	p.line(arrow+" "+node.Name(), node.IsConfirmed())
}

func (p *TextPrinter) VisitInboundPackageNode(node *PackageNode)  { p.edge("<--", node) }
func (p *TextPrinter) VisitOutboundPackageNode(node *PackageNode) { p.edge("-->", node) }
func (p *TextPrinter) VisitInboundClassNode(node *ClassNode)      { p.edge("<--", node) }
func (p *TextPrinter) VisitOutboundClassNode(node *ClassNode)     { p.edge("-->", node) }
func (p *TextPrinter) VisitInboundFeatureNode(node *FeatureNode)  { p.edge("<--", node) }
func (p *TextPrinter) VisitOutboundFeatureNode(node *FeatureNode) { p.edge("-->", node) }
