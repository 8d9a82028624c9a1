package lintdoc

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/takumakei/docgen-go/rules"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// processDocs renders the documentation markdown of a rule into page
// content. Ordinary constructs are re-emitted as markdown, fenced code
// blocks are re-labelled from their attribute line and run through the
// analyzer. The first paragraph is returned separately, it becomes the
// rule summary on the index page.
func processDocs(ctx context.Context, analyzer Analyzer, rule rules.Rule) (body, summary string, err error) {
	source := []byte(rule.Docs)
	doc := markdown.Parser().Parse(text.NewReader(source))
	p := &docProcessor{
		ctx:      ctx,
		out:      new(bytes.Buffer),
		source:   source,
		analyzer: analyzer,
		rule:     rule,
	}
	if err := p.blocks(doc); err != nil {
		return "", "", err
	}
	return p.out.String(), p.summary, nil
}

type docProcessor struct {
	ctx      context.Context
	out      *bytes.Buffer
	source   []byte
	summary  string
	analyzer Analyzer
	rule     rules.Rule
}

func (p *docProcessor) blocks(parent ast.Node) error {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if err := p.block(n); err != nil {
			return err
		}
	}
	return nil
}

func (p *docProcessor) block(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Heading:
		p.out.WriteString(strings.Repeat("#", n.Level))
		p.out.WriteByte(' ')
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteString("\n\n")
	case *ast.Paragraph:
		if p.summary == "" {
			p.summary = rawLines(p.source, n)
		}
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteString("\n\n")
	case *ast.FencedCodeBlock:
		return p.codeBlock(n)
	case *ast.List:
		return p.list(n, 0)
	case *ast.Blockquote:
		return p.blockquote(n)
	case *ast.ThematicBreak:
		p.out.WriteString("---\n\n")
	default:
		return fmt.Errorf("unsupported markdown construct %v in rule docs", n.Kind())
	}
	return nil
}

func (p *docProcessor) list(n *ast.List, depth int) error {
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			switch c.Kind() {
			case ast.KindTextBlock, ast.KindParagraph:
				p.out.WriteString(strings.Repeat("  ", depth))
				if n.IsOrdered() {
					fmt.Fprintf(p.out, "%d. ", num)
					num++
				} else {
					p.out.WriteString("- ")
				}
				if err := p.inlines(c); err != nil {
					return err
				}
				p.out.WriteByte('\n')
			case ast.KindList:
				if err := p.list(c.(*ast.List), depth+1); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported markdown construct %v in list item", c.Kind())
			}
		}
	}
	if depth == 0 {
		p.out.WriteByte('\n')
	}
	return nil
}

func (p *docProcessor) blockquote(n *ast.Blockquote) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		p.out.WriteString("> ")
		if err := p.inlines(c); err != nil {
			return err
		}
		p.out.WriteByte('\n')
	}
	p.out.WriteByte('\n')
	return nil
}

func (p *docProcessor) inlines(parent ast.Node) error {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if err := p.inline(n); err != nil {
			return err
		}
	}
	return nil
}

func (p *docProcessor) inline(n ast.Node) error {
	switch n := n.(type) {
	case *ast.Text:
		p.out.Write(n.Segment.Value(p.source))
		if n.HardLineBreak() {
			p.out.WriteString("<br />\n")
		} else if n.SoftLineBreak() {
			p.out.WriteByte('\n')
		}
	case *ast.String:
		p.out.Write(n.Value)
	case *ast.CodeSpan:
		p.out.WriteByte('`')
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteByte('`')
	case *ast.Emphasis:
		marker := "_"
		if n.Level == 2 {
			marker = "**"
		}
		p.out.WriteString(marker)
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteString(marker)
	case *east.Strikethrough:
		p.out.WriteByte('~')
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteByte('~')
	case *ast.Link:
		p.out.WriteByte('[')
		if err := p.inlines(n); err != nil {
			return err
		}
		p.out.WriteString("](")
		p.out.Write(n.Destination)
		if len(n.Title) > 0 {
			fmt.Fprintf(p.out, " %q", n.Title)
		}
		p.out.WriteByte(')')
	case *ast.AutoLink:
		p.out.WriteByte('<')
		p.out.Write(n.URL(p.source))
		p.out.WriteByte('>')
	case *ast.RawHTML:
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			p.out.Write(seg.Value(p.source))
		}
	default:
		return fmt.Errorf("unsupported markdown construct %v in rule docs", n.Kind())
	}
	return nil
}

func (p *docProcessor) codeBlock(n *ast.FencedCodeBlock) error {
	var info string
	if n.Info != nil {
		info = string(n.Info.Segment.Value(p.source))
	}
	attrs := ParseBlockAttrs(info)

	// The attribute line of the source block is collapsed to the bare
	// language label in the output.
	p.out.WriteString("```")
	if strings.TrimSpace(info) != "" {
		p.out.WriteString(attrs.Lang)
	}
	p.out.WriteByte('\n')
	code := rawBlock(p.source, n)
	p.out.WriteString(code)
	p.out.WriteString("```\n\n")

	if attrs.Ignore || attrs.Foreign {
		return nil
	}

	diags, err := p.analyzer.Analyze(p.ctx, CodeBlock{
		Path: p.rule.Group + "/" + p.rule.Name + attrs.ext(),
		Lang: attrs.Lang,
		Code: code,
	})
	if err != nil {
		return fmt.Errorf("check of code block failed: %w", err)
	}

	if attrs.ExpectDiagnostic {
		switch len(diags) {
		case 1:
			p.out.WriteString(`<pre class="language-text"><code class="language-text">`)
			writeDiagnostic(p.out, diags[0])
			p.out.WriteString("</code></pre>\n\n")
			return nil
		case 0:
			return fmt.Errorf("analysis returned no diagnostics, code snippet:\n%s", code)
		default:
			return fmt.Errorf("analysis returned multiple diagnostics, code snippet:\n%s", code)
		}
	}
	if len(diags) > 0 {
		return fmt.Errorf("analysis returned an unexpected diagnostic %s, code snippet:\n%s", diags[0].Category, code)
	}
	return nil
}

func writeDiagnostic(w *bytes.Buffer, d Diagnostic) {
	fmt.Fprintf(w, "%s: %s\n", d.Category, html.EscapeString(d.Message))
}

func rawLines(source []byte, n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimSpace(strings.ReplaceAll(b.String(), "\n", " "))
}

func rawBlock(source []byte, n *ast.FencedCodeBlock) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

// summaryHTML converts the summary markdown of a rule into a single
// line of inline HTML for the index table.
func summaryHTML(summary string) (string, error) {
	buf := new(bytes.Buffer)
	if err := markdown.Convert(util.StringToReadOnlyBytes(summary), buf); err != nil {
		return "", err
	}
	s := strings.TrimSpace(buf.String())
	s = strings.TrimPrefix(s, "<p>")
	s = strings.TrimSuffix(s, "</p>")
	return strings.ReplaceAll(s, "\n", " "), nil
}
