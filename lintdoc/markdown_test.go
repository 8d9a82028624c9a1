package lintdoc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takumakei/docgen-go/rules"
)

type analyzerFunc func(ctx context.Context, block CodeBlock) ([]Diagnostic, error)

func (f analyzerFunc) Analyze(ctx context.Context, block CodeBlock) ([]Diagnostic, error) {
	return f(ctx, block)
}

func noDiagnostics(context.Context, CodeBlock) ([]Diagnostic, error) {
	return nil, nil
}

func oneDiagnostic(_ context.Context, block CodeBlock) ([]Diagnostic, error) {
	return []Diagnostic{{Category: "lint/" + block.Path, Message: "found it"}}, nil
}

func docsRule(docs string) rules.Rule {
	return rules.Rule{Name: "noVar", Group: "style", Version: "1.0.0", Language: "js", Docs: docs}
}

func TestProcessDocsSummary(t *testing.T) {
	docs := "Disallow `var` declarations.\nUse `let` instead.\n\nSecond paragraph.\n"
	body, summary, err := processDocs(context.Background(), analyzerFunc(noDiagnostics), docsRule(docs))
	require.NoError(t, err)
	assert.Equal(t, "Disallow `var` declarations. Use `let` instead.", summary)
	assert.Contains(t, body, "Disallow `var` declarations.")
	assert.Contains(t, body, "Second paragraph.")
}

func TestProcessDocsConstructs(t *testing.T) {
	docs := "## Options\n\nUse **bold** and _em_ and [a link](https://example.com).\n\n- first\n- second\n"
	body, _, err := processDocs(context.Background(), analyzerFunc(noDiagnostics), docsRule(docs))
	require.NoError(t, err)
	assert.Contains(t, body, "## Options")
	assert.Contains(t, body, "**bold**")
	assert.Contains(t, body, "_em_")
	assert.Contains(t, body, "[a link](https://example.com)")
	assert.Contains(t, body, "- first\n- second\n")
}

func TestProcessDocsRelabelsCodeBlock(t *testing.T) {
	docs := "Some rule.\n\n```js,expect_diagnostic\nvar x = 1;\n```\n"
	body, _, err := processDocs(context.Background(), analyzerFunc(oneDiagnostic), docsRule(docs))
	require.NoError(t, err)
	// the attribute line collapses to the language label
	assert.Contains(t, body, "```jsx\nvar x = 1;\n```")
	assert.Contains(t, body, `<pre class="language-text">`)
	assert.Contains(t, body, "found it")
}

func TestProcessDocsExpectDiagnostic(t *testing.T) {
	docs := "Some rule.\n\n```js,expect_diagnostic\nvar x = 1;\n```\n"
	_, _, err := processDocs(context.Background(), analyzerFunc(noDiagnostics), docsRule(docs))
	assert.ErrorContains(t, err, "no diagnostics")
}

func TestProcessDocsUnexpectedDiagnostic(t *testing.T) {
	docs := "Some rule.\n\n```js\nvar x = 1;\n```\n"
	_, _, err := processDocs(context.Background(), analyzerFunc(oneDiagnostic), docsRule(docs))
	assert.ErrorContains(t, err, "unexpected diagnostic")
}

func TestProcessDocsSkipsForeignAndIgnoredBlocks(t *testing.T) {
	var calls int
	counting := analyzerFunc(func(context.Context, CodeBlock) ([]Diagnostic, error) {
		calls++
		return nil, nil
	})
	docs := "Some rule.\n\n```sh\nrm -rf node_modules\n```\n\n```js,ignore\nvar x = 1;\n```\n"
	body, _, err := processDocs(context.Background(), counting, docsRule(docs))
	require.NoError(t, err)
	assert.Zero(t, calls)
	assert.Contains(t, body, "```sh\n")
}

func TestProcessDocsKeepsRawHTML(t *testing.T) {
	docs := "Prefer <code>let</code> over <code>var</code>.\n"
	body, summary, err := processDocs(context.Background(), analyzerFunc(noDiagnostics), docsRule(docs))
	require.NoError(t, err)
	assert.Contains(t, body, "Prefer <code>let</code> over <code>var</code>.")
	assert.Contains(t, summary, "<code>let</code>")
}

func TestSummaryHTML(t *testing.T) {
	s, err := summaryHTML("Disallow `var` declarations.")
	require.NoError(t, err)
	assert.Equal(t, "Disallow <code>var</code> declarations.", s)
}
