// Package lintdoc generates the lint rule documentation tree of the
// website from a rule manifest: one page per rule, the index page and
// the generated reference fragments.
package lintdoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/goaux/stacktrace/v2"

	"github.com/takumakei/docgen-go/execrun"
	"github.com/takumakei/docgen-go/rules"
)

const marker = "<!-- this file is auto generated, use `docgen gen lintdoc` to update it -->"

const indexHeader = `---
title: Rules
description: List of available lint rules.
---

import RecommendedRules from "@/components/generated/RecommendedRules.astro";
import { Icon } from "@astrojs/starlight/components";

Below the list of rules supported by the linter, divided by group. Here's a legend of the emojis:
- The icon <span class='inline-icon'><Icon name="approve-check-circle" label="This rule is recommended" /></span> indicates that the rule is part of the recommended rules.
- The icon <span class='inline-icon'><Icon name="seti:config" label="The rule has a safe fix" /></span> indicates that the rule provides a code action (fix) that is **safe** to apply.
- The icon <span class='inline-icon'><Icon name="warning" label="The rule has an unsafe fix" /></span> indicates that the rule provides a code action (fix) that is **unsafe** to apply.
- The icon <span class='inline-icon'><Icon name="seti:javascript" label="JavaScript and super languages rule" /></span> indicates that the rule is applied to JavaScript and super languages files.
- The icon <span class='inline-icon'><Icon name="seti:typescript" label="TypeScript rule" /></span> indicates that the rule is applied to TypeScript and TSX files.
- The icon <span class='inline-icon'><Icon name="seti:json" label="JSON rule" /></span> indicates that the rule is applied to JSON files.
`

const indexFooter = `
## Recommended rules

The recommended rules are:

<RecommendedRules />
`

// Options configures a lintdoc run.
type Options struct {
	// SiteDir is the website root; generated files land under
	// src/content/docs/linter and src/components/generated.
	SiteDir string

	// Analyzer checks documentation code blocks.
	Analyzer Analyzer

	// Format pipes every generated page through the Formatter command.
	Format    bool
	Formatter []string

	Logger *slog.Logger
}

func (o Options) rulesDir() string {
	return filepath.Join(o.SiteDir, "src", "content", "docs", "linter", "rules")
}

func (o Options) componentsDir() string {
	return filepath.Join(o.SiteDir, "src", "components", "generated")
}

// Generate renders the whole rule documentation tree. Page failures are
// accumulated so a single run reports every broken rule, then the run
// fails.
func Generate(ctx context.Context, reg *rules.Registry, opts Options) error {
	if opts.Analyzer == nil {
		return errors.New("lintdoc: analyzer is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Format {
		if len(opts.Formatter) == 0 {
			return errors.New("lintdoc: formatter command is empty")
		}
		if err := execrun.CheckPath(opts.Formatter[0]); err != nil {
			return fmt.Errorf("%s was not found, consider using `--format=false`", opts.Formatter[0])
		}
	}

	if err := stacktrace.Trace(os.RemoveAll(opts.rulesDir())); err != nil {
		return err
	}
	for _, dir := range []string{opts.rulesDir(), opts.componentsDir()} {
		if err := stacktrace.Trace(os.MkdirAll(dir, 0o755)); err != nil {
			return err
		}
	}

	g := &generator{reg: reg, opts: opts}
	g.index.WriteString(indexHeader)
	g.reference.WriteString(marker + "\n")
	for _, group := range reg.Groups() {
		g.group(ctx, group)
	}
	if len(g.failures) > 0 {
		return fmt.Errorf("failed to generate documentation pages for the following rules:\n%w", errors.Join(g.failures...))
	}
	g.index.WriteString(indexFooter)

	recommended := fmt.Sprintf("%s\n<ul>\n%s\n</ul>", marker, g.recommended.String())
	count := fmt.Sprintf("%s\n%d", marker, reg.Len())

	files := map[string][]byte{
		filepath.Join(opts.rulesDir(), "index.mdx"):                   g.index.Bytes(),
		filepath.Join(opts.componentsDir(), "Groups.astro"):           g.reference.Bytes(),
		filepath.Join(opts.componentsDir(), "NumberOfRules.astro"):    []byte(count),
		filepath.Join(opts.componentsDir(), "RecommendedRules.astro"): []byte(recommended),
	}
	for path, data := range files {
		if err := stacktrace.Trace(os.WriteFile(path, data, 0o644)); err != nil {
			return err
		}
	}
	opts.Logger.Info("rule documentation generated", "rules", reg.Len(), "dir", opts.rulesDir())
	return nil
}

type generator struct {
	reg  *rules.Registry
	opts Options

	index       bytes.Buffer
	reference   bytes.Buffer
	recommended strings.Builder
	failures    []error
}

func (g *generator) group(ctx context.Context, group rules.Group) {
	fmt.Fprintf(&g.index, "\n## %s\n\n%s\n\n", group.Title, group.Description)
	fmt.Fprintln(&g.index, "| Rule name | Description | Properties |")
	fmt.Fprintln(&g.index, "| --- | --- | --- |")

	for _, rule := range g.reg.Rules(group.ID) {
		// Rules that haven't been released yet are not documented.
		if !rule.Released() {
			g.opts.Logger.Debug("skipping unreleased rule", "rule", rule.Name)
			continue
		}
		isRecommended := group.ID != rules.Nursery && rule.Recommended
		if isRecommended {
			fmt.Fprintf(&g.recommended, "\t<li><a href='/linter/rules/%s'>%s</a></li>\n", rule.Slug(), rule.Name)
		}
		summary, err := g.page(ctx, group, rule, isRecommended)
		if err != nil {
			g.failures = append(g.failures, fmt.Errorf("- %s: %w", rule.Name, err))
			continue
		}
		fmt.Fprintf(&g.index, "| [%s](/linter/rules/%s) | %s | %s |\n",
			rule.Name, rule.Slug(), summary, properties(rule, isRecommended))
	}

	fmt.Fprintf(&g.reference, "<li><code>%s</code>: %s</li>\n",
		strings.ToLower(group.Title), strings.ReplaceAll(group.Description, "\n", " "))
}

// page renders the documentation page for a single lint rule and
// returns the summary cell for the index table.
func (g *generator) page(ctx context.Context, group rules.Group, rule rules.Rule, isRecommended bool) (string, error) {
	content := new(bytes.Buffer)

	titleVersion := "(not released)"
	if rule.Released() {
		titleVersion = fmt.Sprintf("(since v%s)", rule.Version)
	}
	fmt.Fprintf(content, "---\ntitle: %s %s\n---\n\n", rule.Name, titleVersion)
	fmt.Fprintf(content, "**Diagnostic Category: `lint/%s/%s`**\n\n", group.ID, rule.Name)

	if isRecommended || rule.FixKind != rules.FixNone {
		content.WriteString(":::note\n")
		if isRecommended {
			content.WriteString("- This rule is recommended. A diagnostic error will appear when linting your code.\n")
		}
		switch rule.FixKind {
		case rules.FixSafe:
			content.WriteString("- This rule has a **safe** fix.\n")
		case rules.FixUnsafe:
			content.WriteString("- This rule has an **unsafe** fix.\n")
		}
		content.WriteString(languageNote(rule.Language))
		content.WriteString(":::\n\n")
	}

	if group.ID == rules.Nursery {
		content.WriteString(":::caution\nThis rule is part of the [nursery](/linter/rules/#nursery) group.\n:::\n\n")
	}

	if len(rule.Sources) > 0 {
		content.WriteString("Sources: \n")
		for _, src := range rule.Sources {
			label := "Same as"
			if src.Kind == rules.SourceInspired {
				label = "Inspired from"
			}
			fmt.Fprintf(content, "- %s: <a href=\"%s\" target=\"_blank\"><code>%s</code></a>\n", label, src.URL, src.Rule)
		}
		content.WriteByte('\n')
	}

	body, summary, err := processDocs(ctx, g.opts.Analyzer, rule)
	if err != nil {
		return "", err
	}
	content.WriteString(body)

	content.WriteString("## Related links\n\n")
	content.WriteString("- [Disable a rule](/linter/#disable-a-lint-rule)\n")
	content.WriteString("- [Rule options](/linter/#rule-options)\n")

	page := content
	if g.opts.Format {
		formatted := new(bytes.Buffer)
		cmd := g.opts.Formatter
		if err := execrun.Pipe(formatted, page, cmd[0], cmd[1:]...); err != nil {
			return "", err
		}
		page = formatted
	}

	path := filepath.Join(g.opts.rulesDir(), rule.Slug()+".md")
	if err := stacktrace.Trace(os.WriteFile(path, page.Bytes(), 0o644)); err != nil {
		return "", err
	}
	return summaryHTML(summary)
}

func languageNote(lang string) string {
	switch lang {
	case "js":
		return "- This rule is applied to **JavaScript and super languages** files.\n"
	case "jsx":
		return "- This rule is applied to **JSX and TSX** files.\n"
	case "ts":
		return "- This rule is applied to **TypeScript and TSX** files.\n"
	case "json":
		return "- This rule is applied to **JSON** files.\n"
	case "css":
		return "- This rule is applied to **CSS** files.\n"
	}
	return ""
}

func properties(rule rules.Rule, isRecommended bool) string {
	var b strings.Builder
	if isRecommended {
		b.WriteString(`<span class='inline-icon'><Icon name="approve-check-circle" size="1.2rem" label="This rule is recommended" /></span>`)
	}
	switch rule.FixKind {
	case rules.FixSafe:
		b.WriteString(`<span class='inline-icon'><Icon name="seti:config" label="The rule has a safe fix" size="1.2rem" /></span>`)
	case rules.FixUnsafe:
		b.WriteString(`<span class='inline-icon'><Icon name="warning" label="The rule has an unsafe fix" size="1.2rem" /></span>`)
	}
	switch rule.Language {
	case "js":
		b.WriteString(`<span class='inline-icon'><Icon name="seti:javascript" label="JavaScript and super languages rule" size="1.2rem" /></span>`)
	case "jsx":
		b.WriteString(`<span class='inline-icon'><Icon name="seti:javascript" label="JSX rule" size="1.2rem" /></span>`)
	case "ts":
		b.WriteString(`<span class='inline-icon'><Icon name="seti:typescript" label="TypeScript rule" size="1.2rem" /></span>`)
	case "json":
		b.WriteString(`<span class='inline-icon'><Icon name="seti:json" label="JSON rule" size="1.2rem" /></span>`)
	case "css":
		b.WriteString(`<span class='inline-icon'><Icon name="seti:css" label="CSS rule" size="1.2rem" /></span>`)
	}
	return b.String()
}
