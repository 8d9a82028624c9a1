package lintdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goaux/stacktrace/v2"

	"github.com/takumakei/docgen-go/rules"
)

const sourcesHeader = `---
title: Rules sources
description: A page that maps the lint rules of other tools to the rules of the linter.
---
`

type sourceEntry struct {
	source rules.Source
	rule   rules.Rule
}

// GenerateSources renders the rules-sources page: one section per
// upstream tool, each mapping its rules to ours.
func GenerateSources(reg *rules.Registry, opts Options) error {
	byTool := make(map[string][]sourceEntry)
	for _, group := range reg.Groups() {
		if group.ID == rules.Nursery {
			// nursery rules stay off the sources page until they
			// graduate to a stable group
			continue
		}
		for _, rule := range reg.Rules(group.ID) {
			if !rule.Released() {
				continue
			}
			for _, src := range rule.Sources {
				tool := src.Tool
				if tool == "" {
					tool = "Other"
				}
				byTool[tool] = append(byTool[tool], sourceEntry{source: src, rule: rule})
			}
		}
	}

	tools := make([]string, 0, len(byTool))
	for tool := range byTool {
		tools = append(tools, tool)
	}
	sort.Strings(tools)

	content := new(bytes.Buffer)
	content.WriteString(sourcesHeader)
	content.WriteString("\n" + marker + "\n")
	for _, tool := range tools {
		entries := byTool[tool]
		sort.Slice(entries, func(i, j int) bool { return entries[i].source.Rule < entries[j].source.Rule })

		fmt.Fprintf(content, "\n## %s\n", tool)
		fmt.Fprintf(content, "| %s rule name | Rule name |\n", tool)
		content.WriteString("| ---- | ---- |\n")
		for _, e := range entries {
			name := e.rule.Name
			if e.source.Kind == rules.SourceInspired {
				name += " (inspired)"
			}
			fmt.Fprintf(content, "| [%s](%s) | [%s](/linter/rules/%s) |\n",
				e.source.Rule, e.source.URL, name, e.rule.Slug())
		}
	}

	dir := filepath.Join(opts.SiteDir, "src", "content", "docs", "linter")
	if err := stacktrace.Trace(os.MkdirAll(dir, 0o755)); err != nil {
		return err
	}
	return stacktrace.Trace(os.WriteFile(filepath.Join(dir, "rules-sources.mdx"), content.Bytes(), 0o644))
}
