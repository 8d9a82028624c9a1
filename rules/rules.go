// Package rules models the lint rule registry that the documentation
// generators consume.
package rules

import (
	"strings"
	"unicode"
)

// FixKind tells whether a rule ships a code fix and how safe it is to
// apply.
type FixKind string

const (
	FixNone   FixKind = ""
	FixSafe   FixKind = "safe"
	FixUnsafe FixKind = "unsafe"
)

// SourceKind tells how closely a rule follows the source it was taken
// from.
type SourceKind string

const (
	SourceSameLogic SourceKind = "same-logic"
	SourceInspired  SourceKind = "inspired"
)

// Source points at the rule of another tool this rule derives from.
type Source struct {
	Tool string     `yaml:"tool"`
	Rule string     `yaml:"rule"`
	URL  string     `yaml:"url"`
	Kind SourceKind `yaml:"kind"`
}

// Rule is one lint rule entry of the manifest. Docs holds the rule
// documentation as markdown.
type Rule struct {
	Name        string   `yaml:"name"`
	Group       string   `yaml:"group"`
	Version     string   `yaml:"version"`
	Recommended bool     `yaml:"recommended"`
	FixKind     FixKind  `yaml:"fix_kind"`
	Language    string   `yaml:"language"`
	Sources     []Source `yaml:"sources"`
	Docs        string   `yaml:"docs"`
}

// Released reports whether the rule is part of a released version.
// Unreleased rules carry the version "next" and get no documentation
// page.
func (r Rule) Released() bool {
	return r.Version != "next"
}

// Slug returns the kebab-case form of the rule name, used as its page
// file name and URL segment.
func (r Rule) Slug() string {
	var b strings.Builder
	for _, c := range r.Name {
		if unicode.IsUpper(c) {
			if b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(c))
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// Group is one rule group of the manifest.
type Group struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Nursery is the group holding rules still under development. It is
// always documented last and its rules are never recommended.
const Nursery = "nursery"
