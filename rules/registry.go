package rules

import (
	"fmt"
	"os"
	"sort"

	"github.com/goaux/stacktrace/v2"
	"gopkg.in/yaml.v3"
)

// Registry is a validated rule manifest, ready for the generators.
type Registry struct {
	groups  []Group
	byGroup map[string][]Rule
	count   int
}

type manifest struct {
	Groups []Group `yaml:"groups"`
	Rules  []Rule  `yaml:"rules"`
}

var languages = map[string]bool{
	"js":   true,
	"jsx":  true,
	"ts":   true,
	"json": true,
	"css":  true,
}

// Load reads and validates a YAML rule manifest.
func Load(path string) (*Registry, error) {
	data, err := stacktrace.Trace2(os.ReadFile(path))
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse validates a YAML rule manifest.
func Parse(data []byte) (*Registry, error) {
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("rule manifest: %w", err)
	}

	reg := &Registry{byGroup: make(map[string][]Rule)}
	ids := make(map[string]bool)
	for _, g := range m.Groups {
		if g.ID == "" {
			return nil, fmt.Errorf("rule manifest: group without id")
		}
		if ids[g.ID] {
			return nil, fmt.Errorf("rule manifest: duplicate group %q", g.ID)
		}
		ids[g.ID] = true
		reg.groups = append(reg.groups, g)
	}

	for _, r := range m.Rules {
		if err := validate(r, ids); err != nil {
			return nil, err
		}
		reg.byGroup[r.Group] = append(reg.byGroup[r.Group], r)
		reg.count++
	}
	for _, list := range reg.byGroup {
		sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	}
	return reg, nil
}

func validate(r Rule, groups map[string]bool) error {
	switch {
	case r.Name == "":
		return fmt.Errorf("rule manifest: rule without name")
	case !groups[r.Group]:
		return fmt.Errorf("rule %s: unknown group %q", r.Name, r.Group)
	case r.Version == "":
		return fmt.Errorf("rule %s: missing version", r.Name)
	case !languages[r.Language]:
		return fmt.Errorf("rule %s: unknown language %q", r.Name, r.Language)
	}
	switch r.FixKind {
	case FixNone, FixSafe, FixUnsafe:
	default:
		return fmt.Errorf("rule %s: unknown fix kind %q", r.Name, r.FixKind)
	}
	for _, s := range r.Sources {
		switch s.Kind {
		case "", SourceSameLogic, SourceInspired:
		default:
			return fmt.Errorf("rule %s: unknown source kind %q", r.Name, s.Kind)
		}
	}
	return nil
}

// Groups returns the groups in manifest order, except that the nursery
// group always comes last.
func (reg *Registry) Groups() []Group {
	out := make([]Group, 0, len(reg.groups))
	var nursery []Group
	for _, g := range reg.groups {
		if g.ID == Nursery {
			nursery = append(nursery, g)
			continue
		}
		out = append(out, g)
	}
	return append(out, nursery...)
}

// Rules returns the rules of a group sorted by name.
func (reg *Registry) Rules(group string) []Rule {
	return reg.byGroup[group]
}

// Len returns the total number of rules in the registry.
func (reg *Registry) Len() int {
	return reg.count
}
