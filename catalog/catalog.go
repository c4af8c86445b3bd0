// Package catalog describes which components are split out of the full
// stylesheet and which class prefix each of them uses.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"antcss/css"
)

// Descriptor names a component and its class prefix ("btn" for Button).
type Descriptor struct {
	Name   string
	Prefix string
}

// Group is a set of components sharing single class prefix. Members are kept
// in sorted order.
type Group struct {
	Prefix  string
	Members []string
}

// Label returns comma separated member names for banners.
func (g Group) Label() string {
	return strings.Join(g.Members, ", ")
}

// Table maps component names to class prefixes. Names present in overrides
// use explicit prefix, everything else is derived with css.KebabCase. Skip
// patterns are doublestar globs matched against component names.
type Table struct {
	overrides map[string]string
	skip      []string
}

// NewTable validates skip patterns and prepares the table.
func NewTable(overrides map[string]string, skip []string) (*Table, error) {
	for _, p := range skip {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("bad component skip pattern '%s'", p)
		}
	}
	t := &Table{
		overrides: make(map[string]string, len(overrides)),
		skip:      slices.Clone(skip),
	}
	for k, v := range overrides {
		t.overrides[k] = v
	}
	return t, nil
}

// Prefix returns class prefix for component name.
func (t *Table) Prefix(name string) string {
	if p, ok := t.overrides[name]; ok && p != "" {
		return p
	}
	return css.KebabCase(name)
}

// Skipped reports whether component should not get its own stylesheet.
func (t *Table) Skipped(name string) bool {
	for _, p := range t.skip {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// Descriptors returns sorted unique descriptors for names which are not
// skipped. Names which do not start with upper case letter are ignored,
// they are not components.
func (t *Table) Descriptors(names []string) []Descriptor {
	names = slices.Clone(names)
	slices.Sort(names)
	names = slices.Compact(names)

	out := make([]Descriptor, 0, len(names))
	for _, name := range names {
		if name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		if t.Skipped(name) {
			continue
		}
		out = append(out, Descriptor{Name: name, Prefix: t.Prefix(name)})
	}
	return out
}

// Groups collapses descriptors by prefix. Groups are ordered by first
// appearance of the prefix in descs.
func Groups(descs []Descriptor) []Group {
	var (
		groups []Group
		index  = make(map[string]int, len(descs))
	)
	for _, d := range descs {
		if i, ok := index[d.Prefix]; ok {
			groups[i].Members = append(groups[i].Members, d.Name)
			continue
		}
		index[d.Prefix] = len(groups)
		groups = append(groups, Group{Prefix: d.Prefix, Members: []string{d.Name}})
	}
	return groups
}
