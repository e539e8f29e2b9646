//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"sort"
	"strings"
)

// ExclusionSet is an immutable set of header names that are dropped while
// parsing a command. Names are compared case-insensitively.
type ExclusionSet struct {
	names map[string]struct{}
}

// DefaultExclusions drops the headers that would make the server answer with
// a partial (range) or conditional (304) response instead of the full file.
var DefaultExclusions = NewExclusionSet("range", "if-none-match", "if-modified-since")

// MinimalExclusions only drops range and if-none-match.
var MinimalExclusions = NewExclusionSet("range", "if-none-match")

// NewExclusionSet returns a set containing the given header names.
func NewExclusionSet(names ...string) ExclusionSet {
	set := ExclusionSet{names: make(map[string]struct{}, len(names))}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set.names[name] = struct{}{}
	}
	return set
}

// Contains reports whether name is excluded.
func (s ExclusionSet) Contains(name string) bool {
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Names returns the excluded header names, lower case and sorted.
func (s ExclusionSet) Names() []string {
	res := make([]string, 0, len(s.names))
	for name := range s.names {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Len returns the number of excluded names.
func (s ExclusionSet) Len() int {
	return len(s.names)
}
