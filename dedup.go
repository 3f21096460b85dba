// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/blueprintdoc

package blueprintdoc

import "strings"

// dedupSet tracks generic families already written during one render pass.
type dedupSet struct {
	written map[string]struct{}
}

func newDedupSet() *dedupSet {
	return &dedupSet{written: make(map[string]struct{})}
}

// familyKey strips the generic instantiation suffix from a definition key.
func familyKey(key string) string {
	base, _, _ := strings.Cut(key, string(genericSeparator))
	return base
}

// ShouldRender reports whether no instantiation of key's family was written yet.
func (set *dedupSet) ShouldRender(key string) bool {
	_, ok := set.written[familyKey(key)]
	return !ok
}

// MarkRendered marks the family of key as written. Families whose first
// instantiation renders no body stay open.
func (set *dedupSet) MarkRendered(key string) {
	set.written[familyKey(key)] = struct{}{}
}
