// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mutation classifies single-nucleotide changes by the weak (A/T) or
// strong (G/C) category of their ancestral and derived bases.
package mutation

import (
	"fmt"
)

// Class selects which substitutions Include admits.
type Class int

const (
	// All admits every substitution.
	All Class = iota
	// WS admits weak-to-strong changes.
	WS
	// SW admits strong-to-weak changes.
	SW
	// SS admits changes between strong bases.
	SS
	// WW admits changes between weak bases.
	WW
	// SSOrWW admits changes that keep the weak/strong category.
	SSOrWW

	nClass
)

var classNames = [...]string{"all", "WS", "SW", "SS", "WW", "SS+WW"}

func (c Class) String() string {
	if c < 0 || c >= nClass {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass converts the numeric -gc selector to a Class.
func ParseClass(v int) (Class, error) {
	if v < int(All) || v >= int(nClass) {
		return All, fmt.Errorf("mutation class %d out of range: allowed values are 0 [all], 1 [WS], 2 [SW], 3 [SS], 4 [WW], 5 [SS+WW]", v)
	}
	return Class(v), nil
}

// IsWeak returns true for A and T.
func IsWeak(b byte) bool {
	return b == 'A' || b == 'T'
}

// IsStrong returns true for G and C.
func IsStrong(b byte) bool {
	return b == 'G' || b == 'C'
}

// isWildcard is true for anything that isn't an uppercase base, most often
// '.' for an invariant site's ALT.  A wildcard satisfies either category.
func isWildcard(b byte) bool {
	return !IsWeak(b) && !IsStrong(b)
}

func weakOrWild(b byte) bool {
	return IsWeak(b) || isWildcard(b)
}

func strongOrWild(b byte) bool {
	return IsStrong(b) || isWildcard(b)
}

// Include reports whether the substitution ref>alt belongs to class c.
//
// ref and alt are the VCF bases.  When reversed is false the reference base
// is taken as ancestral; when it is true (the site is a known substitution
// from the outgroup) alt is ancestral and the direction of WS and SW flips.
// SS, WW and SSOrWW don't depend on direction.  A site whose two bases are
// both wildcards is never included by a filtering class.
func Include(ref, alt byte, reversed bool, c Class) bool {
	if c == All {
		return true
	}
	if isWildcard(ref) && isWildcard(alt) {
		return false
	}
	ancestral, derived := ref, alt
	if reversed {
		ancestral, derived = alt, ref
	}
	switch c {
	case WS:
		return weakOrWild(ancestral) && strongOrWild(derived)
	case SW:
		return strongOrWild(ancestral) && weakOrWild(derived)
	case SS:
		return strongOrWild(ref) && strongOrWild(alt)
	case WW:
		return weakOrWild(ref) && weakOrWild(alt)
	case SSOrWW:
		return (strongOrWild(ref) && strongOrWild(alt)) || (weakOrWild(ref) && weakOrWild(alt))
	}
	return false
}
