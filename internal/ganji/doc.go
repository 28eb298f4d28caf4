// Package ganji provides the closed symbol alphabets of the sexagenary
// calendar and the pure arithmetic over them.
//
// This package is the foundational layer: every other engine package imports
// ganji, and ganji imports nothing internal.
//
// Key constraints:
//   - Stem, Branch, Element and Polarity are closed enums; every table in this
//     package is indexed by them and covers the whole enum space
//   - Only 60 of the 120 (stem, branch) combinations are real pillars; a
//     pillar's stem and branch always share polarity
//   - Calendar arithmetic is integer-only and never touches package time
//   - Relation classification is symmetric and total over valid inputs
package ganji
