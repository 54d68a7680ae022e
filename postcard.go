// Package postcard turns a discussion forum page into a small structured
// record: the topic it belongs to, the author, the author's avatar and when
// the post was made.
//
// Forum markup varies across themes, page states and partial page loads, so
// every field is located by an ordered cascade of heuristics rather than a
// single selector. A field that no heuristic can find is left empty; the
// extraction itself never fails.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, gin/).
package postcard
