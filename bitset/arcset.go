package bitset

// ArcSet is a membership filter over all ordered vertex pairs (i,j) of an
// instance with n vertices. A freshly constructed set includes every arc;
// neighborhoods consult it to skip generator arcs a caller has forbidden.
//
// All operations are O(1).
type ArcSet struct {
	bits Bitset
	n    int
}

// NewArcSet returns an ArcSet over n vertices with every arc included.
func NewArcSet(n int) *ArcSet {
	s := &ArcSet{bits: New(n * n), n: n}
	s.bits.SetAll()
	return s
}

// Forbid removes the arc (from, to) from the set.
func (s *ArcSet) Forbid(from, to int) { s.bits.Clear(from*s.n + to) }

// Include restores the arc (from, to) to the set.
func (s *ArcSet) Include(from, to int) { s.bits.Set(from*s.n + to) }

// Includes reports whether the arc (from, to) is in the set.
func (s *ArcSet) Includes(from, to int) bool { return s.bits.Test(from*s.n + to) }
