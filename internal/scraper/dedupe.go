package scraper

// reviewSet collects reviews while dropping duplicates by id. Insertion
// order is preserved so exports keep first-seen order.
type reviewSet struct {
	seen    map[string]struct{}
	reviews []Review
}

func newReviewSet() *reviewSet {
	return &reviewSet{seen: make(map[string]struct{})}
}

// Add appends the review unless its id is empty or already present.
// It reports whether the review was added.
func (s *reviewSet) Add(r Review) bool {
	if r.ID == "" {
		return false
	}
	if _, ok := s.seen[r.ID]; ok {
		return false
	}
	s.seen[r.ID] = struct{}{}
	s.reviews = append(s.reviews, r)
	return true
}

// Len returns the number of unique reviews collected so far
func (s *reviewSet) Len() int {
	return len(s.reviews)
}

// Reviews returns the collected reviews in first-seen order
func (s *reviewSet) Reviews() []Review {
	return s.reviews
}
