package chat

// Store is the bounded, ordered collection of transcript items. Items sit
// in arrival-completion order: the order in which they became final, not
// the order their originating events began.
//
// The cap is enforced after every mutation, oldest first. A limit change
// takes effect on the next mutating call only; existing overflow is left
// in place. A limit <= 0 disables the cap entirely.
type Store struct {
	items []Item
	limit int
}

func NewStore(limit int) *Store {
	return &Store{limit: limit}
}

// Append adds an item to the end of the transcript.
func (s *Store) Append(item Item) {
	s.items = append(s.items, item)
	s.enforceCap()
}

// ReplaceAll swaps the transcript wholesale for the supplied items,
// retaining the most recent when they exceed the cap.
func (s *Store) ReplaceAll(items []Item) {
	s.items = make([]Item, len(items))
	copy(s.items, items)
	s.enforceCap()
}

// Clear empties the transcript.
func (s *Store) Clear() {
	s.items = nil
}

// SetLimit updates the cap. Overflow is not trimmed retroactively.
func (s *Store) SetLimit(limit int) {
	s.limit = limit
}

func (s *Store) Limit() int {
	return s.limit
}

func (s *Store) Len() int {
	return len(s.items)
}

// Items returns a copy of the transcript to keep callers from aliasing
// reducer-owned state.
func (s *Store) Items() []Item {
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Last returns the final transcript item, if any.
func (s *Store) Last() (Item, bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	return s.items[len(s.items)-1], true
}

func (s *Store) enforceCap() {
	if s.limit <= 0 {
		return
	}
	if overflow := len(s.items) - s.limit; overflow > 0 {
		s.items = append(s.items[:0:0], s.items[overflow:]...)
	}
}
