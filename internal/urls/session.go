package urls

// Session is the selection state over the records extracted from a text.
//
// Every text change re-extracts the list and selects all records: ids may be
// remapped by an edit, so a previous selection is never carried over.
// A Session is not safe for concurrent use.
type Session struct {
	policy   IDPolicy
	text     string
	records  []ParsedURL
	selected map[string]struct{}
}

// NewSession returns an empty session using policy (positional when nil).
func NewSession(policy IDPolicy) *Session {
	if policy == nil {
		policy = PositionalIDs
	}
	return &Session{
		policy:   policy,
		selected: map[string]struct{}{},
	}
}

// SetText replaces the text, re-extracts and selects everything.
func (s *Session) SetText(text string) {
	s.text = text
	s.records = ExtractWith(text, s.policy)
	s.selectAll()
}

// Append adds pasted text on a new line.
func (s *Session) Append(text string) {
	if s.text == "" {
		s.SetText(text)
		return
	}
	s.SetText(s.text + "\n" + text)
}

// Clear drops the text and every record.
func (s *Session) Clear() {
	s.SetText("")
}

func (s *Session) Text() string { return s.text }

// Records returns a copy of the current list.
func (s *Session) Records() []ParsedURL {
	out := make([]ParsedURL, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Session) IsSelected(id string) bool {
	_, ok := s.selected[id]
	return ok
}

// Toggle flips the selection of one record.
func (s *Session) Toggle(id string) {
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	for _, r := range s.records {
		if r.ID == id {
			s.selected[id] = struct{}{}
			return
		}
	}
}

// ToggleAll clears the selection when everything is selected, else selects all.
func (s *Session) ToggleAll() {
	if len(s.selected) == len(s.records) {
		s.selected = map[string]struct{}{}
		return
	}
	s.selectAll()
}

// SelectIndices replaces the selection with the records at the given
// zero-based indices. Out-of-range indices are ignored.
func (s *Session) SelectIndices(indices ...int) {
	s.selected = make(map[string]struct{}, len(indices))
	for _, i := range indices {
		if i >= 0 && i < len(s.records) {
			s.selected[s.records[i].ID] = struct{}{}
		}
	}
}

// Selected returns the selected records in list order.
func (s *Session) Selected() []ParsedURL {
	out := make([]ParsedURL, 0, len(s.selected))
	for _, r := range s.records {
		if _, ok := s.selected[r.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Dedupe feeds the deduplicated list back as the new text.
// It reports false and does nothing when the list is empty.
func (s *Session) Dedupe() bool {
	if len(s.records) == 0 {
		return false
	}
	s.SetText(Dedupe(s.records))
	return true
}

// Sort feeds the sorted list back as the new text.
func (s *Session) Sort() bool {
	if len(s.records) == 0 {
		return false
	}
	s.SetText(Sort(s.records))
	return true
}

func (s *Session) selectAll() {
	s.selected = make(map[string]struct{}, len(s.records))
	for _, r := range s.records {
		s.selected[r.ID] = struct{}{}
	}
}
