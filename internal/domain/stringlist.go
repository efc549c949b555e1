package domain

import "encoding/json"

// StringList decodes leniently from JSON: a non-array value becomes an empty
// list and non-string elements are dropped. It never fails to decode.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*l = StringList{}
		return nil
	}

	out := make(StringList, 0, len(raw))
	for _, elem := range raw {
		var s string
		if err := json.Unmarshal(elem, &s); err == nil {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

// ParseStringList decodes a stored JSON array leniently.
func ParseStringList(data []byte) []string {
	var l StringList
	_ = l.UnmarshalJSON(data)
	return l
}
