package repository

import "encoding/json"

// Routine checklists are stored as JSON arrays in a text column. The
// serialization form is private to this package; everything above the
// repository works with []string.

func encodeItems(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeItems parses a stored item list. Malformed or empty stored
// text degrades to an empty list so a single corrupt row cannot break
// a whole response.
func decodeItems(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
