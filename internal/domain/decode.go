package domain

import "encoding/json"

// ElementFromMap converts a decoded JSON object (already schema-validated)
// into a typed Element by round-tripping through the JSON codec, so the
// struct tags stay the single source of field mapping.
func ElementFromMap(m map[string]any) (Element, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return Element{}, err
	}
	var e Element
	if err := json.Unmarshal(data, &e); err != nil {
		return Element{}, err
	}
	return e, nil
}

// ElementsFromList converts a validated list of JSON objects into elements.
func ElementsFromList(list []any) ([]Element, error) {
	elements := make([]Element, 0, len(list))
	for _, raw := range list {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		e, err := ElementFromMap(m)
		if err != nil {
			return nil, err
		}
		elements = append(elements, e)
	}
	return elements, nil
}
