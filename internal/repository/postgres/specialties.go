package postgres

import "encoding/json"

// Specialties are a native []string everywhere in the application and a
// JSON text column at rest. This file is the single conversion boundary;
// nothing else may serialize or parse the column.

func specialtiesToText(specialties []string) string {
	if len(specialties) == 0 {
		return "[]"
	}
	raw, err := json.Marshal(specialties)
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func specialtiesFromText(text string) []string {
	if text == "" {
		return []string{}
	}
	var specialties []string
	if err := json.Unmarshal([]byte(text), &specialties); err != nil {
		// Legacy rows sometimes hold a bare comma-free label instead of
		// a JSON array; surface it as a single-element list
		return []string{text}
	}
	if specialties == nil {
		return []string{}
	}
	return specialties
}
