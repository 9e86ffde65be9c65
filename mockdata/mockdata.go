// Package mockdata holds the canned payloads served when the counselor
// backend is unreachable. Lookups never fail: unknown endpoints map to an
// empty object so callers always receive something renderable.
package mockdata

import "strings"

// Endpoint keys with fixed fallback payloads.
const (
	KeyProfile         = "profile"
	KeyJournalEntries  = "journal/entries"
	KeyRecommendations = "colleges/recommendations"
	KeyReport          = "report"
)

var table = map[string]map[string]any{
	KeyProfile: {
		"name":                "John Smith",
		"gpa":                 3.8,
		"intended_majors":     []any{"Computer Science", "Mathematics"},
		"location_preference": "California",
		"budget":              50000,
	},
	KeyJournalEntries: {
		"entries": []any{
			map[string]any{"date": "2025-05-01", "sentiment": 65, "uncertainty": 45, "agitation": 30},
			map[string]any{"date": "2025-05-05", "sentiment": 70, "uncertainty": 40, "agitation": 25},
			map[string]any{"date": "2025-05-10", "sentiment": 60, "uncertainty": 50, "agitation": 35},
			map[string]any{"date": "2025-05-15", "sentiment": 75, "uncertainty": 30, "agitation": 20},
		},
		"emotion_summary": "You seem generally positive about your college prospects.",
	},
	KeyRecommendations: {
		"recommendations": []any{
			map[string]any{"id": 1, "name": "Ivy University", "location": "Massachusetts", "trust_score": 85, "category": "Reach"},
			map[string]any{"id": 2, "name": "State University", "location": "California", "trust_score": 92, "category": "Target"},
			map[string]any{"id": 3, "name": "Liberal Arts College", "location": "Vermont", "trust_score": 78, "category": "Target"},
			map[string]any{"id": 4, "name": "Tech Institute", "location": "California", "trust_score": 88, "category": "Reach"},
			map[string]any{"id": 5, "name": "Community College", "location": "New York", "trust_score": 95, "category": "Safety"},
		},
	},
	KeyReport: {
		"student": map[string]any{
			"name":                "John Smith",
			"gpa":                 3.8,
			"intended_majors":     []any{"Computer Science", "Mathematics"},
			"location_preference": "California",
			"budget":              50000,
		},
		"emotional_state": map[string]any{
			"sentiment": 75,
			"certainty": 70,
			"calmness":  80,
			"summary":   "Your emotional state appears balanced for decision-making.",
		},
		"recommendations": []any{
			map[string]any{"college": "Ivy University", "category": "Reach", "trust_score": 85, "academic_match": 80, "budget_match": 70},
			map[string]any{"college": "State University", "category": "Target", "trust_score": 92, "academic_match": 90, "budget_match": 85},
		},
	},
}

// Lookup returns the fallback payload for an endpoint. Unknown endpoints
// yield an empty map, never an error. The returned map is a deep copy, so
// callers may mutate it freely.
func Lookup(endpoint string) map[string]any {
	if payload, ok := table[strings.Trim(endpoint, "/")]; ok {
		return cloneMap(payload)
	}
	return map[string]any{}
}

// Table returns a copy of the complete fallback table keyed by endpoint.
func Table() map[string]map[string]any {
	out := make(map[string]map[string]any, len(table))
	for key, payload := range table {
		out[key] = cloneMap(payload)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
