// Package parse turns a raw model reply into a decoded JSON object.
//
// Replies arrive as free text that is "plausibly JSON": bare JSON, JSON
// wrapped in a ```json fence, or prose. The parser never fails the pipeline;
// a reply it cannot decode yields the explicit empty variant (nil map,
// ok=false) and downstream code falls back to sentinel defaults.
package parse

import (
	"encoding/json"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

const (
	jsonFence  = "```json"
	plainFence = "```"
)

// Object extracts the JSON object from a raw reply using strict decoding.
// The returned flag reports whether a top-level object was decoded; when it
// is false the map is nil and the caller must use its defaults.
func Object(raw string) (map[string]interface{}, bool) {
	candidate, ok := unfence(raw)
	if !ok {
		return nil, false
	}
	return decodeObject(candidate)
}

// ObjectLenient is Object with two recovery strategies after a strict
// failure: JSON repair (unquoted keys, trailing commas, unclosed brackets)
// and Hjson. Selected per deployment; the default pipeline is strict.
func ObjectLenient(raw string) (map[string]interface{}, bool) {
	candidate, ok := unfence(raw)
	if !ok {
		return nil, false
	}
	if obj, ok := decodeObject(candidate); ok {
		return obj, true
	}
	if repaired, err := jsonrepair.RepairJSON(candidate); err == nil {
		if obj, ok := decodeObject(repaired); ok {
			return obj, true
		}
	}
	var v interface{}
	if err := hjson.Unmarshal([]byte(candidate), &v); err == nil {
		// Hjson decodes into its own map type; round-trip through
		// encoding/json to get a plain object.
		if b, err := json.Marshal(v); err == nil {
			return decodeObject(string(b))
		}
	}
	return nil, false
}

// unfence strips a surrounding markdown code fence. A ```json fence wins over
// a generic one, and the closing marker is the LAST occurrence so that
// backtick runs inside the payload do not cut it short. A fence with no
// closing marker after it leaves nothing parseable.
func unfence(raw string) (string, bool) {
	clean := strings.TrimSpace(raw)
	switch {
	case strings.Contains(clean, jsonFence):
		start := strings.Index(clean, jsonFence) + len(jsonFence)
		end := strings.LastIndex(clean, plainFence)
		if end < start {
			return "", false
		}
		clean = clean[start:end]
	case strings.Contains(clean, plainFence):
		start := strings.Index(clean, plainFence) + len(plainFence)
		end := strings.LastIndex(clean, plainFence)
		if end < start {
			return "", false
		}
		clean = clean[start:end]
	}
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return "", false
	}
	return clean, true
}

// decodeObject requires a JSON object at the top level. Arrays, scalars and
// malformed input all count as failure.
func decodeObject(candidate string) (map[string]interface{}, bool) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	if obj == nil {
		return nil, false
	}
	return obj, true
}
