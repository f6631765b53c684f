// Package reading converts free-text model output into a fully-populated
// palm reading. Normalize is a total function: every failure is classified,
// nothing panics past this boundary, and no field of the result is ever
// absent or null.
package reading

import (
	"encoding/json"
	"regexp"
	"strings"

	"palmlens/internal/domain"
	"palmlens/internal/fault"
)

// Normalize extracts a JSON object from raw model text, repairs common
// syntax faults, and fills absent fields with their documented defaults.
func Normalize(raw string) (domain.Reading, error) {
	candidate, err := extractObject(stripFences(raw))
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		// One-shot repair, then one retry. No iterative healing: bounding the
		// worst case matters more than rescuing deeply malformed replies.
		if err2 := json.Unmarshal([]byte(Repair(candidate)), &parsed); err2 != nil {
			return nil, fault.Wrap(fault.Unparsable, "could not parse the model reply, try again", err2)
		}
	}

	return applyDefaults(parsed, Schema()), nil
}

// stripFences removes markdown code-fence markers, both ```json and bare ```.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// extractObject takes the substring from the first '{' to the last '}'.
func extractObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fault.New(fault.Unparsable, "JSON not found in the model reply")
	}
	end := strings.LastIndexByte(s, '}')
	if end < start {
		return "", fault.New(fault.Unparsable, "JSON not found in the model reply")
	}
	return s[start : end+1], nil
}

var trailingComma = regexp.MustCompile(`,\s*([}\]])`)

// Repair applies the fixed, ordered sequence of textual fixups to a JSON
// candidate that failed a strict parse: trailing commas before } or ] are
// removed, single quotes become double quotes, embedded newlines collapse to
// spaces. Repair is idempotent. The blanket quote substitution can corrupt a
// legitimate apostrophe inside a string value; it only ever runs on text that
// already failed to parse, so well-formed replies are never touched.
func Repair(s string) string {
	s = trailingComma.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "'", `"`)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// applyDefaults walks the schema and substitutes the documented default for
// every key absent (or null) in parsed. Keys present in parsed but absent
// from the schema pass through untouched, tolerating model drift in output
// shape across calls. A parsed value whose schema default is an object but
// which is not itself an object is replaced wholesale, so nested keys below
// it stay populated.
func applyDefaults(parsed map[string]any, schema domain.Reading) domain.Reading {
	out := make(domain.Reading, len(parsed)+len(schema))
	for k, v := range parsed {
		out[k] = v
	}
	for key, def := range schema {
		val, ok := parsed[key]
		if !ok || val == nil {
			out[key] = def
			continue
		}
		defMap, defIsMap := def.(map[string]any)
		if !defIsMap {
			continue
		}
		valMap, valIsMap := val.(map[string]any)
		if !valIsMap {
			out[key] = def
			continue
		}
		out[key] = map[string]any(applyDefaults(valMap, defMap))
	}
	return out
}
