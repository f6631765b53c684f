package reading

import "palmlens/internal/domain"

// Documented defaults for every leaf in the output schema. Unknown string
// fields default to "-" or "unknown", scores to 70, lists to empty.
const (
	DefaultText        = "-"
	DefaultEnum        = "unknown"
	DefaultScore       = float64(70)
	DefaultAffirmation = "Your path unfolds one step at a time."

	// Plausibility defaults keep replies that omit the fields accepted; only
	// an explicit rejection by the model fails validation.
	DefaultIsPalm     = true
	DefaultConfidence = float64(85)
)

// Schema returns the full output schema as data: every key the normalized
// reading must carry, mapped to its documented default. Defaulting, the
// documented-default tests, and the prompt's output contract are all driven
// from this one table. A fresh value is built per call because callers merge
// into it.
func Schema() domain.Reading {
	lineDefault := func(present bool) map[string]any {
		return map[string]any{"present": present, "description": DefaultText}
	}
	scored := func(fields ...string) map[string]any {
		m := map[string]any{"score": DefaultScore}
		for _, f := range fields {
			m[f] = DefaultText
		}
		return m
	}

	return domain.Reading{
		"analysis": map[string]any{
			"isPalm":     DefaultIsPalm,
			"confidence": DefaultConfidence,
			"handShape": map[string]any{
				"type":        DefaultEnum,
				"description": DefaultText,
			},
			"fingers": map[string]any{
				"thumb":  DefaultText,
				"index":  DefaultText,
				"middle": DefaultText,
				"ring":   DefaultText,
				"little": DefaultText,
			},
			"lines": map[string]any{
				"lifeLine":  lineDefault(true),
				"headLine":  lineDefault(true),
				"heartLine": lineDefault(true),
				// The fate line is commonly absent on real palms.
				"fateLine": lineDefault(false),
			},
			"mounts": map[string]any{
				"venus":   DefaultText,
				"jupiter": DefaultText,
				"saturn":  DefaultText,
				"apollo":  DefaultText,
				"mercury": DefaultText,
				"luna":    DefaultText,
			},
			"specialMarks": []any{},
		},
		"interpretation": map[string]any{
			"personality": map[string]any{
				"summary":    DefaultText,
				"strengths":  []any{},
				"weaknesses": []any{},
			},
			"loveReading":   scored("current", "outlook"),
			"careerReading": scored("aptitude", "outlook"),
			"wealthReading": scored("tendency", "outlook"),
			"healthReading": scored("constitution", "caution"),
			"lifePath":      DefaultText,
			"advice": map[string]any{
				"shortTerm":   DefaultText,
				"longTerm":    DefaultText,
				"affirmation": DefaultAffirmation,
			},
			"luckyElements": map[string]any{
				"colors":     []any{},
				"numbers":    []any{},
				"directions": []any{},
			},
		},
		"overallScore": DefaultScore,
	}
}
