package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmlens/internal/fault"
)

func TestNormalizeFencedReply(t *testing.T) {
	got, err := Normalize("```json\n{\"overallScore\": 88}\n```")
	require.NoError(t, err)

	assert.Equal(t, float64(88), got["overallScore"])

	interp, ok := got["interpretation"].(map[string]any)
	require.True(t, ok)
	love, ok := interp["loveReading"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultScore, love["score"])

	advice, ok := interp["advice"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultAffirmation, advice["affirmation"])
}

func TestNormalizeNoBraces(t *testing.T) {
	got, err := Normalize("no braces here")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, fault.IsKind(err, fault.Unparsable))
	assert.Equal(t, "JSON not found in the model reply", fault.Message(err))
}

func TestNormalizeTrailingComma(t *testing.T) {
	got, err := Normalize(`{"a": 1,}`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["a"])
}

func TestNormalizeSingleQuotes(t *testing.T) {
	got, err := Normalize(`{'overallScore': 90}`)
	require.NoError(t, err)
	assert.Equal(t, float64(90), got["overallScore"])
}

func TestNormalizeEmbeddedNewlines(t *testing.T) {
	got, err := Normalize("{\"overallScore\":\n 75,\n}")
	require.NoError(t, err)
	assert.Equal(t, float64(75), got["overallScore"])
}

func TestNormalizeUnrepairable(t *testing.T) {
	_, err := Normalize("{this is not json at all}")
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.Unparsable))
}

func TestNormalizeSurroundingProse(t *testing.T) {
	raw := "Here is your reading:\n```json\n{\"overallScore\": 64}\n```\nHope that helps!"
	got, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, float64(64), got["overallScore"])
}

// Every key in the schema must be present after normalizing an empty object;
// nothing may be absent or nil at any path.
func TestNormalizeEmptyObjectYieldsFullSchema(t *testing.T) {
	got, err := Normalize("{}")
	require.NoError(t, err)
	assert.Equal(t, Schema(), got)
	assertNoNilLeaves(t, map[string]any(got), "")
}

func assertNoNilLeaves(t *testing.T, m map[string]any, path string) {
	t.Helper()
	for k, v := range m {
		p := path + "/" + k
		require.NotNil(t, v, "nil value at %s", p)
		if sub, ok := v.(map[string]any); ok {
			assertNoNilLeaves(t, sub, p)
		}
	}
}

// Keys the model did produce are never overwritten by defaults, and keys
// outside the schema pass through.
func TestNormalizePreservesPresentAndUnknownKeys(t *testing.T) {
	raw := `{
		"analysis": {"handShape": {"type": "earth"}, "confidence": 97},
		"interpretation": {"loveReading": {"score": 42}},
		"modelNotes": "an extra field the schema never declared"
	}`
	got, err := Normalize(raw)
	require.NoError(t, err)

	analysis := got["analysis"].(map[string]any)
	handShape := analysis["handShape"].(map[string]any)
	assert.Equal(t, "earth", handShape["type"])
	assert.Equal(t, DefaultText, handShape["description"])
	assert.Equal(t, float64(97), analysis["confidence"])
	assert.Equal(t, DefaultIsPalm, analysis["isPalm"])

	love := got["interpretation"].(map[string]any)["loveReading"].(map[string]any)
	assert.Equal(t, float64(42), love["score"])
	assert.Equal(t, DefaultText, love["current"])

	assert.Equal(t, "an extra field the schema never declared", got["modelNotes"])
}

// A branch the model emitted with the wrong shape is replaced wholesale so
// nested keys below it stay populated.
func TestNormalizeReplacesWrongShapedBranch(t *testing.T) {
	got, err := Normalize(`{"interpretation": "just a string"}`)
	require.NoError(t, err)

	interp, ok := got["interpretation"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultText, interp["lifePath"])
}

func TestNormalizeNullBranchGetsDefault(t *testing.T) {
	got, err := Normalize(`{"analysis": null}`)
	require.NoError(t, err)

	analysis, ok := got["analysis"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultConfidence, analysis["confidence"])
}

func TestRepairIdempotent(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "trailing comma", in: `{"a": 1,}`},
		{name: "single quotes", in: `{'a': 'b'}`},
		{name: "newlines", in: "{\"a\":\n1}"},
		{name: "already clean", in: `{"a": 1}`},
		{name: "all faults at once", in: "{'a': 1,\n'b': [2, 3,],}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := Repair(tt.in)
			assert.Equal(t, once, Repair(once))
		})
	}
}

func TestRepairDoesNotAlterCleanJSON(t *testing.T) {
	clean := `{"a": 1, "b": [2, 3], "c": {"d": "e"}}`
	assert.Equal(t, clean, Repair(clean))
}

// Normalize never panics, whatever it is fed.
func TestNormalizeTotalOnGarbage(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"{",
		"}",
		"}{",
		"```json```",
		"{{{{{}}}}}",
		"\x00\x01\x02{\xff}",
		`{"a": [1, {"b": }]}`,
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() {
			_, _ = Normalize(in)
		}, "input %q", in)
	}
}
