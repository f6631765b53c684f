package reading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palmlens/internal/domain"
	"palmlens/internal/fault"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	got, err := Normalize("{}")
	require.NoError(t, err)
	assert.NoError(t, Validate(got))
}

func TestValidateRejectsNonPalm(t *testing.T) {
	got, err := Normalize(`{"analysis": {"isPalm": false, "confidence": 95}}`)
	require.NoError(t, err)

	verr := Validate(got)
	require.Error(t, verr)
	assert.True(t, fault.IsKind(verr, fault.Validation))
	assert.Contains(t, fault.Message(verr), "palm")
}

func TestValidateRejectsLowConfidence(t *testing.T) {
	got, err := Normalize(`{"analysis": {"isPalm": true, "confidence": 12}}`)
	require.NoError(t, err)

	verr := Validate(got)
	require.Error(t, verr)
	assert.True(t, fault.IsKind(verr, fault.Validation))
}

func TestValidateThresholdBoundary(t *testing.T) {
	got, err := Normalize(`{"analysis": {"confidence": 40}}`)
	require.NoError(t, err)
	assert.NoError(t, Validate(got))
}

func TestValidateTolerantOfMissingAnalysis(t *testing.T) {
	// Validate is defensive about shape even though Normalize guarantees it.
	assert.NoError(t, Validate(domain.Reading{}))
	assert.NoError(t, Validate(domain.Reading{"analysis": "bogus"}))
}
