package reading

import (
	"palmlens/internal/domain"
	"palmlens/internal/fault"
)

// MinConfidence is the plausibility threshold below which a reading is
// rejected rather than returned.
const MinConfidence = 40

// Validate performs the minimal plausibility check on a normalized reading.
// It rejects only when the model explicitly flagged the image as not a palm
// or reported confidence below the threshold; defaulted values always pass.
func Validate(r domain.Reading) error {
	analysis, ok := r["analysis"].(map[string]any)
	if !ok {
		return nil
	}

	if isPalm, ok := analysis["isPalm"].(bool); ok && !isPalm {
		return fault.New(fault.Validation, "the photo does not appear to show a palm, upload a clearer photo of an open palm")
	}

	if confidence, ok := analysis["confidence"].(float64); ok && confidence < MinConfidence {
		return fault.New(fault.Validation, "the palm is not clearly visible, upload a sharper, well-lit photo")
	}

	return nil
}
