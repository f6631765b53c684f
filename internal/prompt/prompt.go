// Package prompt assembles the text part of multimodal model requests.
// Builders are pure functions over their inputs; the model's own output is
// the only source of nondeterminism downstream.
package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"palmlens/internal/domain"
)

const analysisInstruction = `You are an experienced palm reader. Analyze the palm in the attached photo
and produce a complete reading: hand shape, finger proportions, the major lines, mount development, and
any special marks, followed by an interpretation covering personality, love, career, wealth, health, life
path, and concrete advice.

Return STRICT JSON only, matching the shape below exactly. Do not wrap the JSON in markdown fences, do
not add commentary before or after it. If the photo does not show a human palm, set "isPalm" to false and
"confidence" to 0 instead of inventing a reading.`

// outputContract mirrors the normalizer's schema; keep the two in sync when
// adding fields.
const outputContract = `{
  "analysis": {
    "isPalm": true,
    "confidence": 0-100,
    "handShape": {"type": "earth|air|water|fire", "description": string},
    "fingers": {"thumb": string, "index": string, "middle": string, "ring": string, "little": string},
    "lines": {
      "lifeLine": {"present": bool, "description": string},
      "headLine": {"present": bool, "description": string},
      "heartLine": {"present": bool, "description": string},
      "fateLine": {"present": bool, "description": string}
    },
    "mounts": {"venus": string, "jupiter": string, "saturn": string, "apollo": string, "mercury": string, "luna": string},
    "specialMarks": [{"mark": string, "location": string, "meaning": string}]
  },
  "interpretation": {
    "personality": {"summary": string, "strengths": [string], "weaknesses": [string]},
    "loveReading": {"score": 0-100, "current": string, "outlook": string},
    "careerReading": {"score": 0-100, "aptitude": string, "outlook": string},
    "wealthReading": {"score": 0-100, "tendency": string, "outlook": string},
    "healthReading": {"score": 0-100, "constitution": string, "caution": string},
    "lifePath": string,
    "advice": {"shortTerm": string, "longTerm": string, "affirmation": string},
    "luckyElements": {"colors": [string], "numbers": [number], "directions": [string]}
  },
  "overallScore": 0-100
}`

// BuildAnalysis concatenates the static instruction, the reference knowledge
// corpus, and an optional per-request user-context block into one prompt.
func BuildAnalysis(userCtx *domain.UserContext, hasSecondaryImage bool) string {
	var b strings.Builder
	b.WriteString(analysisInstruction)
	b.WriteString("\n\nOUTPUT SHAPE:\n")
	b.WriteString(outputContract)
	b.WriteString("\n\n")
	b.WriteString(ReferenceKnowledge)
	if userCtx != nil {
		b.WriteString("\n\n")
		b.WriteString(userContextBlock(userCtx, hasSecondaryImage))
	} else if hasSecondaryImage {
		b.WriteString("\n\nTwo photos are attached. Read the first as the current state and the second as innate tendency.")
	}
	return b.String()
}

func userContextBlock(uc *domain.UserContext, hasSecondaryImage bool) string {
	var b strings.Builder
	b.WriteString("SUBJECT CONTEXT:\n")

	switch {
	case uc.Age > 0 && uc.Age < 18:
		b.WriteString("- The subject is young; frame everything as potential and formation, never as fixed fate.\n")
	case uc.Age >= 18 && uc.Age <= 30:
		b.WriteString("- The subject is in early adulthood; emphasize direction-finding, first commitments, and momentum.\n")
	case uc.Age >= 31 && uc.Age <= 45:
		b.WriteString("- The subject is mid-career; emphasize consolidation, balance between ambition and family, and course corrections.\n")
	case uc.Age >= 46 && uc.Age <= 60:
		b.WriteString("- The subject is established; emphasize harvest, mentorship, and health stewardship.\n")
	case uc.Age > 60:
		b.WriteString("- The subject is in later life; emphasize legacy, vitality, and contentment over striving.\n")
	}
	if uc.Age > 0 {
		fmt.Fprintf(&b, "- Stated age: %d.\n", uc.Age)
	}

	switch uc.Gender {
	case domain.GenderMale:
		b.WriteString("- Address the reading to a man.\n")
	case domain.GenderFemale:
		b.WriteString("- Address the reading to a woman.\n")
	case domain.GenderOther:
		b.WriteString("- Keep the reading free of gendered framing.\n")
	}

	switch uc.DominantHand {
	case domain.HandLeft:
		b.WriteString("- The subject is left-handed: the left palm shows the current, cultivated state; the right shows innate tendency.\n")
	case domain.HandRight:
		b.WriteString("- The subject is right-handed: the right palm shows the current, cultivated state; the left shows innate tendency.\n")
	}

	if hasSecondaryImage {
		b.WriteString("- A second photo of the non-dominant hand is attached; read it for innate tendency and contrast it with the dominant hand.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

const chatInstruction = `You are the same palm reader who produced the reading below. Answer the follow-up
question in the voice of that reading: warm, specific, grounded in the palm features already observed.
Answer in plain prose, two to four sentences, no JSON, no markdown.`

// chatContextKeys are the reading fields re-serialized into a follow-up
// prompt. The full relevant context is resent every turn; there is no
// server-side conversation memory.
var chatContextKeys = []string{"analysis", "interpretation", "overallScore"}

// BuildChat stuffs selected fields of a prior reading plus the user's message
// into a fresh prompt.
func BuildChat(message string, readingCtx domain.Reading) string {
	var b strings.Builder
	b.WriteString(chatInstruction)

	if len(readingCtx) > 0 {
		selected := make(map[string]any, len(chatContextKeys))
		for _, k := range chatContextKeys {
			if v, ok := readingCtx[k]; ok {
				selected[k] = v
			}
		}
		if len(selected) > 0 {
			if ctxJSON, err := json.MarshalIndent(selected, "", "  "); err == nil {
				b.WriteString("\n\nTHE READING:\n")
				b.Write(ctxJSON)
			}
		}
	}

	b.WriteString("\n\nQUESTION:\n")
	b.WriteString(message)
	return b.String()
}
