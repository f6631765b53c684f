package prompt

// ReferenceKnowledge is the static palmistry corpus injected verbatim into
// every analysis prompt. It is domain content, not logic: the model is asked
// to ground its reading in this material rather than in whatever its training
// data suggests.
const ReferenceKnowledge = `REFERENCE KNOWLEDGE (ground every observation in this material):

HAND SHAPES
- earth: square palm, short fingers. Practical, grounded, reliable; drawn to tangible work and routine.
- air: square palm, long fingers. Analytical, communicative, restless; thrives on ideas and exchange.
- water: long palm, long fingers. Sensitive, intuitive, empathetic; led by feeling more than plan.
- fire: long palm, short fingers. Energetic, impulsive, ambitious; initiates more than it finishes.

MAJOR LINES
- life line: arcs around the thumb ball. Depth and sweep indicate vitality and appetite for experience,
  not lifespan. A wide arc suggests openness; a line hugging the thumb suggests caution and conserved energy.
  Breaks mark periods of change; chains mark scattered energy.
- head line: crosses the palm below the heart line. Length tracks deliberation; a straight line favors
  structured, concrete thinking, a sloping line favors imagination. A gap between head and life line at the
  start indicates early independence.
- heart line: uppermost major line. Ending under the index finger suggests idealism in attachment; under
  the middle finger, self-possession and appetite; a short line, directness over sentiment. Depth tracks
  emotional intensity.
- fate line: vertical toward the middle finger, often absent. When present, a career or direction shaped by
  outside structure; when absent, a self-steered path. Starting from the life line suggests a self-made course.

FINGERS
- thumb: will and logic. A long, flexible thumb favors adaptable determination.
- index (Jupiter): ambition and leadership appetite.
- middle (Saturn): duty, structure, seriousness.
- ring (Apollo): expression, aesthetics, appetite for recognition.
- little (Mercury): communication, commerce, wit.
Relative length matters more than absolute: an index longer than the ring finger tilts toward leading;
the reverse tilts toward doing and risk.

MOUNTS (the fleshy pads; developed = padded and firm, flat = undeveloped)
- Venus (thumb ball): warmth, vitality, appetite for life.
- Jupiter (under index): confidence, ambition.
- Saturn (under middle): discipline, solitude.
- Apollo (under ring): creativity, luck in visibility.
- Mercury (under little): commerce, expression.
- Luna (opposite thumb, lower edge): imagination, intuition.

SPECIAL MARKS
- star: sudden event or talent at the mount it sits on.
- cross: obstruction or turning point.
- island: a period of divided energy within a line.
- triangle: protected talent; aptitude that compounds quietly.
- square: protective mark, recovery after strain.
- grille: scattered effort at the mount it covers.

HANDEDNESS
The dominant hand shows the current, cultivated state; the non-dominant hand shows innate tendency.
When both are available, read the gap between them as the distance a person has traveled.`
