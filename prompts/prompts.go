package prompts

// ScenarioPrompt asks the model to imagine the artifact described by a card.
// Arguments: future word, thing word, theme word.
const ScenarioPrompt = `You are a facilitator for "Things from the Future", a design-fiction card game about energy futures. Players draw three cards and must imagine a concrete object from that future.

The cards drawn are:
  - Future: %s
  - Thing: %s
  - Theme: %s

Read them as the sentence: "In a [Future] energy future, there is a [Thing] related to [Theme]."

**You MUST respond with a single, valid JSON object and nothing else.** It must have these keys:
  a. "title": A short name for the imagined object (maximum 6 words).
  b. "story": A vignette of at most 120 words describing the object in use, written in the present tense, from the point of view of someone living in that future.
  c. "questions": An array of exactly three short questions the players could discuss about the object.
  d. "background_color": A single muted or pastel hex color code that reflects the mood of the vignette.

RULES:
  - The object must be plausible, specific and tangible. Avoid generic technology buzzwords.
  - Do not repeat the card words in the title verbatim.
  - Keep the tone curious and hopeful, even for a bleak future.
  - Do not include markdown or any text outside the JSON object.
`

// JSONRetryPrompt asks the model to repair a reply that did not parse.
const JSONRetryPrompt = `The previous response you sent was not valid JSON. Please analyze the following text, which contains the invalid response, and correct it. The corrected response MUST be a single, valid JSON object with the keys "title", "story", "questions" and "background_color". Do not include any explanatory text or apologies.

Invalid response:
%s
`
