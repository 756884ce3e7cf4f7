package completion

import "strings"

// Placeholder is the literal token users put in prompt templates where the
// stored transcript should be inserted.
const Placeholder = "{transcription}"

// RenderPrompt substitutes the transcript for the first occurrence of the
// placeholder. Only one substitution pass is performed; any further
// occurrences are left as written.
func RenderPrompt(template, transcription string) string {
	return strings.Replace(template, Placeholder, transcription, 1)
}
