// Package gemini implements the story.Generator interface using Google's
// Gemini API to write short stories from the learner's vocabulary.
package gemini
