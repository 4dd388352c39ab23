// Package translation defines the provider-neutral translation interface
// used when capturing new vocabulary.
package translation

import "context"

// Language describes a language supported by the translation provider.
type Language struct {
	// Code is the BCP-47 language code, e.g. "de" or "zh-Hans".
	Code string

	// Name is the language name in English.
	Name string

	// NativeName is the language name in the language itself.
	NativeName string

	// Dir is the text direction, "ltr" or "rtl".
	Dir string
}

// Translator provides machine translation of short vocabulary snippets.
// Implementations must be safe for concurrent use.
type Translator interface {
	// Translate translates text from one language to another. The from code
	// may be empty, in which case the provider auto-detects the source
	// language.
	Translate(ctx context.Context, text, from, to string) (string, error)

	// Languages returns the set of languages the provider can translate
	// between.
	Languages(ctx context.Context) ([]Language, error)
}
