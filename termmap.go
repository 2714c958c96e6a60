// ═══════════════════════════════════════════════════════════════════════════════
// STEMMING TERM MAP
// ═══════════════════════════════════════════════════════════════════════════════
// The term dictionary is an external collaborator (§1/§6): something else
// built it, at index-construction time, from the same analysis pipeline
// that produced the terms now sitting in the bitstream. StemmingTermMap is
// a concrete TermMap that normalizes a lookup string the same way, so that
// documents("Running") and documents("run") resolve to the same ordinal a
// cursor can Position on.
// ═══════════════════════════════════════════════════════════════════════════════

package invindex

// StemmingTermMap wraps a plain string-to-ordinal table, normalizing
// lookups through the package's analyzer pipeline (lowercase, stopword
// removal, Snowball stemming) before consulting it.
type StemmingTermMap struct {
	ordinals map[string]int64
	config   AnalyzerConfig
}

// NewStemmingTermMap builds a StemmingTermMap over ordinals, already
// keyed by normalized (stemmed) term, using the default analyzer
// configuration.
func NewStemmingTermMap(ordinals map[string]int64) *StemmingTermMap {
	return &StemmingTermMap{ordinals: ordinals, config: DefaultConfig()}
}

// NewStemmingTermMapWithConfig is NewStemmingTermMap with a caller-chosen
// analyzer configuration, for indexes built with non-default stemming or
// stopword behavior.
func NewStemmingTermMapWithConfig(ordinals map[string]int64, config AnalyzerConfig) *StemmingTermMap {
	return &StemmingTermMap{ordinals: ordinals, config: config}
}

// Ordinal normalizes term through the analyzer pipeline and looks up the
// first resulting token. A multi-word query string is expected to have
// been split into individual terms by the caller; only the first token
// survives here, matching the single-term contract of Cursor.Position.
func (m *StemmingTermMap) Ordinal(term string) (int64, bool) {
	tokens := AnalyzeWithConfig(term, m.config)
	if len(tokens) == 0 {
		return 0, false
	}
	ord, ok := m.ordinals[tokens[0]]
	return ord, ok
}
