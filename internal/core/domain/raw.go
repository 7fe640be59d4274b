package domain

// RawDocument represents opaque bytes read by the corpus loader.
// It is the loader's output before normalisation.
type RawDocument struct {
	// SourcePath is the file path relative to the corpus root.
	SourcePath string

	// Content is the raw file text.
	Content []byte
}

// SkippedFile records a corpus file the loader could not decode.
// Skipped files do not fail the run; they are reported afterwards.
type SkippedFile struct {
	// SourcePath is the file path relative to the corpus root.
	SourcePath string

	// Reason describes why the file was skipped.
	Reason string
}
