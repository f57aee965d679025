package main

// ArticleRef points at one article, either discovered on the listing page or
// supplied directly by the caller. HintTitle is a best-effort label used only
// for the pre-fetch skip decision; it never names the saved file.
type ArticleRef struct {
	URL       string
	HintTitle string
}

// URLTargetHint marks refs supplied via --url or a bare URL argument. It
// disables the pre-fetch title skip so an explicitly requested article is
// always visited.
const URLTargetHint = "URL Target"

// ArticleRecord is the structured data extracted from a rendered detail page.
type ArticleRecord struct {
	Title         string
	DateStamp     string // always 8 ASCII digits, "00000000" when no date was found
	ContentMarkup string // raw inner HTML; empty markup is degraded success, not an error
}

// ProcessingStatus represents the terminal state of one target.
type ProcessingStatus string

const (
	StatusSkippedByTitle    ProcessingStatus = "skipped_by_title"
	StatusSkippedByFilename ProcessingStatus = "skipped_by_filename"
	StatusSaved             ProcessingStatus = "saved"
	StatusFailed            ProcessingStatus = "failed"
)

// ProcessingResult tracks the outcome of processing each target URL.
type ProcessingResult struct {
	URL      string
	Status   ProcessingStatus
	Filename string
	Err      error
}

// Summary counts run outcomes for the terminating log line.
type Summary struct {
	Saved   int
	Skipped int
	Failed  int
}
