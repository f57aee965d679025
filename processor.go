// processor.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

// ArticleProcessor drives one archiving run over a resolved target sequence.
// Targets are processed strictly sequentially on the shared render session;
// a failure on one target never aborts the run.
type ArticleProcessor struct {
	renderer  Renderer
	settings  *Settings
	index     *ArchiveIndex
	converter *md.Converter
}

// NewArticleProcessor creates a processor. The Markdown converter strips
// script and style elements so embedded code never leaks into output files.
func NewArticleProcessor(renderer Renderer, settings *Settings, index *ArchiveIndex) *ArticleProcessor {
	converter := md.NewConverter("", true, nil)
	converter.Remove("script", "style")

	return &ArticleProcessor{
		renderer:  renderer,
		settings:  settings,
		index:     index,
		converter: converter,
	}
}

// Run processes all targets and returns the run summary. Cancellation is
// honored between targets so an interrupted run never stops mid-write.
func (p *ArticleProcessor) Run(ctx context.Context, targets []ArticleRef) (Summary, []ProcessingResult) {
	var summary Summary
	results := make([]ProcessingResult, 0, len(targets))

	for i, ref := range targets {
		if err := ctx.Err(); err != nil {
			log.Printf("Run cancelled after %d/%d targets", i, len(targets))
			break
		}

		log.Printf("[%d/%d] Processing: %s", i+1, len(targets), ref.URL)
		result := p.processTarget(ctx, ref)
		results = append(results, result)

		switch result.Status {
		case StatusSaved:
			summary.Saved++
			log.Printf("✓ Saved: %s", result.Filename)
		case StatusFailed:
			summary.Failed++
			log.Printf("✗ Failed %s: %v", result.URL, result.Err)
		case StatusSkippedByTitle:
			summary.Skipped++
			log.Printf("Skipping %s: title already archived", result.URL)
		case StatusSkippedByFilename:
			summary.Skipped++
			log.Printf("Skipping %s: file exists (%s)", result.URL, result.Filename)
		}
	}

	return summary, results
}

// processTarget runs one target through the skip/visit/extract/save sequence.
// Every error past the pre-fetch check is absorbed into a failed result.
func (p *ArticleProcessor) processTarget(ctx context.Context, ref ArticleRef) ProcessingResult {
	// Cheap pre-fetch skip on the hint title. Approximate: it matches any
	// date stamp, and explicit URL targets bypass it entirely.
	if ref.HintTitle != URLTargetHint && p.index.HasTitleSuffix(sanitizeTitle(ref.HintTitle)) {
		return ProcessingResult{URL: ref.URL, Status: StatusSkippedByTitle}
	}

	rec, err := p.fetchRecord(ctx, ref.URL)
	if err != nil {
		return ProcessingResult{URL: ref.URL, Status: StatusFailed, Err: err}
	}

	filename := archiveFilename(rec)
	if p.index.HasFilename(filename) {
		return ProcessingResult{URL: ref.URL, Status: StatusSkippedByFilename, Filename: filename}
	}

	if err := p.save(filename, rec); err != nil {
		return ProcessingResult{URL: ref.URL, Status: StatusFailed, Filename: filename, Err: err}
	}
	p.index.Add(filename)

	return ProcessingResult{URL: ref.URL, Status: StatusSaved, Filename: filename}
}

// fetchRecord navigates to the article and extracts its record. The bounded
// wait for the article container is best-effort: on timeout the selector
// fallback in extractRecord may still succeed or degrade to empty content.
func (p *ArticleProcessor) fetchRecord(ctx context.Context, articleURL string) (*ArticleRecord, error) {
	if err := p.renderer.Navigate(ctx, articleURL); err != nil {
		return nil, &NavigationError{URL: articleURL, Cause: err}
	}

	timeout := time.Duration(p.settings.ContainerTimeoutSeconds) * time.Second
	if err := p.renderer.WaitVisible(ctx, p.settings.ContainerSelector, timeout); err != nil {
		log.Printf("article container not visible on %s within %s, extracting anyway", articleURL, timeout)
	}

	html, err := p.renderer.HTML(ctx)
	if err != nil {
		return nil, &NavigationError{URL: articleURL, Cause: err}
	}

	rec, err := extractRecord(html, p.settings.TitleSelectors, p.settings.ContentSelectors)
	if err != nil {
		return nil, err
	}
	if rec.ContentMarkup == "" {
		log.Printf("Warning: no content matched for %s, saving title only", articleURL)
	}
	return rec, nil
}

// save converts the record and writes the file. The first line is a level-1
// heading with the authoritative title, then a blank line, then the body.
func (p *ArticleProcessor) save(filename string, rec *ArticleRecord) error {
	body := ""
	if rec.ContentMarkup != "" {
		converted, err := p.converter.ConvertString(rec.ContentMarkup)
		if err != nil {
			return fmt.Errorf("converting to markdown: %w", err)
		}
		body = strings.TrimSpace(converted)
	}

	content := "# " + rec.Title + "\n\n"
	if body != "" {
		content += body + "\n"
	}

	path := filepath.Join(p.settings.OutputDirectory, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
