package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/muhammadolammi/atcampus/internal/storage"
)

// retryBackoff is the base wait between attempts; attempt n waits n times it.
var retryBackoff = 500 * time.Millisecond

// retry calls fn up to attempts times with linear backoff, giving up early if
// ctx is done.
func retry[T any](ctx context.Context, attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(time.Duration(i+1) * retryBackoff):
		}
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func CleanJson(input string) string {
	clean := strings.TrimSpace(input)

	// opening ```json or ``` with optional newline
	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// parseScreeningResult validates the agent output and returns it as stored
// JSON, with the score clamped to [0,100].
func parseScreeningResult(output string) (json.RawMessage, error) {
	cleaned := CleanJson(output)
	if cleaned == "" {
		return nil, errors.New("empty response from agent")
	}
	var result ScreeningResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	result.MatchScore = min(max(result.MatchScore, 0), 100)
	if result.RelevantSkills == nil {
		result.RelevantSkills = []string{}
	}
	if result.MissingSkills == nil {
		result.MissingSkills = []string{}
	}
	return json.Marshal(result)
}

func ExtractResumeText(mime string, data []byte) (string, error) {
	switch mime {
	case storage.MimeText:
		return string(data), nil

	case storage.MimePDF:
		return extractPDFText(bytes.NewReader(data), int64(len(data)))

	case storage.MimeDocx:
		return extractDocxText(bytes.NewReader(data), int64(len(data)))

	default:
		return "", fmt.Errorf("unsupported file type: %s", mime)
	}
}

func extractPDFText(reader io.ReaderAt, size int64) (string, error) {
	pdfReader, err := pdf.NewReader(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	numPages := pdfReader.NumPage()
	pages := make([]func() (string, error), 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pages = append(pages, func() (string, error) { return page.GetPlainText(nil) })
	}
	return joinPageText(pages)
}

// joinPageText concatenates the text of every page that extracts. It fails
// only when no page does.
func joinPageText(pages []func() (string, error)) (string, error) {
	var textBuilder strings.Builder
	var errs []error
	for i, page := range pages {
		text, err := page()
		if err != nil {
			errs = append(errs, fmt.Errorf("page %d: %w", i+1, err))
			continue
		}
		textBuilder.WriteString(text)
	}
	if len(pages) > 0 && len(errs) == len(pages) {
		return "", fmt.Errorf("failed to extract pdf text: %w", errors.Join(errs...))
	}
	return textBuilder.String(), nil
}

func extractDocxText(reader io.ReaderAt, size int64) (string, error) {
	doc, err := docx.ReadDocxFromMemory(reader, size)
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}
