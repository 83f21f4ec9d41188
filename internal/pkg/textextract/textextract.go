package textextract

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedExt reports whether files with this extension can be extracted.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".txt", ".md", ".pdf":
		return true
	}
	return false
}

// ExtractText returns the plain text of the file at path. Plain text and
// markdown are read verbatim; PDFs go through the PDF text extractor.
// Unsupported extensions return an empty string and no error, so callers
// treat them as "no content" rather than failures.
func ExtractText(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read file failed: %w", err)
		}
		return string(b), nil
	case ".pdf":
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open pdf failed: %w", err)
		}
		defer f.Close()
		return extractPDF(f)
	}
	return "", nil
}

// extractPDF pulls plain text out of r. Returns an empty string when the
// PDF has no extractable text.
func extractPDF(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf failed: %w", err)
	}
	if len(b) == 0 {
		return "", nil
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("parse pdf failed: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text failed: %w", err)
	}
	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read pdf text failed: %w", err)
	}
	return string(out), nil
}

// ContentHash hashes extracted text; used to detect unchanged documents
// across index runs.
func ContentHash(text string) string {
	sum := sha1.Sum([]byte(text))
	return hex.EncodeToString(sum[:])
}
