package ingest

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"

	"ai-salesagent-be/internal/pkg/apperrors"
)

func TestExtractTextPlain(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{name: "txt", filename: "notes.txt", content: "Refunds within 30 days."},
		{name: "markdown", filename: "README.md", content: "# Pricing\nStarter plan is free."},
		{name: "csv", filename: "catalog.CSV", content: "sku,price\nA1,10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText([]byte(tt.content), tt.filename)
			if err != nil {
				t.Fatalf("ExtractText() error = %v", err)
			}
			if got != tt.content {
				t.Errorf("ExtractText() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestExtractTextUnsupported(t *testing.T) {
	_, err := ExtractText([]byte("binary"), "slides.pptx")
	if !errors.Is(err, apperrors.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractTextEmpty(t *testing.T) {
	_, err := ExtractText([]byte("   \n\t  "), "blank.txt")
	if !errors.Is(err, apperrors.ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
}

func TestExtractTextDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Our refund policy.</w:t></w:r></w:p>
    <w:p><w:r><w:t>Thirty days, no questions.</w:t></w:r></w:p>
  </w:body>
</w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte(docXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := ExtractText(buf.Bytes(), "policy.docx")
	if err != nil {
		t.Fatalf("ExtractText() error = %v", err)
	}
	if !strings.Contains(got, "Our refund policy.") || !strings.Contains(got, "Thirty days, no questions.") {
		t.Errorf("docx text missing paragraphs: %q", got)
	}
}

func TestSupportedExtension(t *testing.T) {
	supported := []string{"a.txt", "b.md", "c.csv", "d.pdf", "e.docx", "F.PDF"}
	for _, name := range supported {
		if !SupportedExtension(name) {
			t.Errorf("SupportedExtension(%q) = false, want true", name)
		}
	}
	unsupported := []string{"a.exe", "b.pptx", "c", "d.doc"}
	for _, name := range unsupported {
		if SupportedExtension(name) {
			t.Errorf("SupportedExtension(%q) = true, want false", name)
		}
	}
}
