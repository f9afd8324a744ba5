package extract

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExtractPlain(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte("hello world"), ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if text != "hello world" {
		t.Errorf("got %q", text)
	}
}

func TestExtractPlain_InvalidUTF8(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte{'o', 'k', 0xff, 0xfe}, ".txt")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if !strings.HasPrefix(text, "ok") {
		t.Errorf("got %q", text)
	}
	if !strings.Contains(text, "�") {
		t.Errorf("invalid bytes not replaced: %q", text)
	}
}

func TestExtractUnknownExtensionFallsBackToPlain(t *testing.T) {
	e := NewExtractor()
	text, err := e.ExtractBytes([]byte("raw bytes"), ".weird")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if text != "raw bytes" {
		t.Errorf("got %q", text)
	}
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "quarterly"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "report"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "revenue"); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}

	e := NewExtractor()
	text, err := e.ExtractBytes(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	for _, want := range []string{"quarterly", "report", "revenue"} {
		if !strings.Contains(text, want) {
			t.Errorf("missing %q in %q", want, text)
		}
	}
}

func TestExtractDOCX(t *testing.T) {
	content := buildDocx(t, `<w:p><w:r><w:t>hello</w:t></w:r><w:r><w:t xml:space="preserve">docx &amp; more</w:t></w:r></w:p>`)
	e := NewExtractor()
	text, err := e.ExtractBytes(content, ".docx")
	if err != nil {
		t.Fatalf("ExtractBytes: %v", err)
	}
	if !strings.Contains(text, "hello") || !strings.Contains(text, "docx & more") {
		t.Errorf("got %q", text)
	}
}

func TestExtractDOCX_NotAZip(t *testing.T) {
	e := NewExtractor()
	if _, err := e.ExtractBytes([]byte("not a zip"), ".docx"); err == nil {
		t.Error("expected error for invalid docx")
	}
}
