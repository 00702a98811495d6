package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func newTestPackage(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "data")

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	return tmpFile
}

func TestOpenPackage(t *testing.T) {
	path := newTestPackage(t)

	p, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}

	if !p.HasPart("xl/worksheets/sheet1.xml") {
		t.Error("worksheet part missing")
	}
	if !p.HasPart(ContentTypesPath) {
		t.Error("content types part missing")
	}
	if p.Path() != path {
		t.Errorf("Path() = %q, expected %q", p.Path(), path)
	}
}

func TestOpenPackageErrors(t *testing.T) {
	if _, err := OpenPackage(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}

	notZip := filepath.Join(t.TempDir(), "plain.xlsx")
	if err := os.WriteFile(notZip, []byte("not an archive"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := OpenPackage(notZip); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestReadWriteParts(t *testing.T) {
	p, err := OpenPackage(newTestPackage(t))
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}

	if _, err := p.ReadPart("xl/media/none.png"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("expected ErrPartNotFound, got %v", err)
	}

	before := len(p.PartNames())
	if err := p.WritePart("xl/media/bgimageabc.png", []byte{1, 2, 3}); err != nil {
		t.Fatalf("WritePart failed: %v", err)
	}
	if len(p.PartNames()) != before+1 {
		t.Error("new part not appended")
	}

	// Overwrite replaces content in place, keeping entry order.
	if err := p.WritePart("xl/media/bgimageabc.png", []byte{9}); err != nil {
		t.Fatalf("WritePart overwrite failed: %v", err)
	}
	data, err := p.ReadPart("xl/media/bgimageabc.png")
	if err != nil {
		t.Fatalf("ReadPart failed: %v", err)
	}
	if len(p.PartNames()) != before+1 || len(data) != 1 || data[0] != 9 {
		t.Error("overwrite did not replace content in place")
	}
}

func TestCloseFlushesOnce(t *testing.T) {
	path := newTestPackage(t)

	p, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}
	if err := p.WritePart("xl/media/bgimageabc.png", []byte("img")); err != nil {
		t.Fatalf("WritePart failed: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// The flush must be durable and keep original entries intact.
	reopened, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage after close failed: %v", err)
	}
	if !reopened.HasPart("xl/worksheets/sheet1.xml") {
		t.Error("original part lost on flush")
	}
	data, err := reopened.ReadPart("xl/media/bgimageabc.png")
	if err != nil || string(data) != "img" {
		t.Errorf("media part not flushed: %q, %v", data, err)
	}

	names := reopened.PartNames()
	if names[len(names)-1] != "xl/media/bgimageabc.png" {
		t.Errorf("new part not appended last: %v", names)
	}

	// Later calls are no-ops even after the file disappears.
	if err := os.Remove(path); err != nil {
		t.Fatalf("Failed to remove file: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close = %v, expected nil", err)
	}

	if err := p.WritePart("xl/other.bin", nil); !errors.Is(err, ErrPackageClosed) {
		t.Errorf("expected ErrPackageClosed, got %v", err)
	}
}

func TestOpenPackageDuplicateEntries(t *testing.T) {
	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)
	for _, content := range []string{"first", "second"} {
		fw, err := w.Create("part.xml")
		if err != nil {
			t.Fatalf("Failed to create entry: %v", err)
		}
		fw.Write([]byte(content))
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close writer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "dup.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	p, err := OpenPackage(path)
	if err != nil {
		t.Fatalf("OpenPackage failed: %v", err)
	}

	data, err := p.ReadPart("part.xml")
	if err != nil {
		t.Fatalf("ReadPart failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("expected last entry to win, got %q", data)
	}
	if len(p.PartNames()) != 1 {
		t.Errorf("expected 1 part, got %d", len(p.PartNames()))
	}
}
