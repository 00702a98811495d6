package exmark

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exmark-go/internal/logger"
	"github.com/ukaji3/exmark-go/pkg/exmark/opc"
)

// imageRegistration records one added image: the extension as given in the
// source file name and the generated unique base name of its media part.
type imageRegistration struct {
	ext        string
	uniqueName string
}

// Editor mutates an xlsx package to bind background images to worksheets.
// The call sequence is Open, AddImage one or more times, then SelectSheet
// and BindBackground per target sheet, then Close.
//
// An Editor is not safe for concurrent use: the selected sheet, the id
// counter, and the registration table are plain mutable fields.
type Editor struct {
	pkg    *opc.Package
	opts   Options
	images map[int]imageRegistration
	sheet  int
	closed bool
}

// Open opens the package at path for editing. It fails if the path does not
// exist or is not a valid archive. Sheet 1 is selected initially.
func Open(path string, opts Options) (*Editor, error) {
	pkg, err := opc.OpenPackage(path)
	if err != nil {
		return nil, err
	}

	return &Editor{
		pkg:    pkg,
		opts:   opts,
		images: make(map[int]imageRegistration),
		sheet:  1,
	}, nil
}

// AddImage stores the raw bytes of the image file at path as a new media
// part and registers it under the next sequential id, starting at 1. The
// extension is taken from the file name, with no content sniffing. The media
// part lands at xl/media/bgimage<uniqueName>.<ext> immediately, before any
// bind; the archive itself becomes durable only at Close.
func (e *Editor) AddImage(path string) (int, error) {
	if err := e.ensureOpen(); err != nil {
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read image: %w", err)
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	uniqueName, err := uniqueBaseName()
	if err != nil {
		return 0, err
	}

	mediaPath := opc.MediaPath(uniqueName, ext)
	if err := e.pkg.WritePart(mediaPath, data); err != nil {
		return 0, fmt.Errorf("write media part: %w", err)
	}

	// Ids are assigned only on success, so they run 1, 2, 3, … with no
	// gaps; registrations are never removed, so an id is never reissued.
	id := len(e.images) + 1
	e.images[id] = imageRegistration{ext: ext, uniqueName: uniqueName}

	logger.Logger().Debugw("image added", "id", id, "part", mediaPath)

	return id, nil
}

// SelectSheet sets the 1-based worksheet number affected by subsequent
// BindBackground calls and returns the editor for chaining. The number is
// not validated here; a missing worksheet surfaces at bind time.
func (e *Editor) SelectSheet(num int) *Editor {
	e.sheet = num
	return e
}

// SheetNumber resolves a worksheet display name to the sheet number usable
// with SelectSheet.
func (e *Editor) SheetNumber(name string) (int, error) {
	if err := e.ensureOpen(); err != nil {
		return 0, err
	}

	return opc.SheetNumber(e.pkg, name)
}

// BindBackground binds a previously added image as the background of the
// selected worksheet. Three parts are rewritten in order: the sheet
// relationships part, the worksheet part, and the content-types manifest.
// The writes are not transactional; a failure partway leaves the earlier
// rewrites in place and they are flushed at Close.
func (e *Editor) BindBackground(imageID int) error {
	if err := e.ensureOpen(); err != nil {
		return err
	}

	img, ok := e.images[imageID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidImageNumber, imageID)
	}

	target := opc.MediaTarget(img.uniqueName, img.ext)

	relID, err := e.writeSheetRels(target)
	if err != nil {
		return NewBindError(e.sheet, "relationships", err)
	}

	if err := e.patchWorksheet(relID); err != nil {
		return NewBindError(e.sheet, "worksheet", err)
	}

	if err := e.declareContentType(img.ext); err != nil {
		return NewBindError(e.sheet, "content types", err)
	}

	return nil
}

// Close flushes all writes back to the package path. It is an idempotent
// no-op on later calls and on a never-opened editor, so callers can defer it
// unconditionally.
func (e *Editor) Close() error {
	if e.pkg == nil || e.closed {
		return nil
	}
	e.closed = true

	if err := e.pkg.Close(); err != nil {
		return fmt.Errorf("close package: %w", err)
	}

	return nil
}

// writeSheetRels rewrites the selected sheet's relationships part to point
// at target and returns the relationship id the worksheet must reference.
// The part is replaced with a single-entry document unless PreserveSheetRels
// is set and the sheet already has a relationships part to merge into.
func (e *Editor) writeSheetRels(target string) (string, error) {
	relsPath := opc.SheetRelsPath(e.sheet)

	if e.opts.PreserveSheetRels {
		if existing, err := e.pkg.ReadPart(relsPath); err == nil {
			data, relID, err := opc.MergeImageRels(existing, target)
			if err != nil {
				return "", err
			}
			if err := e.pkg.WritePart(relsPath, data); err != nil {
				return "", err
			}

			logger.Logger().Debugw("sheet relationships merged", "part", relsPath, "rel", relID)

			return relID, nil
		}
	}

	data, err := opc.BuildImageRels(target)
	if err != nil {
		return "", err
	}
	if err := e.pkg.WritePart(relsPath, data); err != nil {
		return "", err
	}

	logger.Logger().Debugw("sheet relationships written", "part", relsPath, "target", target)

	return opc.BackgroundRelID, nil
}

// patchWorksheet inserts or replaces the picture element of the selected
// worksheet. A worksheet with no closing tag is left unchanged.
func (e *Editor) patchWorksheet(relID string) error {
	sheetPath := opc.WorksheetPath(e.sheet)

	content, err := e.pkg.ReadPart(sheetPath)
	if err != nil {
		return fmt.Errorf("unable to get sheet content: %w", err)
	}

	patched, ok := opc.SetPicture(content, relID)
	if !ok {
		logger.Logger().Debugw("worksheet has no closing tag, picture element skipped", "part", sheetPath)
		return nil
	}

	return e.pkg.WritePart(sheetPath, patched)
}

// declareContentType ensures the manifest declares a default content type
// for the image extension.
func (e *Editor) declareContentType(ext string) error {
	content, err := e.pkg.ReadPart(opc.ContentTypesPath)
	if err != nil {
		return fmt.Errorf("unable to get content types: %w", err)
	}

	patched, added := opc.AddDefault(content, ext)
	if !added {
		return nil
	}

	return e.pkg.WritePart(opc.ContentTypesPath, patched)
}

func (e *Editor) ensureOpen() error {
	if e.pkg == nil || e.closed {
		return ErrNotOpen
	}
	return nil
}

// uniqueBaseName returns a random token that keeps media part names
// collision-free for the archive's lifetime.
func uniqueBaseName() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate media name: %w", err)
	}
	return hex.EncodeToString(b[:]), nil
}
