package opc

import (
	"bytes"
	"fmt"
	"regexp"
)

// worksheetCloseTag is the literal marker the picture element is inserted
// before. Worksheets serialized without it (self-closing empty documents)
// cannot be patched by substitution.
const worksheetCloseTag = "</worksheet>"

// pictureTagRe matches an existing background picture element, in either its
// self-closing or its open/close serialized form.
var pictureTagRe = regexp.MustCompile(`<picture\b[^>]*/>|<picture\b[^>]*></picture>`)

// SetPicture places a background picture element referencing relID into the
// worksheet document. An existing picture element is replaced in place, so
// repeated calls leave exactly one; otherwise the element is inserted
// immediately before the closing worksheet tag. Documents without a literal
// closing tag are returned unchanged with ok = false.
func SetPicture(data []byte, relID string) (out []byte, ok bool) {
	tag := fmt.Sprintf(`<picture r:id=%q/>`, relID)

	if loc := pictureTagRe.FindIndex(data); loc != nil {
		out = make([]byte, 0, len(data)+len(tag))
		out = append(out, data[:loc[0]]...)
		out = append(out, tag...)
		out = append(out, data[loc[1]:]...)
		return out, true
	}

	return insertBefore(data, worksheetCloseTag, tag)
}

// CountPictures returns the number of picture elements in a worksheet document.
func CountPictures(data []byte) int {
	return len(pictureTagRe.FindAllIndex(data, -1))
}

// insertBefore inserts text immediately before the first occurrence of
// marker, reporting whether the marker was found. Patching by substitution
// keeps the rest of the document byte-identical.
func insertBefore(data []byte, marker, text string) ([]byte, bool) {
	idx := bytes.Index(data, []byte(marker))
	if idx < 0 {
		return data, false
	}

	out := make([]byte, 0, len(data)+len(text))
	out = append(out, data[:idx]...)
	out = append(out, text...)
	out = append(out, data[idx:]...)

	return out, true
}
