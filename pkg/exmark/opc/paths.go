package opc

import (
	"fmt"
	"strings"
)

// ContentTypesPath is the package-wide content-type manifest part.
const ContentTypesPath = "[Content_Types].xml"

// WorksheetPath returns the worksheet part path for a 1-based sheet number.
func WorksheetPath(sheet int) string {
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", sheet)
}

// SheetRelsPath returns the relationships part path for a 1-based sheet number.
func SheetRelsPath(sheet int) string {
	return fmt.Sprintf("xl/worksheets/_rels/sheet%d.xml.rels", sheet)
}

// MediaPath returns the media part path for a background image. The
// extension is lower-cased so the part name, the relationship target, and
// the content-type declaration always agree.
func MediaPath(uniqueName, ext string) string {
	return "xl/media/bgimage" + uniqueName + "." + strings.ToLower(ext)
}

// MediaTarget returns the worksheet-relative target for a background image,
// as referenced from a sheet relationships part.
func MediaTarget(uniqueName, ext string) string {
	return "../media/bgimage" + uniqueName + "." + strings.ToLower(ext)
}

// ResolveRelativePath resolves a relationship target against the base
// directory of the part holding the relationship.
func ResolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return baseDir + target
	}
	return baseDir + "/" + target
}
