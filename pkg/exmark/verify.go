package exmark

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/exmark-go/pkg/exmark/opc"
)

// Report summarizes the structural state of one worksheet's background.
type Report struct {
	// Sheet is the verified worksheet number.
	Sheet int
	// Pictures is the number of picture elements in the worksheet part.
	Pictures int
	// ImageRels is the number of image relationships on the sheet.
	ImageRels int
	// Target is the media part referenced by the sheet's image relationship.
	Target string
	// MediaPresent reports whether the referenced media part exists.
	MediaPresent bool
	// DefaultDeclared reports whether the manifest declares the media extension.
	DefaultDeclared bool
	// Opens reports whether a conformant consumer opens the workbook.
	Opens bool
}

// OK reports whether the sheet's background would render: exactly one
// picture element wired to exactly one image relationship whose media part
// exists and whose extension is declared, in a workbook that still opens.
func (r *Report) OK() bool {
	return r.Pictures == 1 && r.ImageRels == 1 &&
		r.MediaPresent && r.DefaultDeclared && r.Opens
}

// Verify structurally checks the background binding of one worksheet: the
// parts a bind rewrites are read back and cross-checked against each other.
// It never mutates the package.
func Verify(path string, sheet int) (*Report, error) {
	pkg, err := opc.OpenPackage(path)
	if err != nil {
		return nil, err
	}

	report := &Report{Sheet: sheet}

	sheetXML, err := pkg.ReadPart(opc.WorksheetPath(sheet))
	if err != nil {
		return nil, fmt.Errorf("unable to get sheet content: %w", err)
	}
	report.Pictures = opc.CountPictures(sheetXML)

	if relsData, err := pkg.ReadPart(opc.SheetRelsPath(sheet)); err == nil {
		rels, err := opc.ParseRelationships(relsData)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels.Relationship {
			if rel.Type != opc.ImageRelationshipType {
				continue
			}
			report.ImageRels++
			report.Target = opc.ResolveRelativePath(rel.Target, "xl/worksheets")
		}
	}

	if report.Target != "" {
		report.MediaPresent = pkg.HasPart(report.Target)

		ctData, err := pkg.ReadPart(opc.ContentTypesPath)
		if err != nil {
			return nil, fmt.Errorf("unable to get content types: %w", err)
		}

		ext := strings.TrimPrefix(filepath.Ext(report.Target), ".")
		report.DefaultDeclared = opc.HasDefault(ctData, ext)
	}

	if f, err := excelize.OpenFile(path); err == nil {
		report.Opens = true
		f.Close()
	}

	return report, nil
}
