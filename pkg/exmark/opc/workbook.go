package opc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrSheetNotFound indicates a worksheet display name unknown to the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetFile describes one worksheet of the workbook: its display name, its
// part path, and the 1-based file number in that path.
type SheetFile struct {
	Name   string
	Path   string
	Number int
}

var sheetNumberRe = regexp.MustCompile(`sheet(\d+)\.xml$`)

// SheetFiles maps every sheet declared in xl/workbook.xml to its worksheet
// part, in workbook order.
func SheetFiles(p *Package) ([]SheetFile, error) {
	workbookXML, err := p.ReadPart("xl/workbook.xml")
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	wbRelsXML, err := p.ReadPart("xl/_rels/workbook.xml.rels")
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook relationships: %w", err)
	}

	order, names := parseWorkbookSheets(workbookXML)
	targets := parseWorkbookRels(wbRelsXML)

	var files []SheetFile
	for _, rID := range order {
		path, ok := targets[rID]
		if !ok {
			continue
		}

		sf := SheetFile{Name: names[rID], Path: path}
		if m := sheetNumberRe.FindStringSubmatch(path); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				sf.Number = n
			}
		}

		files = append(files, sf)
	}

	return files, nil
}

// SheetNumber resolves a worksheet display name to its file number, the
// number appearing in the sheet<N>.xml part path.
func SheetNumber(p *Package, name string) (int, error) {
	files, err := SheetFiles(p)
	if err != nil {
		return 0, err
	}

	for _, sf := range files {
		if sf.Name == name && sf.Number > 0 {
			return sf.Number, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
}

// parseWorkbookSheets returns sheet rIds in workbook order and each sheet's
// display name.
func parseWorkbookSheets(data []byte) ([]string, map[string]string) {
	var order []string
	names := make(map[string]string)

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				order = append(order, rID)
				names[rID] = name
			}
		}
	}

	return order, names
}

// parseWorkbookRels maps workbook relationship ids to worksheet part paths.
func parseWorkbookRels(data []byte) map[string]string {
	result := make(map[string]string)

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" && strings.Contains(strings.ToLower(target), "worksheet") {
				result[rID] = ResolveRelativePath(target, "xl")
			}
		}
	}

	return result
}
