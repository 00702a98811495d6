package opc

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// typesCloseTag is the literal marker new Default entries are inserted before.
const typesCloseTag = "</Types>"

// HasDefault reports whether the content-types document already declares a
// Default entry pairing the extension with its image content type. The
// attribute pair is checked on decoded elements, so an extension string that
// merely appears elsewhere in the document cannot satisfy the check.
func HasDefault(data []byte, ext string) bool {
	ext = strings.ToLower(ext)
	contentType := "image/" + ext

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Default" {
			var extension, ct string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Extension":
					extension = attr.Value
				case "ContentType":
					ct = attr.Value
				}
			}
			if strings.EqualFold(extension, ext) && strings.EqualFold(ct, contentType) {
				return true
			}
		}
	}

	return false
}

// AddDefault declares image/<ext> as the default content type for the
// extension, inserting the entry immediately before the closing Types tag.
// The document is patched by literal substitution so every other byte stays
// untouched. It reports whether the document changed: an already declared
// pair, or a document without a closing tag, is returned as-is.
func AddDefault(data []byte, ext string) ([]byte, bool) {
	ext = strings.ToLower(ext)
	if HasDefault(data, ext) {
		return data, false
	}

	entry := fmt.Sprintf(`<Default Extension=%q ContentType="image/%s"/>`, ext, ext)

	return insertBefore(data, typesCloseTag, entry)
}
