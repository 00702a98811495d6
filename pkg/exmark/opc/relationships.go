package opc

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

const (
	// ImageRelationshipType is the OpenXML relationship type for image parts.
	ImageRelationshipType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"

	// BackgroundRelID is the fixed relationship id used when a sheet's
	// relationships part is written from scratch.
	BackgroundRelID = "rId1"

	// relationshipsNS is the namespace of package relationship documents.
	relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

	// xmlHeader precedes every marshaled XML part.
	xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
)

// Relationship is a single entry of a relationships part.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships is the document stored in a *.rels part.
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// BuildImageRels builds a minimal relationships document holding exactly one
// image relationship, id rId1, pointing at target. Writing it over a sheet's
// relationships part discards whatever relationships the sheet had before.
func BuildImageRels(target string) ([]byte, error) {
	return marshalRels(&Relationships{
		Namespace: relationshipsNS,
		Relationship: []Relationship{{
			ID:     BackgroundRelID,
			Type:   ImageRelationshipType,
			Target: target,
		}},
	})
}

// MergeImageRels parses an existing relationships document, drops any prior
// image relationship, and appends one for target under the next free id.
// It returns the new document and the id assigned to the image relationship.
func MergeImageRels(existing []byte, target string) ([]byte, string, error) {
	rels := &Relationships{}
	if err := xml.Unmarshal(existing, rels); err != nil {
		return nil, "", fmt.Errorf("failed to parse relationships: %w", err)
	}

	kept := rels.Relationship[:0]
	for _, rel := range rels.Relationship {
		if rel.Type == ImageRelationshipType {
			continue
		}
		kept = append(kept, rel)
	}
	rels.Relationship = kept

	id := nextRelationshipID(rels)
	rels.Relationship = append(rels.Relationship, Relationship{
		ID:     id,
		Type:   ImageRelationshipType,
		Target: target,
	})

	if rels.Namespace == "" {
		rels.Namespace = relationshipsNS
	}

	data, err := marshalRels(rels)
	if err != nil {
		return nil, "", err
	}

	return data, id, nil
}

// ParseRelationships decodes a relationships part.
func ParseRelationships(data []byte) (*Relationships, error) {
	rels := &Relationships{}
	if err := xml.Unmarshal(data, rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return rels, nil
}

// nextRelationshipID generates the next available relationship id.
func nextRelationshipID(rels *Relationships) string {
	maxID := 0
	for _, rel := range rels.Relationship {
		if strings.HasPrefix(rel.ID, "rId") {
			if id, err := strconv.Atoi(rel.ID[3:]); err == nil && id > maxID {
				maxID = id
			}
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

func marshalRels(rels *Relationships) ([]byte, error) {
	output, err := xml.Marshal(rels)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relationships: %w", err)
	}
	return append([]byte(xmlHeader), output...), nil
}
