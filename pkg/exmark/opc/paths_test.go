package opc

import "testing"

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../media/bgimageabc123.png", "xl/worksheets", "xl/media/bgimageabc123.png"},
		{"worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
		{"/sheet1.xml", "xl/worksheets", "xl/worksheets/sheet1.xml"},
		{"theme/theme1.xml", "xl", "xl/theme/theme1.xml"},
	}

	for _, tt := range tests {
		result := ResolveRelativePath(tt.target, tt.baseDir)
		if result != tt.expected {
			t.Errorf("ResolveRelativePath(%q, %q) = %q, expected %q",
				tt.target, tt.baseDir, result, tt.expected)
		}
	}
}

func TestMediaPaths(t *testing.T) {
	tests := []struct {
		uniqueName string
		ext        string
		path       string
		target     string
	}{
		{"abc123", "png", "xl/media/bgimageabc123.png", "../media/bgimageabc123.png"},
		{"abc123", "PNG", "xl/media/bgimageabc123.png", "../media/bgimageabc123.png"},
		{"ff00", "Jpg", "xl/media/bgimageff00.jpg", "../media/bgimageff00.jpg"},
	}

	for _, tt := range tests {
		if result := MediaPath(tt.uniqueName, tt.ext); result != tt.path {
			t.Errorf("MediaPath(%q, %q) = %q, expected %q", tt.uniqueName, tt.ext, result, tt.path)
		}
		if result := MediaTarget(tt.uniqueName, tt.ext); result != tt.target {
			t.Errorf("MediaTarget(%q, %q) = %q, expected %q", tt.uniqueName, tt.ext, result, tt.target)
		}
	}
}

func TestPartPaths(t *testing.T) {
	if result := WorksheetPath(3); result != "xl/worksheets/sheet3.xml" {
		t.Errorf("WorksheetPath(3) = %q", result)
	}
	if result := SheetRelsPath(3); result != "xl/worksheets/_rels/sheet3.xml.rels" {
		t.Errorf("SheetRelsPath(3) = %q", result)
	}
}
