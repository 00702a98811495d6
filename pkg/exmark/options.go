// Package exmark binds background images to worksheets of xlsx packages.
package exmark

// Options configures editor behavior.
type Options struct {
	// PreserveSheetRels keeps a sheet's existing relationships when a
	// background is bound, appending the image relationship under a fresh
	// id instead of replacing the part with a single-entry document.
	// The default replace mode discards pre-existing sheet relationships
	// such as hyperlinks.
	PreserveSheetRels bool
}

// DefaultOptions returns default editor options.
func DefaultOptions() Options {
	return Options{}
}
