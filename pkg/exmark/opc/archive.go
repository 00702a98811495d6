// Package opc reads and mutates the parts of an OpenXML package.
package opc

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrPartNotFound indicates a requested part is not present in the package.
var ErrPartNotFound = errors.New("part not found")

// ErrPackageClosed indicates the package was already flushed and closed.
var ErrPackageClosed = errors.New("package already closed")

// part is a single archive entry.
type part struct {
	name string
	data []byte
}

// Package is an OpenXML package (a zip archive of parts) loaded fully into
// memory. Parts keep their original archive order; new parts are appended.
// Mutations stay in memory until Close flushes them back to the source path.
type Package struct {
	path   string
	parts  []part
	index  map[string]int
	closed bool
}

// OpenPackage reads the archive at path into memory.
func OpenPackage(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open package: %w", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open package %s: %w", path, err)
	}

	p := &Package{
		path:  path,
		index: make(map[string]int),
	}

	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}

		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.Name, err)
		}

		// Archives with duplicate entry names keep the last occurrence.
		if i, ok := p.index[f.Name]; ok {
			p.parts[i].data = content
			continue
		}

		p.index[f.Name] = len(p.parts)
		p.parts = append(p.parts, part{name: f.Name, data: content})
	}

	return p, nil
}

// Path returns the file path the package was opened from.
func (p *Package) Path() string {
	return p.path
}

// HasPart reports whether a part exists under the given name.
func (p *Package) HasPart(name string) bool {
	_, ok := p.index[name]
	return ok
}

// PartNames returns all part names in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.parts))
	for i, pt := range p.parts {
		names[i] = pt.name
	}
	return names
}

// ReadPart returns the current content of the named part.
func (p *Package) ReadPart(name string) ([]byte, error) {
	i, ok := p.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return p.parts[i].data, nil
}

// WritePart overwrites the named part, inserting it if absent. The change is
// in-memory only until Close.
func (p *Package) WritePart(name string, data []byte) error {
	if p.closed {
		return ErrPackageClosed
	}

	if i, ok := p.index[name]; ok {
		p.parts[i].data = data
		return nil
	}

	p.index[name] = len(p.parts)
	p.parts = append(p.parts, part{name: name, data: data})

	return nil
}

// Close serializes every part back to the source path. The first call
// flushes; repeated calls are no-ops.
func (p *Package) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	for _, pt := range p.parts {
		fw, err := w.Create(pt.name)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", pt.name, err)
		}
		if _, err := fw.Write(pt.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", pt.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close zip writer: %w", err)
	}

	if err := os.WriteFile(p.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write package: %w", err)
	}

	return nil
}
