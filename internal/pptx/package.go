// Package pptx opens, edits and re-serializes PresentationML packages.
//
// A Package keeps every part of the source archive in memory, so edits never
// touch the bytes the caller passed to Open. Only the parts involved in slide
// ordering are parsed: the presentation part, its relationships, the content
// types and the slide relationships. Slide bodies are handled as raw XML.
package pptx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Well-known part names.
const (
	contentTypesPart = "[Content_Types].xml"
	presentationPart = "ppt/presentation.xml"
	appPropsPart     = "docProps/app.xml"
)

// Package is an in-memory PresentationML package.
type Package struct {
	parts map[string][]byte
	order []string

	types  *contentTypes
	rels   *relationships
	slides []Slide
}

// Open reads a .pptx archive. The returned package owns copies of every part.
func Open(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPackage, err)
	}

	p := &Package{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		body, err := readZipEntry(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		p.parts[f.Name] = body
		p.order = append(p.order, f.Name)
	}

	for _, required := range []string{contentTypesPart, presentationPart} {
		if _, ok := p.parts[required]; !ok {
			return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, required)
		}
	}

	if p.types, err = parseContentTypes(p.parts[contentTypesPart]); err != nil {
		return nil, err
	}
	if p.rels, err = p.readRels(presentationPart); err != nil {
		return nil, err
	}
	if p.slides, err = p.parseSlideList(); err != nil {
		return nil, err
	}
	return p, nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// Part returns a copy-free view of a part's bytes and whether it exists.
func (p *Package) Part(name string) ([]byte, bool) {
	body, ok := p.parts[name]
	return body, ok
}

// PartNames lists the parts in archive order.
func (p *Package) PartNames() []string {
	names := make([]string, len(p.order))
	copy(names, p.order)
	return names
}

func (p *Package) setPart(name string, body []byte) {
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = body
}

func (p *Package) deletePart(name string) {
	if _, ok := p.parts[name]; !ok {
		return
	}
	delete(p.parts, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
}

// Bytes serializes the package. Parsed parts are written back first, so the
// archive always reflects the current slide list.
func (p *Package) Bytes() ([]byte, error) {
	if err := p.flush(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// Content types go first, as Office writes them.
	names := make([]string, 0, len(p.order))
	names = append(names, contentTypesPart)
	for _, n := range p.order {
		if n != contentTypesPart {
			names = append(names, n)
		}
	}

	for _, name := range names {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("failed to create part %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return nil, fmt.Errorf("failed to write part %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize package: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *Package) flush() error {
	types, err := p.types.marshal()
	if err != nil {
		return err
	}
	p.setPart(contentTypesPart, types)

	rels, err := p.rels.marshal()
	if err != nil {
		return err
	}
	p.setPart(relsPath(presentationPart), rels)

	p.setPart(presentationPart, p.writeSlideList(p.parts[presentationPart]))
	p.updateAppProps()
	return nil
}
