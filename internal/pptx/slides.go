package pptx

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// Slide is one entry of the presentation's slide list.
type Slide struct {
	ID       int
	RelID    string
	PartName string

	raw string
}

var (
	sldIDListRegex   = regexp.MustCompile(`(?s)<p:sldIdLst\s*/>|<p:sldIdLst>.*?</p:sldIdLst>`)
	sldIDEntryRegex  = regexp.MustCompile(`(?s)<p:sldId\s[^>]*?(?:/>|>.*?</p:sldId>)`)
	sldIDAttrRegex   = regexp.MustCompile(`\sid="(\d+)"`)
	sldRelAttrRegex  = regexp.MustCompile(`\sr:id="([^"]+)"`)
	sectionListRegex = regexp.MustCompile(`(?s)<p:ext uri="\{521415D9-36F7-43E2-AB2F-B90AF26B5E84\}">.*?</p:ext>`)
	slidePartRegex   = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	notesPartRegex   = regexp.MustCompile(`^ppt/notesSlides/notesSlide(\d+)\.xml$`)
	appSlidesRegex   = regexp.MustCompile(`<Slides>\d+</Slides>`)
	appNotesRegex    = regexp.MustCompile(`<Notes>\d+</Notes>`)
)

func (p *Package) parseSlideList() ([]Slide, error) {
	list := sldIDListRegex.Find(p.parts[presentationPart])
	if list == nil {
		return nil, nil
	}

	var slides []Slide
	for _, entry := range sldIDEntryRegex.FindAll(list, -1) {
		idMatch := sldIDAttrRegex.FindSubmatch(entry)
		relMatch := sldRelAttrRegex.FindSubmatch(entry)
		if idMatch == nil || relMatch == nil {
			return nil, fmt.Errorf("%w: slide list entry %q", ErrMalformedPart, entry)
		}
		id, err := strconv.Atoi(string(idMatch[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: slide id %q", ErrMalformedPart, idMatch[1])
		}
		rel, ok := p.rels.byID(string(relMatch[1]))
		if !ok {
			return nil, fmt.Errorf("%w: slide relationship %s", ErrMalformedPart, relMatch[1])
		}
		slides = append(slides, Slide{
			ID:       id,
			RelID:    rel.ID,
			PartName: resolveTarget(presentationPart, rel.Target),
			raw:      string(entry),
		})
	}
	return slides, nil
}

func (p *Package) writeSlideList(presentation []byte) []byte {
	var b bytes.Buffer
	b.WriteString("<p:sldIdLst>")
	for _, s := range p.slides {
		if s.raw != "" {
			b.WriteString(s.raw)
			continue
		}
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="%s"/>`, s.ID, s.RelID)
	}
	b.WriteString("</p:sldIdLst>")

	out := sldIDListRegex.ReplaceAllLiteral(presentation, b.Bytes())
	// Section lists name slide ids; a stale list makes PowerPoint repair the file.
	return sectionListRegex.ReplaceAll(out, nil)
}

func (p *Package) updateAppProps() {
	app, ok := p.parts[appPropsPart]
	if !ok {
		return
	}
	app = appSlidesRegex.ReplaceAllLiteral(app, []byte(fmt.Sprintf("<Slides>%d</Slides>", len(p.slides))))
	app = appNotesRegex.ReplaceAllLiteral(app, []byte(fmt.Sprintf("<Notes>%d</Notes>", p.types.countOf(contentTypeNotesSlide))))
	p.parts[appPropsPart] = app
}

// Slides returns the slide list in presentation order.
func (p *Package) Slides() []Slide {
	out := make([]Slide, len(p.slides))
	copy(out, p.slides)
	return out
}

// SlideXML returns the raw XML of a slide.
func (p *Package) SlideXML(s Slide) []byte {
	return p.parts[s.PartName]
}

// SetSlideXML replaces the raw XML of a slide.
func (p *Package) SetSlideXML(s Slide, body []byte) error {
	if p.indexOf(s) < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, s.PartName)
	}
	p.setPart(s.PartName, body)
	return nil
}

func (p *Package) indexOf(s Slide) int {
	for i, cur := range p.slides {
		if cur.PartName == s.PartName {
			return i
		}
	}
	return -1
}

// CloneSlide copies src, with its relationships, into a new slide placed
// directly before the slide before. The clone gets the next free slide id.
// A notes slide is duplicated so the clone owns its own notes; layouts, media
// and other targets stay shared.
func (p *Package) CloneSlide(src, before Slide) (Slide, error) {
	if p.indexOf(src) < 0 {
		return Slide{}, fmt.Errorf("%w: %s", ErrSlideNotFound, src.PartName)
	}
	at := p.indexOf(before)
	if at < 0 {
		return Slide{}, fmt.Errorf("%w: %s", ErrSlideNotFound, before.PartName)
	}

	part := fmt.Sprintf("ppt/slides/slide%d.xml", nextPartNumber(p.order, slidePartRegex))
	p.setPart(part, bytes.Clone(p.parts[src.PartName]))
	p.types.override(part, contentTypeSlide)

	rels, err := p.readRels(src.PartName)
	if err != nil {
		return Slide{}, err
	}
	clone := &relationships{Items: append([]relationship(nil), rels.Items...)}
	if i, ok := clone.firstOfType(relTypeNotesSlide); ok {
		notes, err := p.cloneNotes(resolveTarget(src.PartName, clone.Items[i].Target), part)
		if err != nil {
			return Slide{}, err
		}
		clone.Items[i].Target = relativeTarget(part, notes)
	}
	if len(clone.Items) > 0 {
		body, err := clone.marshal()
		if err != nil {
			return Slide{}, err
		}
		p.setPart(relsPath(part), body)
	}

	slide := Slide{
		ID:       p.maxSlideID() + 1,
		RelID:    p.rels.nextID(),
		PartName: part,
	}
	p.rels.Items = append(p.rels.Items, relationship{
		ID:     slide.RelID,
		Type:   relTypeSlide,
		Target: relativeTarget(presentationPart, part),
	})

	p.slides = append(p.slides, Slide{})
	copy(p.slides[at+1:], p.slides[at:])
	p.slides[at] = slide
	return slide, nil
}

// cloneNotes duplicates a notes slide and points its back-reference at slide.
func (p *Package) cloneNotes(src, slide string) (string, error) {
	body, ok := p.parts[src]
	if !ok {
		return "", fmt.Errorf("%w: notes part %s", ErrMalformedPart, src)
	}
	part := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", nextPartNumber(p.order, notesPartRegex))
	p.setPart(part, bytes.Clone(body))
	p.types.override(part, contentTypeNotesSlide)

	rels, err := p.readRels(src)
	if err != nil {
		return "", err
	}
	clone := &relationships{Items: append([]relationship(nil), rels.Items...)}
	for i, rel := range clone.Items {
		if rel.Type == relTypeSlide {
			clone.Items[i].Target = relativeTarget(part, slide)
		}
	}
	relsBody, err := clone.marshal()
	if err != nil {
		return "", err
	}
	p.setPart(relsPath(part), relsBody)
	return part, nil
}

// RemoveSlide drops a slide, its relationships and its notes slide.
func (p *Package) RemoveSlide(s Slide) error {
	at := p.indexOf(s)
	if at < 0 {
		return fmt.Errorf("%w: %s", ErrSlideNotFound, s.PartName)
	}
	s = p.slides[at]

	rels, err := p.readRels(s.PartName)
	if err != nil {
		return err
	}
	if i, ok := rels.firstOfType(relTypeNotesSlide); ok {
		notes := resolveTarget(s.PartName, rels.Items[i].Target)
		p.deletePart(notes)
		p.deletePart(relsPath(notes))
		p.types.removeOverride(notes)
	}

	p.deletePart(s.PartName)
	p.deletePart(relsPath(s.PartName))
	p.types.removeOverride(s.PartName)
	p.rels.remove(s.RelID)
	p.slides = append(p.slides[:at], p.slides[at+1:]...)
	return nil
}

func (p *Package) maxSlideID() int {
	highest := 0
	for _, s := range p.slides {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest
}

// nextPartNumber returns one past the highest number captured by re.
func nextPartNumber(names []string, re *regexp.Regexp) int {
	highest := 0
	for _, name := range names {
		if m := re.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest + 1
}
