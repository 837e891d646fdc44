package testutils

import (
	"archive/zip"
	"bytes"
	"fmt"
	"html"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TemplateSlide describes one slide of a generated template.
type TemplateSlide struct {
	// Texts become one text box each, in order.
	Texts []string
	// Notes, when set, adds a notes slide with this text.
	Notes string
}

// SectionListExtURI identifies the PowerPoint section list extension that
// BuildTemplate writes into presentation.xml.
const SectionListExtURI = "{521415D9-36F7-43E2-AB2F-B90AF26B5E84}"

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	relBase  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
	ctPrefix = "application/vnd.openxmlformats-officedocument.presentationml."
)

// StandardTemplate builds a template with a title slide, a table of
// contents, n content templates and a closing slide. Content templates carry
// notes naming them ("template 1", "template 2", ...).
func StandardTemplate(t testing.TB, n int) []byte {
	t.Helper()

	slides := []TemplateSlide{
		{Texts: []string{"{{Title}}", "{{Subtitle}}", "{{Owner}}"}},
		{Texts: []string{"Mục lục", "{{Topics}}"}},
	}
	for i := 1; i <= n; i++ {
		slides = append(slides, TemplateSlide{
			Texts: []string{"{{Heading}}", "{{Bullets}}", "{{ImageDescription}}", fmt.Sprintf("layout %d", i)},
			Notes: fmt.Sprintf("template %d", i),
		})
	}
	slides = append(slides, TemplateSlide{Texts: []string{"Cảm ơn"}})
	return BuildTemplate(t, slides...)
}

// BuildTemplate writes a minimal but well-formed .pptx package.
func BuildTemplate(t testing.TB, slides ...TemplateSlide) []byte {
	t.Helper()

	parts := map[string]string{}
	var order []string
	add := func(name, body string) {
		order = append(order, name)
		parts[name] = body
	}

	var (
		overrides  strings.Builder
		presRels   strings.Builder
		sldIDs     strings.Builder
		sectionIDs strings.Builder
		notesCount int
	)
	overrides.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="` + ctPrefix + `presentation.main+xml"/>`)
	overrides.WriteString(`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)
	overrides.WriteString(`<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="` + ctPrefix + `slideLayout+xml"/>`)
	presRels.WriteString(`<Relationship Id="rId1" Type="` + relBase + `slideMaster" Target="slideMasters/slideMaster1.xml"/>`)

	for i, s := range slides {
		n := i + 1
		slidePart := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		add(slidePart, slideXML(s.Texts))
		overrides.WriteString(fmt.Sprintf(`<Override PartName="/%s" ContentType="%sslide+xml"/>`, slidePart, ctPrefix))

		slideRels := `<Relationship Id="rId1" Type="` + relBase + `slideLayout" Target="../slideLayouts/slideLayout1.xml"/>`
		if s.Notes != "" {
			notesCount++
			notesPart := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", notesCount)
			add(notesPart, notesXML(s.Notes))
			add(fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", notesCount), relsXML(
				fmt.Sprintf(`<Relationship Id="rId1" Type="%sslide" Target="../slides/slide%d.xml"/>`, relBase, n)))
			overrides.WriteString(fmt.Sprintf(`<Override PartName="/%s" ContentType="%snotesSlide+xml"/>`, notesPart, ctPrefix))
			slideRels += fmt.Sprintf(`<Relationship Id="rId2" Type="%snotesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, relBase, notesCount)
		}
		add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), relsXML(slideRels))

		presRels.WriteString(fmt.Sprintf(`<Relationship Id="rId%d" Type="%sslide" Target="slides/slide%d.xml"/>`, n+1, relBase, n))
		sldIDs.WriteString(fmt.Sprintf(`<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n+1))
		sectionIDs.WriteString(fmt.Sprintf(`<p14:sldId id="%d"/>`, 255+n))
	}

	add("[Content_Types].xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`+
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`+
		`<Default Extension="xml" ContentType="application/xml"/>`+
		overrides.String()+`</Types>`)
	add("_rels/.rels", relsXML(
		`<Relationship Id="rId1" Type="`+relBase+`officeDocument" Target="ppt/presentation.xml"/>`+
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>`))
	add("docProps/app.xml", fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">`+
		`<Application>Microsoft Office PowerPoint</Application><Slides>%d</Slides><Notes>%d</Notes></Properties>`,
		len(slides), notesCount))
	add("ppt/presentation.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<p:presentation xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`">`+
		`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>`+
		`<p:sldIdLst>`+sldIDs.String()+`</p:sldIdLst>`+
		`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>`+
		`<p:extLst><p:ext uri="`+SectionListExtURI+`">`+
		`<p14:sectionLst xmlns:p14="http://schemas.microsoft.com/office/powerpoint/2010/main">`+
		`<p14:section name="Default" id="{00000000-0000-0000-0000-000000000001}"><p14:sldIdLst>`+
		sectionIDs.String()+`</p14:sldIdLst></p14:section></p14:sectionLst></p:ext></p:extLst>`+
		`</p:presentation>`)
	add("ppt/_rels/presentation.xml.rels", relsXML(presRels.String()))
	add("ppt/slideLayouts/slideLayout1.xml", `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+
		`<p:sldLayout xmlns:a="`+nsA+`" xmlns:r="`+nsR+`" xmlns:p="`+nsP+`"><p:cSld><p:spTree/></p:cSld></p:sldLayout>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err, "Failed to create template part %s", name)
		_, err = w.Write([]byte(parts[name]))
		require.NoError(t, err, "Failed to write template part %s", name)
	}
	require.NoError(t, zw.Close(), "Failed to close template archive")
	return buf.Bytes()
}

func slideXML(texts []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree>`)
	for i, text := range texts {
		fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="Text %d"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>`, i+2, i+1)
		b.WriteString(`<p:spPr/><p:txBody><a:bodyPr/><a:lstStyle/>`)
		b.WriteString(`<a:p><a:r><a:rPr lang="vi-VN" dirty="0"/><a:t>` + html.EscapeString(text) + `</a:t></a:r></a:p>`)
		b.WriteString(`</p:txBody></p:sp>`)
	}
	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func notesXML(text string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:notes xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `"><p:cSld><p:spTree>` +
		`<p:sp><p:txBody><a:bodyPr/><a:p><a:r><a:t>` + html.EscapeString(text) + `</a:t></a:r></a:p></p:txBody></p:sp>` +
		`</p:spTree></p:cSld></p:notes>`
}

func relsXML(items string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + items + `</Relationships>`
}
