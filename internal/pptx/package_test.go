package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/scry-docgen/internal/testutils"
)

func openStandard(t *testing.T, contentTemplates int) *Package {
	t.Helper()
	pkg, err := Open(testutils.StandardTemplate(t, contentTemplates))
	require.NoError(t, err)
	return pkg
}

func slideTexts(t *testing.T, pkg *Package) [][]string {
	t.Helper()
	var out [][]string
	for _, s := range pkg.Slides() {
		text, err := pkg.SlideText(s)
		require.NoError(t, err)
		out = append(out, text)
	}
	return out
}

func TestOpen_ParsesSlideList(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 2)
	slides := pkg.Slides()
	require.Len(t, slides, 5)

	for i, s := range slides {
		assert.Equal(t, 256+i, s.ID)
		assert.Equal(t, fmt.Sprintf("ppt/slides/slide%d.xml", i+1), s.PartName)
	}

	text, err := pkg.SlideText(slides[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"{{Title}}", "{{Subtitle}}", "{{Owner}}"}, text)
}

func TestOpen_Rejects(t *testing.T) {
	t.Parallel()

	t.Run("not a zip", func(t *testing.T) {
		_, err := Open([]byte("definitely not a zip"))
		assert.True(t, errors.Is(err, ErrNotPackage))
	})

	t.Run("zip without presentation", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		w, err := zw.Create("word/document.xml")
		require.NoError(t, err)
		_, err = w.Write([]byte("<w:document/>"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		_, err = Open(buf.Bytes())
		assert.True(t, errors.Is(err, ErrNotPresentation))
	})
}

func TestRoundTrip_PreservesSlides(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 1)
	out, err := pkg.Bytes()
	require.NoError(t, err)

	reopened, err := Open(out)
	require.NoError(t, err)
	assert.Equal(t, slideTexts(t, pkg), slideTexts(t, reopened))
	assert.ElementsMatch(t, pkg.PartNames(), reopened.PartNames())
	assert.Equal(t, contentTypesPart, reopened.PartNames()[0])
}

func TestCloneSlide(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 2)
	slides := pkg.Slides()
	src, closing := slides[2], slides[4]

	clone, err := pkg.CloneSlide(src, closing)
	require.NoError(t, err)

	assert.Equal(t, 261, clone.ID, "clone id should follow the highest id")
	assert.Equal(t, "ppt/slides/slide6.xml", clone.PartName)
	assert.Equal(t, "rId7", clone.RelID)

	after := pkg.Slides()
	require.Len(t, after, 6)
	assert.Equal(t, clone.PartName, after[4].PartName, "clone sits right before the closing slide")
	assert.Equal(t, closing.PartName, after[5].PartName)
	assert.Equal(t, pkg.SlideXML(src), pkg.SlideXML(clone))

	// The clone owns a fresh notes slide pointing back at it.
	rels, err := pkg.readRels(clone.PartName)
	require.NoError(t, err)
	i, ok := rels.firstOfType(relTypeNotesSlide)
	require.True(t, ok)
	notesPart := resolveTarget(clone.PartName, rels.Items[i].Target)
	assert.Equal(t, "ppt/notesSlides/notesSlide3.xml", notesPart)

	notesRels, err := pkg.readRels(notesPart)
	require.NoError(t, err)
	j, ok := notesRels.firstOfType(relTypeSlide)
	require.True(t, ok)
	assert.Equal(t, clone.PartName, resolveTarget(notesPart, notesRels.Items[j].Target))

	notesText, err := paragraphText(pkg.parts[notesPart])
	require.NoError(t, err)
	assert.Equal(t, []string{"template 1"}, notesText)

	// Layout relationship is shared, not copied.
	k, ok := rels.firstOfType("http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout")
	require.True(t, ok)
	assert.Equal(t, "ppt/slideLayouts/slideLayout1.xml", resolveTarget(clone.PartName, rels.Items[k].Target))
}

func TestCloneSlide_IDsIncreasePerInsertion(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 1)
	slides := pkg.Slides()
	closing := slides[len(slides)-1]

	var ids []int
	for i := 0; i < 3; i++ {
		clone, err := pkg.CloneSlide(slides[2], closing)
		require.NoError(t, err)
		ids = append(ids, clone.ID)
	}
	assert.Equal(t, []int{260, 261, 262}, ids)
}

func TestCloneSlide_UnknownSlide(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 1)
	slides := pkg.Slides()

	_, err := pkg.CloneSlide(Slide{PartName: "ppt/slides/slide99.xml"}, slides[0])
	assert.True(t, errors.Is(err, ErrSlideNotFound))

	_, err = pkg.CloneSlide(slides[0], Slide{PartName: "ppt/slides/slide99.xml"})
	assert.True(t, errors.Is(err, ErrSlideNotFound))
}

func TestRemoveSlide(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 2)
	slides := pkg.Slides()
	target := slides[2]

	require.NoError(t, pkg.RemoveSlide(target))

	after := pkg.Slides()
	require.Len(t, after, 4)
	for _, s := range after {
		assert.NotEqual(t, target.PartName, s.PartName)
	}

	for _, name := range []string{
		target.PartName,
		relsPath(target.PartName),
		"ppt/notesSlides/notesSlide1.xml",
		"ppt/notesSlides/_rels/notesSlide1.xml.rels",
	} {
		_, ok := pkg.Part(name)
		assert.False(t, ok, "part %s should be gone", name)
	}
	_, ok := pkg.rels.byID(target.RelID)
	assert.False(t, ok)

	assert.True(t, errors.Is(pkg.RemoveSlide(target), ErrSlideNotFound))
}

func TestBytes_KeepsPackageConsistent(t *testing.T) {
	t.Parallel()

	pkg := openStandard(t, 2)
	slides := pkg.Slides()
	closing := slides[4]

	for i := 0; i < 3; i++ {
		_, err := pkg.CloneSlide(slides[2+i%2], closing)
		require.NoError(t, err)
	}
	require.NoError(t, pkg.RemoveSlide(slides[2]))
	require.NoError(t, pkg.RemoveSlide(slides[3]))

	out, err := pkg.Bytes()
	require.NoError(t, err)

	reopened, err := Open(out)
	require.NoError(t, err)
	final := reopened.Slides()
	require.Len(t, final, 6)

	types, _ := reopened.Part(contentTypesPart)
	for _, s := range final {
		_, ok := reopened.Part(s.PartName)
		assert.True(t, ok, "slide part %s should exist", s.PartName)
		assert.Contains(t, string(types), `PartName="/`+s.PartName+`"`)
	}
	assert.NotContains(t, string(types), `/ppt/slides/slide3.xml"`)

	app, _ := reopened.Part(appPropsPart)
	assert.Contains(t, string(app), "<Slides>6</Slides>")
	assert.Contains(t, string(app), "<Notes>3</Notes>")

	pres, _ := reopened.Part(presentationPart)
	assert.False(t, strings.Contains(string(pres), testutils.SectionListExtURI), "stale section list should be dropped")
	assert.Contains(t, string(pres), "<p:sldMasterIdLst>")
}

func TestRelativeTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, part, expected string
	}{
		{"ppt/presentation.xml", "ppt/slides/slide3.xml", "slides/slide3.xml"},
		{"ppt/slides/slide3.xml", "ppt/notesSlides/notesSlide2.xml", "../notesSlides/notesSlide2.xml"},
		{"ppt/notesSlides/notesSlide2.xml", "ppt/slides/slide3.xml", "../slides/slide3.xml"},
	}
	for _, tc := range tests {
		got := relativeTarget(tc.source, tc.part)
		assert.Equal(t, tc.expected, got)
		assert.Equal(t, tc.part, resolveTarget(tc.source, got))
	}
}
