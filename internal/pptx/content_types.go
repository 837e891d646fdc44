package pptx

import (
	"encoding/xml"
	"fmt"
)

const (
	contentTypeSlide      = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	contentTypeNotesSlide = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
)

type contentTypes struct {
	XMLName   xml.Name          `xml:"http://schemas.openxmlformats.org/package/2006/content-types Types"`
	Defaults  []contentDefault  `xml:"Default"`
	Overrides []contentOverride `xml:"Override"`
}

type contentDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type contentOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func parseContentTypes(body []byte) (*contentTypes, error) {
	var ct contentTypes
	if err := xml.Unmarshal(body, &ct); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPart, contentTypesPart, err)
	}
	return &ct, nil
}

func (ct *contentTypes) marshal() ([]byte, error) {
	body, err := xml.Marshal(ct)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content types: %w", err)
	}
	return append([]byte(xmlDecl), body...), nil
}

// override registers an explicit content type for a part.
func (ct *contentTypes) override(part, contentType string) {
	name := "/" + part
	for i, o := range ct.Overrides {
		if o.PartName == name {
			ct.Overrides[i].ContentType = contentType
			return
		}
	}
	ct.Overrides = append(ct.Overrides, contentOverride{PartName: name, ContentType: contentType})
}

func (ct *contentTypes) removeOverride(part string) {
	name := "/" + part
	for i, o := range ct.Overrides {
		if o.PartName == name {
			ct.Overrides = append(ct.Overrides[:i], ct.Overrides[i+1:]...)
			return
		}
	}
}

func (ct *contentTypes) countOf(contentType string) int {
	n := 0
	for _, o := range ct.Overrides {
		if o.ContentType == contentType {
			n++
		}
	}
	return n
}
