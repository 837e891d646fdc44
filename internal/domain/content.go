package domain

import (
	"fmt"
	"strings"
)

// ContentTree is the caller-authored outline a presentation is built from.
// It is produced by an external content generator and never modified here.
type ContentTree struct {
	FirstSlide      FirstSlide      `json:"first_slide"`
	TableOfContents TableOfContents `json:"table_of_contents"`
	ContentSlides   []ContentSlide  `json:"content_slides"`
}

// FirstSlide holds the title slide text.
type FirstSlide struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Owner    string `json:"owner"`
}

// TableOfContents lists the topics covered by the deck, in order.
type TableOfContents struct {
	Topics []string `json:"topics"`
}

// ContentSlide is one body slide of the deck.
type ContentSlide struct {
	Heading          string        `json:"heading"`
	BulletPoints     []BulletPoint `json:"bullet_points"`
	ImageDescription string        `json:"image_description,omitempty"`
}

// HasImageDescription reports whether the slide carries an image description.
func (s ContentSlide) HasImageDescription() bool {
	return strings.TrimSpace(s.ImageDescription) != ""
}

// BulletPoint is a node of a slide's bullet outline. Children must sit at a
// strictly greater Level than their parent.
type BulletPoint struct {
	Content  string        `json:"content"`
	Level    int           `json:"level"`
	Children []BulletPoint `json:"children,omitempty"`
}

// Validate checks the structural shape of the tree: required text fields are
// present and bullet levels increase strictly from parent to child.
// Chemical or pedagogical correctness is not checked.
func (t ContentTree) Validate() error {
	if isBlank(t.FirstSlide.Title) {
		return NewValidationError("first_slide.title", "is required", ErrEmptyContent)
	}
	if isBlank(t.FirstSlide.Subtitle) {
		return NewValidationError("first_slide.subtitle", "is required", ErrEmptyContent)
	}
	if isBlank(t.FirstSlide.Owner) {
		return NewValidationError("first_slide.owner", "is required", ErrEmptyContent)
	}

	if len(t.TableOfContents.Topics) == 0 {
		return NewValidationError("table_of_contents.topics", "must not be empty", ErrEmptyContent)
	}
	for i, topic := range t.TableOfContents.Topics {
		if isBlank(topic) {
			return NewValidationError(
				fmt.Sprintf("table_of_contents.topics[%d]", i), "is required", ErrEmptyContent)
		}
	}

	for i, slide := range t.ContentSlides {
		field := fmt.Sprintf("content_slides[%d]", i)
		if isBlank(slide.Heading) {
			return NewValidationError(field+".heading", "is required", ErrEmptyContent)
		}
		if err := validateBullets(field+".bullet_points", slide.BulletPoints, 0); err != nil {
			return err
		}
	}

	return nil
}

// validateBullets walks the outline depth-first. parentLevel is 0 for the
// top of the tree so that any Level >= 1 is accepted there.
func validateBullets(field string, points []BulletPoint, parentLevel int) error {
	for i, p := range points {
		path := fmt.Sprintf("%s[%d]", field, i)
		if isBlank(p.Content) {
			return NewValidationError(path+".content", "is required", ErrEmptyContent)
		}
		if p.Level < 1 {
			return NewValidationError(path+".level", "must be at least 1", nil)
		}
		if p.Level <= parentLevel {
			return NewValidationError(
				path+".level",
				fmt.Sprintf("is %d but its parent is at level %d", p.Level, parentLevel),
				ErrLevelOrder,
			)
		}
		if err := validateBullets(path+".children", p.Children, p.Level); err != nil {
			return err
		}
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
