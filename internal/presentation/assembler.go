// Package presentation builds slide decks from a template package and a
// content tree.
package presentation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-docgen/internal/bullet"
	"github.com/phrazzld/scry-docgen/internal/domain"
	"github.com/phrazzld/scry-docgen/internal/notation"
	"github.com/phrazzld/scry-docgen/internal/pptx"
)

// Assembler fills a template deck. It holds no per-call state, so one
// Assembler can serve concurrent requests.
type Assembler struct {
	logger    *slog.Logger
	selection Selection
	intN      func(n int) int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithSelection sets the content template selection strategy.
func WithSelection(s Selection) Option {
	return func(a *Assembler) {
		a.selection = s
	}
}

// WithRandomSource replaces the random index source used by SelectionRandom.
// intN must return a value in [0, n) and be safe for concurrent use.
func WithRandomSource(intN func(n int) int) Option {
	return func(a *Assembler) {
		a.intN = intN
	}
}

// NewAssembler creates an Assembler. A nil logger falls back to slog.Default.
func NewAssembler(logger *slog.Logger, opts ...Option) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Assembler{
		logger:    logger.With("component", "presentation_assembler"),
		selection: SelectionRandom,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble renders tree into a copy of the template package and returns the
// serialized deck.
//
// The template's first slide receives the title fields, the second the table
// of contents and the last one is kept as the closing slide. Every slide in
// between is a content template: each content slide of the tree is a filled
// clone of one of them, inserted before the closing slide, and the templates
// themselves are removed at the end. No bytes are returned on failure.
func (a *Assembler) Assemble(ctx context.Context, tree domain.ContentTree, template []byte) ([]byte, error) {
	// 1. Open the template and check its shape before touching the content
	pkg, err := pptx.Open(template)
	if err != nil {
		return nil, domain.NewConfigurationError("template package is unreadable", err)
	}
	slots := pkg.Slides()
	if len(slots) < MinSlots {
		return nil, domain.NewConfigurationError(
			fmt.Sprintf("template has %d slides, need at least %d", len(slots), MinSlots),
			ErrTemplateShape,
		)
	}

	// 2. Validate the content tree
	if err := tree.Validate(); err != nil {
		return nil, err
	}

	first, toc, closing := slots[0], slots[1], slots[len(slots)-1]
	templates := slots[2 : len(slots)-1]

	// 3. Fixed slides
	if err := a.fill(pkg, first, map[string]string{
		TokenTitle:    notation.Beautify(tree.FirstSlide.Title),
		TokenSubtitle: notation.Beautify(tree.FirstSlide.Subtitle),
		TokenOwner:    notation.Beautify(tree.FirstSlide.Owner),
	}); err != nil {
		return nil, err
	}

	topics := make([]string, len(tree.TableOfContents.Topics))
	for i, topic := range tree.TableOfContents.Topics {
		topics[i] = notation.Beautify(topic)
	}
	if err := a.fill(pkg, toc, map[string]string{TokenTopics: bullet.List(topics)}); err != nil {
		return nil, err
	}

	// 4. One clone per content slide, in order, before the closing slide
	pick := a.newPicker()
	for i, content := range tree.ContentSlides {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		source := templates[pick(len(templates))]
		clone, err := pkg.CloneSlide(source, closing)
		if err != nil {
			return nil, fmt.Errorf("failed to clone template for slide %d: %w", i, err)
		}

		values := map[string]string{
			TokenHeading: notation.Beautify(content.Heading),
			TokenBullets: notation.Beautify(bullet.Render(content.BulletPoints)),
		}
		if content.HasImageDescription() {
			values[TokenImageDescription] = notation.Beautify(content.ImageDescription)
		}
		if err := a.fill(pkg, clone, values); err != nil {
			return nil, err
		}

		a.logger.Debug("content slide placed",
			"index", i,
			"template", source.PartName,
			"slide_id", clone.ID)
	}

	// 5. Templates were clone sources only
	for _, tpl := range templates {
		if err := pkg.RemoveSlide(tpl); err != nil {
			return nil, fmt.Errorf("failed to remove content template %s: %w", tpl.PartName, err)
		}
	}

	// 6. Serialize
	out, err := pkg.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize presentation: %w", err)
	}

	a.logger.Info("presentation assembled",
		"content_slides", len(tree.ContentSlides),
		"content_templates", len(templates),
		"total_slides", len(pkg.Slides()),
		"bytes", len(out))
	return out, nil
}

func (a *Assembler) fill(pkg *pptx.Package, slide pptx.Slide, values map[string]string) error {
	if err := pkg.SetSlideXML(slide, Fill(pkg.SlideXML(slide), values)); err != nil {
		return fmt.Errorf("failed to fill slide %s: %w", slide.PartName, err)
	}
	return nil
}
