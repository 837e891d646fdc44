package presentation

import "errors"

// MinSlots is the smallest template that can be assembled: a first slide, a
// table of contents, one content template and a closing slide.
const MinSlots = 4

// ErrTemplateShape is wrapped by the configuration error returned for
// templates with fewer than MinSlots slides.
var ErrTemplateShape = errors.New("template must hold a first slide, a table of contents, content templates and a closing slide")
