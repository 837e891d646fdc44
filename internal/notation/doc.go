// Package notation rewrites ASCII chemistry shorthand into Unicode
// scientific notation. Both the slide assembler and the exam exporter run
// user-facing text through Beautify before it is written to a document.
package notation
