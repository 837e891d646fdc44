// Package domain contains the entities the document generators work on: the
// content tree authored for a presentation, exam questions with their options,
// and the validation and configuration errors shared by every layer.
package domain
