// Package testutils provides testing utilities for the document generation
// service.
//
// This package contains helpers for:
// 1. Building in-memory presentation templates
// 2. Creating test content trees and exams
// 3. Setting up test servers and asserting API responses
// 4. Capturing structured log output
//
// # Templates
//
// Templates are assembled from plain slide descriptions, so tests never
// depend on a binary fixture:
//
//	// First slide, table of contents, two content templates, closing slide:
//	tpl := testutils.StandardTemplate(t, 2)
//
//	// Any slide shape:
//	tpl := testutils.BuildTemplate(t,
//	    testutils.TemplateSlide{Texts: []string{"{{Title}}"}},
//	    testutils.TemplateSlide{Texts: []string{"Closing"}, Notes: "bye"},
//	)
//
// # Test Content
//
//	tree := testutils.MustCreateContentTree(t,
//	    testutils.WithContentSlides(3),
//	)
//
//	exam := testutils.CreateTestExam(5)
//
// # Response Assertions
//
//	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "validation failed")
package testutils
