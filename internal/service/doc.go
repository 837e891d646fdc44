// Package service contains the document generation use cases. It sits
// between the delivery mechanism (the HTTP API) and the generators in
// internal/presentation and internal/exam.
//
// Key responsibilities:
//
// 1. Template resolution:
//   - Requests may carry their own template package
//   - Otherwise the default template loaded at startup is used
//
// 2. Limits:
//   - Content slide and question counts are bounded before any rendering starts
//
// 3. Output naming:
//   - Every generated document gets a fresh id and a download filename
//
// 4. Bundles:
//   - The exam document and its answer-key spreadsheet are rendered
//     concurrently and packed into a single zip archive
//
// Generators are injected through small interfaces so the service can be
// tested without rendering real documents.
package service
