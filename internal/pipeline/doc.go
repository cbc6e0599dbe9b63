// Package pipeline implements the Markdown-to-text conversion stages.
//
// This package handles the per-stage transformations:
//   - Preprocessing (front matter removal, line normalization, HTML comments)
//   - Rendering (ordered whole-document rewrite passes per construct)
//   - Table recognition and layout (simple, grid, none)
//   - Output sanitization (script/iframe regions, unsafe URI schemes)
//   - Postprocessing (blank-line collapsing, line whitespace trimming)
//   - Element analysis (construct presence detection on the original input)
//
// Orchestration is handled separately by the root md2text package, which
// sequences the stages and packages results with metadata. Every stage is a
// pure function of its input; nothing in this package holds state between
// calls, so one instance of each stage serves concurrent conversions.
package pipeline
