// Package text provides the string normalization used across the pipeline.
//
// # Heading Normalization
//
// [NormalizeHeading] maps the free-form text that follows a category keyword
// to a canonical category name and an optional qualifier:
//
//	h := text.NormalizeHeading("E (Eléctrica - Lado Aire)")
//	// h.Category == "ELECTRICA", h.Qualifier == "LADO AIRE"
//
// The function is total: it never fails and reports unusable input through
// [Heading.Valid] returning false.
//
// # Abbreviations
//
// Short codes used by document authors ("E", "S", "B", "BIM", "FADS") are
// rewritten through an ordered [AbbreviationTable]. Rules are evaluated in
// order against the leading token of the heading and the first match wins.
//
// # Classifier Cleaning
//
// [Cleaner] prepares paragraph text for a classifier: it lowercases, removes
// HTML markup and URLs, folds diacritics and keeps only ASCII letters, digits
// and single spaces.
//
// # Helpers
//
//   - [FoldAccents] removes combining marks after canonical decomposition
//   - [CollapseSpace] trims and collapses whitespace runs to one space
//   - [Canonical] combines both with uppercasing
package text
