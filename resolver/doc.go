// Package resolver assigns paragraphs to the category heading that governs
// their page.
//
// A heading governs every page from its own up to, but not including, the
// page of the next heading. Paragraphs that precede the first heading resolve
// to Unknown.
//
// # Basic Usage
//
// Build an index once per document and query it per paragraph:
//
//	idx := resolver.NewIndex(occurrences)
//	category := idx.Resolve(paragraph.Page)
//
// # Ties
//
// When several headings share a page, the last one in document order wins
// for every paragraph on that page.
//
// # Convenience Functions
//
//   - Assign: resolve a single page without keeping the index
//   - ResolveExt: return the governing occurrence with its qualifier
package resolver
