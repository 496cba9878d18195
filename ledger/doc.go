// Package ledger appends new observation texts to per-category reference
// stores without duplicating entries already recorded there.
//
// A Store exposes a single observation column that starts at a fixed row and
// holds one text per row. Reconcile reads that column, skips every text that
// is already present or repeated within the batch, and appends the rest
// below the last occupied row:
//
//	added, err := ledger.Reconcile(ctx, store, texts)
//	if err != nil {
//		// the category is not reconciled; other categories are unaffected
//	}
//	if added.Contains(text) {
//		// text was written by this call
//	}
//
// Reconcile is idempotent: a second call with the same texts against the
// same store adds nothing.
//
// # Preconditions
//
// The observation column is assumed to be gap-free below the start row. The
// insertion point is found by scanning upward from the last occupied row, so
// an empty cell in the middle of the run is never filled.
//
// # Concurrency
//
// A Store is used by one caller at a time. The package does not lock stores
// across processes; callers that share a store file must serialize access.
package ledger
