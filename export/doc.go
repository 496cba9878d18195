// Package export copies reconciled spreadsheets to durable storage.
//
// Each spreadsheet is stored as <KEY>_<YYYYMMDD_HHMMSS>.xlsx. When that name
// is taken, six hex characters from a random UUID are appended:
// <KEY>_<YYYYMMDD_HHMMSS>_<hex6>.xlsx. Existing files and objects are never
// overwritten.
//
// [Folder] copies into a local directory; [Bucket] uploads to Google Cloud
// Storage with a does-not-exist precondition.
package export
