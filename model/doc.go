// Package model provides the intermediate representation shared by every stage
// of the observation pipeline.
//
// Page text enters as [PageText], is segmented into [Paragraph] values, and
// leaves as [Result] records inside a [Response]. Category headings detected
// along the way are described by [HeadingOccurrence].
//
// # Pages
//
// A [PageText] carries the raw text of one page together with its 1-indexed
// page number. Providers emit pages in ascending order and may skip pages
// that produced no text:
//
//	doc := model.NewDocument("report.pdf")
//	doc.AddPage(3, "ESPECIALIDAD E (Eléctrica)\nLa acometida no cumple.")
//
// # Paragraphs
//
// A [Paragraph] never spans two pages. After segmentation the orchestrator
// enriches it with a [Label], an optional category, the reference of the
// spreadsheet it was routed to, and whether it was appended to that
// spreadsheet.
//
// # Headings
//
// A [HeadingOccurrence] records a category heading detected on a page, with
// an optional qualifier:
//
//	model.HeadingOccurrence{Page: 3, Category: "ELECTRICA", Qualifier: "LADO AIRE"}
//
// # Results
//
// [Response] is the wire payload returned for one document run; each
// [Result] mirrors one enriched paragraph.
package model
