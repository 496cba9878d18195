// Package xlsx stores observations in the reference spreadsheet of a
// category.
//
// A Matrix is an open workbook that implements ledger.Store over one column
// of one sheet, by default column G of "Matriz Obs" from row 13:
//
//	m, err := xlsx.Open("ELECTRICA_matriz.xlsx")
//	if err != nil {
//		return err
//	}
//	added, err := ledger.Reconcile(ctx, m, texts) // closes m
//
// Only that column is ever written. Other sheets, columns, styles and
// formulas are preserved as excelize round-trips them. Legacy .xls files
// cannot be opened.
package xlsx
