// Command obsmatrix reconciles reviewer observations from a PDF report into
// per-category observation spreadsheets.
package main

func main() {
	Execute()
}
