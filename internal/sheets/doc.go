// Package sheets moves class data in and out of Excel workbooks.
//
// ImportRoster is forgiving about layout because teachers export rosters
// from several school systems. Headers are matched by Arabic or English
// keyword after zero-width characters are stripped, and a repeated header
// row in the middle of the data is skipped. Exports write a single
// right-to-left sheet named after the class.
package sheets
