// Package poppler implements driven.DocumentEngine with the poppler
// command line tools.
//
// Open validates the document with pdfinfo. ExtractPages splits it with
// pdfseparate into a private scratch directory, one file per page, and
// reads each page's text with pdftotext or, in native mode, with the pure
// Go reader from github.com/ledongthuc/pdf. SavePage copies a page file to
// its destination through a temporary file and a rename. Page files are
// removed by ClosePage and the scratch directory by CloseDocument.
//
// Requirements:
//   - pdfinfo, pdfseparate and pdftotext (poppler-utils) on PATH, or in the
//     directory named by Options.ToolDir
package poppler
