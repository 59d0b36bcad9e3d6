// Package pkgcsv reads csv documents as a header plus a lazy sequence of rows.
//
// The uploader reads its source file through it and the receiver reads
// webhook bodies through it, so both sides agree on what a row is.
package pkgcsv
