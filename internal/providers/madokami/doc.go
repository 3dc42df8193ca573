// Package madokami implements a providers.Source for the Madokami archive.
// Series are directory listings of archive files, so chapter numbering is
// recovered from filenames and pages are served through the site reader.
package madokami
