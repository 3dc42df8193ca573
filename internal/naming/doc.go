// Package naming extracts chapter and volume numbers from archive
// filenames as they appear in Madokami directory listings. It applies an
// ordered set of heuristics plus an exclusion list for series whose titles
// contain digits of their own.
package naming
