// Package wordhunt provides a bounded, breadth-first web crawler that
// searches for a word starting from a seed URL. The crawl stops as soon as
// the word is found on a page or the page-visit budget is spent.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, colly/, sqlite/).
package wordhunt
