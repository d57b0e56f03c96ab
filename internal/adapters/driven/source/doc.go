// Package source provides locator sources and archive name providers.
//
// Static and Lines read locators supplied by the user. HTMLPage extracts
// download anchors from a saved or fetched order page. Multi concatenates
// sources in order; deduplication happens later in the run.
package source
