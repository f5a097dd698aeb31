// Package wikicorpus builds text corpora from Wikipedia category trees.
// It discovers the pages of a category recursively within configurable
// bounds, extracts section text with keyword filtering, and stores the
// result as a local corpus for downstream language modeling.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, mediawiki/, gemini/).
package wikicorpus
