// Package models defines the domain types for fsk.
package models

// SearchResult is a single hit produced by a keyword search. TitleMatch
// and Preview are mutually exclusive: a title hit short-circuits content
// inspection, so only content hits carry a preview line.
type SearchResult struct {
	Title      string `json:"title"`
	TitleMatch bool   `json:"title_match"`
	Preview    string `json:"preview,omitempty"`
}

// NoteDetail is the full representation of a note as returned by the
// note service.
type NoteDetail struct {
	Title    string   `json:"title"`
	Path     string   `json:"path"`
	Content  string   `json:"content"`
	Checksum string   `json:"checksum"`
	DocTitle string   `json:"doc_title,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// NoteEvent describes a change observed in the vault by the watcher.
// Kind is one of "created", "updated", "removed".
type NoteEvent struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
}
