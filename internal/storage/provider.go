// Package storage implements the note vault: a plain directory tree with
// one .md file per note. Titles are slash-separated relative paths without
// the .md extension ("linux/kernel" maps to <root>/linux/kernel.md).
package storage

import "github.com/starford/fsk/internal/models"

// Vault is the interface for note-tree operations. All titles and folder
// arguments are relative to the vault root.
//
// Traversal is best-effort: List and Search continue past unreadable
// entries instead of aborting, and report skips at debug level only.
type Vault interface {
	// Resolve returns the absolute file path for a title, or the vault
	// root when the title is empty.
	Resolve(title string) (string, error)
	// Read returns the raw bytes of the note with the given title.
	Read(title string) ([]byte, error)
	// Write atomically writes content, creating parent directories.
	Write(title string, content []byte) error
	// List returns the sorted titles of every note under folder
	// (the whole vault when folder is empty). A missing folder yields
	// an empty result, not an error.
	List(folder string) ([]string, error)
	// Search returns keyword hits in directory-walk order. The keyword
	// is matched case-insensitively against the title first; content is
	// only read when the title does not match.
	Search(keyword string) ([]models.SearchResult, error)
	// Remove deletes the note with the given title and prunes any parent
	// directories left empty, or deletes the folder of that name with
	// its whole subtree when no such note exists.
	Remove(title string) error
	// Move renames a note, creating destination parent directories.
	Move(oldTitle, newTitle string) error
	// Export copies folder (the whole vault when empty) to dest,
	// overwriting existing destination files.
	Export(folder, dest string) error
	// Import copies the tree at src into the vault root.
	Import(src string) error
}
