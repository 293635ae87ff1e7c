package engine

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notebook holds notes, most recent first.
type Notebook struct {
	notes []Note
	newID func() string
}

func NewNotebook(notes []Note) *Notebook {
	return &Notebook{notes: append([]Note(nil), notes...), newID: uuid.NewString}
}

// NoteInput is what the editor hands back on save. An empty ID means a new note.
type NoteInput struct {
	ID    string
	Title string
	Body  string
	File  *NoteFile
}

// Save creates or replaces a note. created is true only on the first save of
// a note, which is what the XP award keys on. A note with neither title nor
// body is ignored.
func (b *Notebook) Save(in NoteInput, now time.Time) (note Note, created bool, ok bool) {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" && body == "" && in.File == nil {
		return Note{}, false, false
	}
	if title == "" {
		title = "Untitled"
	}

	if in.ID != "" {
		if i := b.index(in.ID); i >= 0 {
			n := &b.notes[i]
			n.Title = title
			n.Body = body
			if in.File != nil {
				n.File = in.File
			}
			return *n, false, true
		}
	}

	id := in.ID
	if id == "" {
		id = b.newID()
	}
	n := Note{ID: id, Title: title, Body: body, Created: now, File: in.File}
	b.notes = append([]Note{n}, b.notes...)
	return n, true, true
}

// AttachFile replaces the attachment of an existing note.
func (b *Notebook) AttachFile(id string, f NoteFile) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	file := f
	b.notes[i].File = &file
	return true
}

func (b *Notebook) Delete(id string) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.notes = append(b.notes[:i], b.notes[i+1:]...)
	return true
}

func (b *Notebook) Get(id string) (Note, bool) {
	i := b.index(id)
	if i < 0 {
		return Note{}, false
	}
	return b.notes[i], true
}

func (b *Notebook) Notes() []Note {
	return append([]Note(nil), b.notes...)
}

func (b *Notebook) Len() int { return len(b.notes) }

// Resolve maps a full id or an unambiguous prefix to a note id.
func (b *Notebook) Resolve(ref string) (string, bool) {
	ref = strings.TrimSpace(strings.ToLower(ref))
	if ref == "" {
		return "", false
	}
	match := ""
	for _, n := range b.notes {
		id := strings.ToLower(n.ID)
		if id == ref {
			return n.ID, true
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", false
			}
			match = n.ID
		}
	}
	return match, match != ""
}

func (b *Notebook) index(id string) int {
	for i := range b.notes {
		if b.notes[i].ID == id {
			return i
		}
	}
	return -1
}
