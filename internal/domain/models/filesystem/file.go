package filesystem

import "time"

// File is the metadata of an uploaded blob anchored in a folder.
// Size and MimeType are derived from the content at upload time.
type File struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	FolderID     string    `json:"folder_id"`
	Name         string    `json:"name"`
	OriginalName string    `json:"original_name"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mime_type"`
	StorageKey   string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
