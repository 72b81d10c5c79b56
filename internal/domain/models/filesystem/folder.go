package filesystem

import "time"

// RootFolderName is the name given to the folder provisioned for every user.
const RootFolderName = "root"

// Folder represents a node of a user's folder tree.
// ParentID is nil only for the user's root folder.
type Folder struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ParentID  *string   `json:"parent_id"`
	Name      string    `json:"name"`
	Position  int64     `json:"-"` // sibling order, assigned on create and move
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsRoot reports whether the folder is its owner's root.
func (f *Folder) IsRoot() bool {
	return f.ParentID == nil
}
