package handler

import "net/http"

// Routes groups the API handlers mounted by Register
type Routes struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Folder  *FolderHandler
	File    *FileHandler
}

// Register mounts every API route on mux
func (rt *Routes) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", HealthCheck)

	// Identity
	mux.HandleFunc("POST /api/register", rt.Auth.Register)
	mux.HandleFunc("POST /api/login", rt.Auth.Login)
	mux.HandleFunc("POST /api/logout", rt.Auth.Logout)
	mux.HandleFunc("GET /api/profile", rt.Profile.GetProfile)
	mux.HandleFunc("PUT /api/profile", rt.Profile.UpdateProfile)

	// Folders
	mux.HandleFunc("GET /api/folders", rt.Folder.ListFolders)
	mux.HandleFunc("POST /api/folders", rt.Folder.CreateFolder)
	mux.HandleFunc("GET /api/folders/tree", rt.Folder.GetTree) // more specific than {folder_id}
	mux.HandleFunc("GET /api/folders/{folder_id}", rt.Folder.GetFolder)
	mux.HandleFunc("PUT /api/folders/{folder_id}", rt.Folder.UpdateFolder)
	mux.HandleFunc("PATCH /api/folders/{folder_id}", rt.Folder.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{folder_id}", rt.Folder.DeleteFolder)

	// Files, always addressed through their folder
	mux.HandleFunc("GET /api/folders/{folder_id}/files", rt.File.ListFiles)
	mux.HandleFunc("POST /api/folders/{folder_id}/files", rt.File.UploadFile)
	mux.HandleFunc("GET /api/folders/{folder_id}/files/{file_id}", rt.File.GetFile)
	mux.HandleFunc("PUT /api/folders/{folder_id}/files/{file_id}", rt.File.UpdateFile)
	mux.HandleFunc("PATCH /api/folders/{folder_id}/files/{file_id}", rt.File.UpdateFile)
	mux.HandleFunc("DELETE /api/folders/{folder_id}/files/{file_id}", rt.File.DeleteFile)
	mux.HandleFunc("GET /api/folders/{folder_id}/files/{file_id}/file", rt.File.DownloadFile)
}
