package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fsModels "cloudstore/internal/domain/models/filesystem"
)

func TestEndToEnd_AliceAndBob(t *testing.T) {
	s := newTestServer(t)

	alice, aliceRoot := s.signUp("alice@example.com")
	bob, _ := s.signUp("bob@example.com")

	// exactly one root, named root, no parent
	folders := s.listFolders(alice)
	require.Len(t, folders, 1)
	assert.Equal(t, "root", folders[0].Name)
	assert.Nil(t, folders[0].ParentID)

	docs := s.mkdir(alice, aliceRoot, "docs")
	assert.Equal(t, folders[0].OwnerID, docs.OwnerID)

	// bob cannot see alice's folder
	w := s.do(http.MethodGet, "/api/folders/"+docs.ID, bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", problem(t, w)["detail"])

	// self-parent move is rejected, tree unchanged
	w = s.do(http.MethodPatch, "/api/folders/"+docs.ID, alice, map[string]string{"parent_id": docs.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	after := s.listFolders(alice)
	require.Len(t, after, 2)
	assert.Equal(t, aliceRoot, *after[1].ParentID)

	// upload derives size and type from content
	w = s.upload(alice, docs.ID, "a.txt", "", []byte("hi"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var file fsModels.File
	decode(t, w, &file)
	assert.Equal(t, int64(2), file.Size)
	assert.Equal(t, "text/plain", file.MimeType)
	assert.Equal(t, "a.txt", file.Name)
	assert.Equal(t, 1, s.blobs.Len())

	// delete cascades; the folder's files are gone with it
	w = s.do(http.MethodDelete, "/api/folders/"+docs.ID, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "/api/folders/"+docs.ID+"/files", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 0, s.blobs.Len())
}
