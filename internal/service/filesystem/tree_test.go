package filesystem

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudstore/internal/domain"
)

func TestGetTree(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice, root := f.newUser(t, "alice@example.com")
	bob, bobRoot := f.newUser(t, "bob@example.com")

	docs := f.mkdir(t, alice, root, "docs")
	work := f.mkdir(t, alice, docs.ID, "work")
	f.mkdir(t, alice, root, "photos")
	f.mkdir(t, bob, bobRoot, "bob-only")

	f.upload(t, alice, root, "top.txt", "t")
	f.upload(t, alice, work.ID, "plan.txt", "plan")

	tree, err := f.tree.GetTree(ctx, alice)
	require.NoError(t, err)

	assert.Equal(t, root, tree.ID)
	assert.Nil(t, tree.ParentID)
	require.Len(t, tree.Folders, 2)
	assert.Equal(t, "docs", tree.Folders[0].Name)
	assert.Equal(t, "photos", tree.Folders[1].Name)
	require.Len(t, tree.Files, 1)
	assert.Equal(t, "top.txt", tree.Files[0].Name)

	require.Len(t, tree.Folders[0].Folders, 1)
	workNode := tree.Folders[0].Folders[0]
	assert.Equal(t, work.ID, workNode.ID)
	require.Len(t, workNode.Files, 1)
	assert.Equal(t, "plan.txt", workNode.Files[0].Name)
	assert.Equal(t, int64(4), workNode.Files[0].Size)

	assert.Empty(t, tree.Folders[1].Folders)
	assert.Empty(t, tree.Folders[1].Files)
}

func TestGetTree_NoRoot(t *testing.T) {
	f := newFixture(t)

	_, err := f.tree.GetTree(context.Background(), "00000000-0000-0000-0000-000000000000")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
