package rowid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNamespaceForVideo_Example(t *testing.T) {
	ns := NamespaceForVideo("ggLajT7aMMk")
	require.Equal(t, uuid.MustParse("f9c5bd35-52d5-58ad-8dd9-3316220c725d"), ns)
}

func TestCommentUUID_Example(t *testing.T) {
	id := CommentUUID("ggLajT7aMMk", "This is a great video!")
	require.Equal(t, uuid.MustParse("96a791fe-5527-5822-9844-a35df5c67d32"), id)

	id = CommentUUID("ggLajT7aMMk", "I learned a lot")
	require.Equal(t, uuid.MustParse("522e1963-bbc4-5fa0-8af8-3ba0a7286e3f"), id)
}

func TestCommentUUID_ScopedByVideo(t *testing.T) {
	a := CommentUUID("ggLajT7aMMk", "This is a great video!")
	b := CommentUUID("video456", "This is a great video!")
	require.NotEqual(t, a, b)
	require.Equal(t, uuid.MustParse("10330b97-24aa-5f47-9112-738b5a1a2bf1"), b)
}

func TestCommentUUID_TextUsedVerbatim(t *testing.T) {
	require.NotEqual(t, CommentUUID("v", "hi"), CommentUUID("v", "hi "))
	require.NotEqual(t, CommentUUID("v", "hi"), CommentUUID("v ", "hi"))
}
