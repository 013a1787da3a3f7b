package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showcase/backend/internal/content"
	"showcase/backend/internal/service"
)

func newBlogService(blobs *flakyBlobs) *service.BlogService {
	return service.NewBlogService(blobs, content.Default(), newFakeClock(), time.UTC)
}

func TestBlogService_ListPosts(t *testing.T) {
	svc := newBlogService(newFlakyBlobs())

	all, apiErr := svc.ListPosts("all")
	require.Nil(t, apiErr)
	assert.Len(t, all, 3)

	one, apiErr := svc.ListPosts("post-2")
	require.Nil(t, apiErr)
	require.Len(t, one, 1)
	assert.Equal(t, "post-2", one[0].ID)

	_, apiErr = svc.ListPosts("post-9")
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "post_not_found", apiErr.Code)
}

func TestBlogService_Search(t *testing.T) {
	svc := newBlogService(newFlakyBlobs())

	tests := []struct {
		name    string
		term    string
		ids     []string
		noMatch bool
	}{
		{name: "empty term shows everything", term: "  ", ids: []string{"post-1", "post-2", "post-3"}},
		{name: "title is case insensitive", term: "FLEXBOX", ids: []string{"post-2"}},
		{name: "body", term: "local storage", ids: []string{"post-3"}},
		{name: "tags", term: "javascript", ids: []string{"post-1", "post-3"}},
		{name: "no match", term: "kubernetes", ids: []string{}, noMatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Search(tt.term)
			ids := []string{}
			for _, post := range result.Posts {
				ids = append(ids, post.ID)
			}
			assert.Equal(t, tt.ids, ids)
			assert.Equal(t, tt.noMatch, result.NoMatch)
			if tt.noMatch {
				assert.Equal(t, service.NoMatchMessage, result.Message)
			} else {
				assert.Empty(t, result.Message)
			}
		})
	}
}

func TestBlogService_Comments(t *testing.T) {
	ctx := context.Background()
	blobs := newFlakyBlobs()
	svc := newBlogService(blobs)

	require.NoError(t, svc.InitAccount(ctx, "alice"))
	comments, apiErr := svc.Comments(ctx, "alice")
	require.Nil(t, apiErr)
	assert.Len(t, comments, 3)
	assert.Empty(t, comments["post-1"])

	comment, apiErr := svc.AddComment(ctx, "alice", "post-1", "  Ada ", " Great read ")
	require.Nil(t, apiErr)
	assert.Equal(t, "Ada", comment.Author)
	assert.Equal(t, "Great read", comment.Text)
	assert.Equal(t, "October 18, 2026", comment.Date)
	assert.NotEmpty(t, comment.ID)

	_, apiErr = svc.AddComment(ctx, "alice", "post-1", "Ada", "Second")
	require.Nil(t, apiErr)
	_, apiErr = svc.AddComment(ctx, "alice", "post-7", "Ada", "Orphan")
	require.Nil(t, apiErr)

	comments, apiErr = svc.Comments(ctx, "alice")
	require.Nil(t, apiErr)
	require.Len(t, comments["post-1"], 2)
	assert.Equal(t, "Great read", comments["post-1"][0].Text)
	assert.Equal(t, "Second", comments["post-1"][1].Text)
	assert.Len(t, comments["post-7"], 1)

	bob, apiErr := svc.Comments(ctx, "bob")
	require.Nil(t, apiErr)
	assert.Empty(t, bob["post-1"])

	_, apiErr = svc.AddComment(ctx, "alice", "post-1", "", "text")
	require.NotNil(t, apiErr)
	assert.Equal(t, "empty_field", apiErr.Code)

	blobs.setDown(true)
	_, apiErr = svc.AddComment(ctx, "alice", "post-1", "Ada", "Lost")
	require.NotNil(t, apiErr)
	assert.Equal(t, "unavailable_storage", apiErr.Code)
}

func TestBlogService_InitAccountKeepsExisting(t *testing.T) {
	ctx := context.Background()
	svc := newBlogService(newFlakyBlobs())

	_, apiErr := svc.AddComment(ctx, "alice", "post-2", "Ada", "Kept")
	require.Nil(t, apiErr)
	require.NoError(t, svc.InitAccount(ctx, "alice"))

	comments, apiErr := svc.Comments(ctx, "alice")
	require.Nil(t, apiErr)
	assert.Len(t, comments["post-2"], 1)
}

func TestBlogService_ShareLinks(t *testing.T) {
	svc := newBlogService(newFlakyBlobs())

	links, apiErr := svc.ShareLinks("post-2", "https://example.com/blog?post=2")
	require.Nil(t, apiErr)
	assert.Equal(t,
		"https://twitter.com/intent/tweet?text=Responsive%20Layouts%20with%20Flexbox%20and%20Grid&url=https%3A%2F%2Fexample.com%2Fblog%3Fpost%3D2",
		links[service.PlatformTwitter])
	assert.Equal(t,
		"https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fexample.com%2Fblog%3Fpost%3D2",
		links[service.PlatformFacebook])
	assert.Equal(t,
		"https://www.linkedin.com/sharing/share-offsite/?url=https%3A%2F%2Fexample.com%2Fblog%3Fpost%3D2",
		links[service.PlatformLinkedIn])

	assert.Empty(t, service.ShareURL("myspace", "title", "https://example.com"))

	_, apiErr = svc.ShareLinks("post-9", "https://example.com")
	require.NotNil(t, apiErr)
	assert.Equal(t, "post_not_found", apiErr.Code)

	_, apiErr = svc.ShareLinks("post-1", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "empty_field", apiErr.Code)
}
