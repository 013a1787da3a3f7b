package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"showcase/backend/internal/content"
	"showcase/backend/internal/countdown"
	apperrors "showcase/backend/internal/errors"
	"showcase/backend/internal/logger"
	"showcase/backend/internal/model"
	"showcase/backend/internal/repository"
)

const (
	FilterAll      = "all"
	NoMatchMessage = "No blog posts found matching your search."
)

const (
	PlatformTwitter  = "twitter"
	PlatformFacebook = "facebook"
	PlatformLinkedIn = "linkedin"
)

type BlogService struct {
	blobs   repository.BlobRepository
	catalog *content.Catalog
	clock   countdown.Clock
	loc     *time.Location

	mu sync.Mutex
}

type SearchResult struct {
	Term    string       `json:"term"`
	Posts   []model.Post `json:"posts"`
	NoMatch bool         `json:"noMatch"`
	Message string       `json:"message,omitempty"`
}

func NewBlogService(blobs repository.BlobRepository, catalog *content.Catalog, clock countdown.Clock, loc *time.Location) *BlogService {
	if catalog == nil {
		catalog = content.Default()
	}
	if clock == nil {
		clock = countdown.RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &BlogService{blobs: blobs, catalog: catalog, clock: clock, loc: loc}
}

// ListPosts returns the whole catalog for "all" or an empty filter, otherwise
// the single post named by filter.
func (s *BlogService) ListPosts(filter string) ([]model.Post, *apperrors.APIError) {
	filter = strings.TrimSpace(filter)
	if filter == "" || filter == FilterAll {
		return s.catalog.Posts, nil
	}
	post, ok := s.catalog.Get(filter)
	if !ok {
		return nil, apperrors.NotFound("post_not_found", "post not found")
	}
	return []model.Post{post}, nil
}

// Search matches term case-insensitively against title, body and tags.
func (s *BlogService) Search(term string) SearchResult {
	term = strings.ToLower(strings.TrimSpace(term))
	result := SearchResult{Term: term, Posts: []model.Post{}}
	if term == "" {
		result.Posts = append(result.Posts, s.catalog.Posts...)
		return result
	}

	for _, post := range s.catalog.Posts {
		if strings.Contains(strings.ToLower(post.Title), term) ||
			strings.Contains(strings.ToLower(post.Body), term) ||
			strings.Contains(strings.ToLower(strings.Join(post.Tags, " ")), term) {
			result.Posts = append(result.Posts, post)
		}
	}
	if len(result.Posts) == 0 {
		result.NoMatch = true
		result.Message = NoMatchMessage
	}
	return result
}

// InitAccount seeds an empty comment list for every catalog post.
func (s *BlogService) InitAccount(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments := make(map[string][]model.Comment)
	found, err := loadJSON(ctx, s.blobs, userID, model.KeyBlogComments, &comments)
	if err != nil {
		return err
	}
	if found {
		return nil
	}
	return saveJSON(ctx, s.blobs, userID, model.KeyBlogComments, s.initialComments())
}

func (s *BlogService) Comments(ctx context.Context, ownerID string) (map[string][]model.Comment, *apperrors.APIError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.loadComments(ctx, ownerID)
	if err != nil {
		return nil, blobError("blog: load comments", ownerID, err)
	}
	return comments, nil
}

// AddComment appends to the post's list. Posts missing from the catalog still
// get a list of their own.
func (s *BlogService) AddComment(ctx context.Context, ownerID, postID, author, text string) (*model.Comment, *apperrors.APIError) {
	postID = strings.TrimSpace(postID)
	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if postID == "" || author == "" || text == "" {
		return nil, apperrors.BadRequest("empty_field", "Please fill in both name and message fields!")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	comments, err := s.loadComments(ctx, ownerID)
	if err != nil {
		return nil, blobError("blog: load comments", ownerID, err)
	}

	comment := model.Comment{
		ID:     uuid.NewString(),
		Author: author,
		Text:   text,
		Date:   s.clock.Now().In(s.loc).Format(model.CommentDateLayout),
	}
	comments[postID] = append(comments[postID], comment)

	if err := saveJSON(ctx, s.blobs, ownerID, model.KeyBlogComments, comments); err != nil {
		return nil, blobError("blog: save comments", ownerID, err)
	}
	return &comment, nil
}

// ShareLinks builds the share intent URLs of a post for pageURL.
func (s *BlogService) ShareLinks(postID, pageURL string) (map[string]string, *apperrors.APIError) {
	post, ok := s.catalog.Get(strings.TrimSpace(postID))
	if !ok {
		return nil, apperrors.NotFound("post_not_found", "post not found")
	}
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, apperrors.BadRequest("empty_field", "url is required")
	}

	links := make(map[string]string, 3)
	for _, platform := range []string{PlatformTwitter, PlatformFacebook, PlatformLinkedIn} {
		links[platform] = ShareURL(platform, post.Title, pageURL)
	}
	return links, nil
}

// ShareURL returns the share intent for platform, or "" for an unknown one.
func ShareURL(platform, title, pageURL string) string {
	switch platform {
	case PlatformTwitter:
		return "https://twitter.com/intent/tweet?text=" + encodeComponent(title) + "&url=" + encodeComponent(pageURL)
	case PlatformFacebook:
		return "https://www.facebook.com/sharer/sharer.php?u=" + encodeComponent(pageURL)
	case PlatformLinkedIn:
		return "https://www.linkedin.com/sharing/share-offsite/?url=" + encodeComponent(pageURL)
	default:
		return ""
	}
}

func encodeComponent(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

func (s *BlogService) loadComments(ctx context.Context, ownerID string) (map[string][]model.Comment, error) {
	comments := make(map[string][]model.Comment)
	found, err := loadJSON(ctx, s.blobs, ownerID, model.KeyBlogComments, &comments)
	if err != nil {
		return nil, err
	}
	if !found || comments == nil {
		return s.initialComments(), nil
	}
	return comments, nil
}

func (s *BlogService) initialComments() map[string][]model.Comment {
	comments := make(map[string][]model.Comment, len(s.catalog.Posts))
	for _, id := range s.catalog.IDs() {
		comments[id] = []model.Comment{}
	}
	return comments
}

// blobError logs err and maps it to the API error callers see.
func blobError(msg, ownerID string, err error) *apperrors.APIError {
	logger.Error(msg, err, zap.String("owner_id", ownerID))
	if errors.Is(err, errCorruptBlob) {
		return apperrors.Internal("stored data is corrupt")
	}
	return apperrors.ServiceUnavailable("unavailable_storage", "storage is unavailable")
}
