package app

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gigboard/internal/model"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const maxContentLength = 255

// PostStore is the persistence capability PostService needs.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	Save(post *model.Post) error
	DeleteOwned(id, ownerID uint) (int64, error)
}

// AuditSink receives post-mutation events. Publishing is best effort: a
// failed publish is logged and the request still succeeds.
type AuditSink interface {
	Publish(ctx context.Context, entry model.AuditLog) error
}

type PostService struct {
	posts PostStore
	audit AuditSink
}

type CreatePostInput struct {
	Title          string
	Content        string
	Company        string
	Location       string
	SkillsRequired string
	Budget         float64
	StartDate      *time.Time
	Deadline       *time.Time
}

type UpdatePostInput struct {
	Title    string
	Content  string
	Location string
}

func NewPostService(posts PostStore, audit AuditSink) *PostService {
	return &PostService{posts: posts, audit: audit}
}

// Create persists a new post owned by ownerID. The owner always comes from
// the authenticated identity, never from the request body.
func (s *PostService) Create(ctx context.Context, ownerID uint, input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	location := strings.TrimSpace(input.Location)

	if ownerID == 0 || title == "" || content == "" || location == "" {
		return nil, ErrInvalidInput
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	post := &model.Post{
		Title:          title,
		Content:        content,
		Company:        strings.TrimSpace(input.Company),
		Location:       location,
		SkillsRequired: strings.TrimSpace(input.SkillsRequired),
		Budget:         input.Budget,
		PostDate:       time.Now(),
		Status:         "Open",
		StartDate:      input.StartDate,
		Deadline:       input.Deadline,
		OwnerID:        ownerID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, ownerID, model.AuditActionPostCreate, post.ID)
	return post, nil
}

func (s *PostService) GetByID(id uint) (*model.Post, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Update overwrites title, content, and location of an existing post. Any
// authenticated caller may edit any post; only delete is owner-scoped. That
// asymmetry is kept on purpose to match the board's long-standing behavior.
func (s *PostService) Update(ctx context.Context, actorID, id uint, input UpdatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	content := strings.TrimSpace(input.Content)
	location := strings.TrimSpace(input.Location)

	if id == 0 || title == "" || content == "" || location == "" {
		return nil, ErrInvalidInput
	}
	if len(content) > maxContentLength {
		return nil, ErrContentTooLong
	}

	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	post.Title = title
	post.Content = content
	post.Location = location

	if err := s.posts.Save(post); err != nil {
		return nil, err
	}

	s.recordAudit(ctx, actorID, model.AuditActionPostUpdate, post.ID)
	return post, nil
}

// Delete removes the post only when the caller owns it. The repository runs
// the id+owner check and the delete as one statement, so two racing deletes
// cannot both observe the row: exactly one sees a non-zero count.
func (s *PostService) Delete(ctx context.Context, id, ownerID uint) (int64, error) {
	if id == 0 || ownerID == 0 {
		return 0, ErrInvalidInput
	}

	count, err := s.posts.DeleteOwned(id, ownerID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrPostNotFound
	}

	s.recordAudit(ctx, ownerID, model.AuditActionPostDelete, id)
	return count, nil
}

func (s *PostService) recordAudit(ctx context.Context, actorID uint, action string, postID uint) {
	if s.audit == nil {
		return
	}
	entry := model.AuditLog{
		ActorID: actorID,
		Action:  action,
		PostID:  postID,
	}
	if err := s.audit.Publish(ctx, entry); err != nil {
		logger.Error().Err(err).Str("action", action).Uint("post_id", postID).Msg("publish audit event failed")
	}
}
