package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gigboard/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

func (r *PostRepository) Save(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("save post failed: %w", err)
	}
	return nil
}

// DeleteOwned removes a post only when both the id and the owner match, in a
// single conditional DELETE. Checking ownership in a separate read would open
// a window between check and delete.
func (r *PostRepository) DeleteOwned(id, ownerID uint) (int64, error) {
	res := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&model.Post{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete post failed: %w", res.Error)
	}
	return res.RowsAffected, nil
}
