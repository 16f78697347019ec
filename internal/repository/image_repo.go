package repository

import (
	"context"

	"github.com/communityhub/waitlist-service/internal/models"
	"gorm.io/gorm"
)

type ImageRepository interface {
	Save(ctx context.Context, image *models.Image) error
	FindByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) (*models.Image, error)
	DeleteByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) error
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Save(ctx context.Context, image *models.Image) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *imageRepository) FindByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) (*models.Image, error) {
	var image models.Image
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND kind = ?", eventID, kind).
		First(&image).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) DeleteByEventAndKind(ctx context.Context, eventID string, kind models.ImageKind) error {
	return r.db.WithContext(ctx).
		Where("event_id = ? AND kind = ?", eventID, kind).
		Delete(&models.Image{}).Error
}
