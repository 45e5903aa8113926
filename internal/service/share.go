package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/platewise/recipehub/backend/internal/models"
)

// ShareService manages the grant relation between recipes and users. All
// mutation and listing is owner-only; grant changes take effect on the very
// next access-control decision.
type ShareService struct {
	db *gorm.DB
}

// NewShareService creates a new ShareService instance
func NewShareService(db *gorm.DB) *ShareService {
	return &ShareService{db: db}
}

// ShareRecipe upserts a grant for the user behind recipientEmail. Re-sharing
// an existing (recipe, recipient) pair updates CanEdit in place; concurrent
// upserts serialize on the store's unique constraint.
func (s *ShareService) ShareRecipe(ctx context.Context, recipeID, ownerID uuid.UUID, recipientEmail string, canEdit bool) (*models.SharedRecipe, error) {
	recipe, err := s.ownedRecipe(ctx, recipeID, ownerID)
	if err != nil {
		return nil, err
	}

	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, "id = ?", ownerID).Error; err != nil {
		return nil, err
	}
	if strings.EqualFold(recipientEmail, owner.Email) {
		return nil, ErrSelfShare
	}

	var recipient models.User
	if err := s.db.WithContext(ctx).First(&recipient, "email = ?", strings.ToLower(recipientEmail)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == ownerID {
		return nil, ErrSelfShare
	}

	grant := models.SharedRecipe{
		RecipeID:     recipe.ID,
		SharedByID:   ownerID,
		SharedWithID: recipient.ID,
		CanEdit:      canEdit,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "shared_with_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"can_edit": canEdit}),
		}).
		Create(&grant).Error
	if err != nil {
		return nil, err
	}

	// Reload to pick up the surviving row after a conflict-update
	var saved models.SharedRecipe
	err = s.db.WithContext(ctx).
		Preload("SharedWith").
		First(&saved, "recipe_id = ? AND shared_with_id = ?", recipe.ID, recipient.ID).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// ListShares returns every grant on the recipe. Owner only.
func (s *ShareService) ListShares(ctx context.Context, recipeID, ownerID uuid.UUID) ([]models.SharedRecipe, error) {
	if _, err := s.ownedRecipe(ctx, recipeID, ownerID); err != nil {
		return nil, err
	}

	var shares []models.SharedRecipe
	err := s.db.WithContext(ctx).
		Preload("SharedWith").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// RevokeShare deletes the grant for sharedWithID. Owner only; revoking a
// grant that does not exist is ErrNotFound, not a no-op.
func (s *ShareService) RevokeShare(ctx context.Context, recipeID, ownerID, sharedWithID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, recipeID, ownerID); err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND shared_with_id = ?", recipeID, sharedWithID).
		Delete(&models.SharedRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSharedWithMe returns the grants naming userID as recipient, newest
// first, with the recipe and the granting user preloaded.
func (s *ShareService) ListSharedWithMe(ctx context.Context, userID uuid.UUID) ([]models.SharedRecipe, error) {
	var shares []models.SharedRecipe
	err := s.db.WithContext(ctx).
		Preload("Recipe").
		Preload("Recipe.Author").
		Preload("SharedBy").
		Where("shared_with_id = ?", userID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}
	return shares, nil
}

// ownedRecipe loads the recipe and enforces the owner-only rule for grant
// management. A recipe the caller does not own comes back ErrForbidden; a
// missing recipe is ErrNotFound.
func (s *ShareService) ownedRecipe(ctx context.Context, recipeID, ownerID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != ownerID {
		return nil, ErrForbidden
	}
	return &recipe, nil
}
