package service

import (
	"github.com/google/uuid"

	"github.com/platewise/recipehub/backend/internal/models"
)

// AccessDecision is the outcome of evaluating a read request against a
// recipe's visibility state.
type AccessDecision struct {
	Allowed bool
	CanEdit bool
}

// CanReadRecipe decides whether the requester may read the recipe and whether
// edit rights apply. requester is nil for anonymous callers; grant is the
// (recipe, requester) share row, or nil when none exists. Pure function: the
// caller is responsible for looking up the grant.
func CanReadRecipe(recipe *models.Recipe, requester *uuid.UUID, grant *models.SharedRecipe) AccessDecision {
	if requester != nil && *requester == recipe.AuthorID {
		return AccessDecision{Allowed: true, CanEdit: true}
	}
	if recipe.IsPublic {
		return AccessDecision{Allowed: true, CanEdit: grant != nil && grant.CanEdit}
	}
	if grant == nil {
		return AccessDecision{}
	}
	return AccessDecision{Allowed: true, CanEdit: grant.CanEdit}
}

// CanWriteRecipe reports whether the requester may modify the recipe: the
// owner always may, anyone else needs a grant with edit rights.
func CanWriteRecipe(recipe *models.Recipe, requester uuid.UUID, grant *models.SharedRecipe) bool {
	if requester == recipe.AuthorID {
		return true
	}
	return grant != nil && grant.CanEdit
}

// CanDeleteRecipe reports whether the requester may delete the recipe.
// Grants never authorize deletion, however permissive.
func CanDeleteRecipe(recipe *models.Recipe, requester uuid.UUID) bool {
	return requester == recipe.AuthorID
}
