package domain

import (
	"github.com/pantrypal/pantrypal-backend/internal/domain/catalog"
	"github.com/pantrypal/pantrypal-backend/internal/domain/pantry"
)

type Ingredient = catalog.Ingredient
type Recipe = catalog.Recipe
type UserRecipePreference = catalog.UserRecipePreference
type RecipeIntegration = catalog.RecipeIntegration
type RecipeImage = catalog.RecipeImage

type PantryItem = pantry.Item
