package domain

import "errors"

var (
	// ErrVeganRequiresDairyFree is returned when vegan is set without dairyFree or vegetarian
	ErrVeganRequiresDairyFree = errors.New("vegan diets are always dairy-free - set dairyFree or vegetarian as well")

	// ErrInvalidTarget is returned when a nutrient target is negative
	ErrInvalidTarget = errors.New("nutrient targets must be non-negative")

	// ErrNoProducts is returned when both catalogs are empty
	ErrNoProducts = errors.New("no products found")

	// ErrNoMatchingProducts is returned when the dietary filter leaves nothing to optimize
	ErrNoMatchingProducts = errors.New("no products match dietary preferences")

	// ErrMenuExists is returned when saving a menu under a name the user already took
	ErrMenuExists = errors.New("menu with this name already exists")

	// ErrMenuNotFound is returned when a named menu does not exist for the user
	ErrMenuNotFound = errors.New("menu not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
