// Recetario - Recipe Sharing and Smart Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recetario

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/recetario/internal/recommend"
)

// CanonicalTags is the tag catalog with display colors.
var CanonicalTags = []Tag{
	{Name: "vegetariana", Color: "#28a745"},
	{Name: "vegana", Color: "#20c997"},
	{Name: "sin gluten", Color: "#ffc107"},
	{Name: "rápida", Color: "#dc3545"},
	{Name: "fácil", Color: "#17a2b8"},
	{Name: "saludable", Color: "#6f42c1"},
	{Name: "postre", Color: "#fd7e14"},
	{Name: "desayuno", Color: "#6610f2"},
	{Name: "almuerzo", Color: "#e83e8c"},
	{Name: "cena", Color: "#343a40"},
	{Name: "aperitivo", Color: "#007bff"},
	{Name: "bebida", Color: "#20c997"},
	{Name: "italiana", Color: "#28a745"},
	{Name: "mexicana", Color: "#dc3545"},
	{Name: "asiática", Color: "#ffc107"},
	{Name: "mediterránea", Color: "#17a2b8"},
}

// CanonicalIngredients is the ingredient catalog.
var CanonicalIngredients = []string{
	"Arroz", "Pollo", "Carne de res", "Cerdo", "Pescado", "Camarón", "Huevos", "Leche", "Queso",
	"Mantequilla", "Aceite de oliva", "Cebolla", "Ajo", "Tomate", "Pimiento", "Zanahoria",
	"Apio", "Papas", "Lechuga", "Espinaca", "Brócoli", "Coliflor", "Frijoles", "Lentejas",
	"Garbanzos", "Maíz", "Harina", "Azúcar", "Sal", "Pimienta", "Comino", "Orégano", "Perejil",
	"Cilantro", "Limón", "Naranja", "Manzana", "Plátano", "Pan", "Pasta", "Avena", "Quinoa",
	"Yogur", "Crema", "Vinagre", "Mostaza", "Salsa de soja", "Miel", "Canela", "Albahaca",
	"Romero", "Tomillo", "Jengibre", "Chiles", "Aguacate", "Coco", "Almendras", "Nueces", "Café",
}

// demoUsers are created by SeedDemoData. The first three author recipes.
var demoUsers = []string{"ana", "bruno", "carla", "diego", "elena", "fabian"}

type demoRecipe struct {
	title       string
	author      int // index into demoUsers
	prep, cook  int
	difficulty  recommend.Difficulty
	daysAgo     int
	tags        []string
	ingredients []string
	likedBy     []int // indexes into demoUsers
}

var demoRecipes = []demoRecipe{
	{"Pasta al pomodoro", 0, 10, 15, recommend.DifficultyEasy, 2,
		[]string{"italiana", "vegetariana", "rápida"}, []string{"Pasta", "Tomate", "Ajo", "Albahaca", "Aceite de oliva"}, []int{1, 3, 4}},
	{"Tacos de pollo", 1, 20, 20, recommend.DifficultyEasy, 5,
		[]string{"mexicana", "cena"}, []string{"Pollo", "Maíz", "Cebolla", "Cilantro", "Limón"}, []int{0, 3, 5}},
	{"Ensalada mediterránea", 2, 15, 0, recommend.DifficultyEasy, 1,
		[]string{"mediterránea", "saludable", "vegetariana", "rápida"}, []string{"Lechuga", "Tomate", "Queso", "Aceite de oliva", "Limón"}, []int{0, 4}},
	{"Curry de garbanzos", 0, 15, 35, recommend.DifficultyIntermediate, 12,
		[]string{"vegana", "asiática", "saludable"}, []string{"Garbanzos", "Coco", "Jengibre", "Cebolla", "Ajo"}, []int{2, 4, 5}},
	{"Arroz frito con camarón", 1, 15, 15, recommend.DifficultyIntermediate, 8,
		[]string{"asiática", "almuerzo"}, []string{"Arroz", "Camarón", "Huevos", "Salsa de soja", "Jengibre"}, []int{0, 3}},
	{"Lasaña de carne", 2, 40, 60, recommend.DifficultyHard, 20,
		[]string{"italiana", "cena"}, []string{"Pasta", "Carne de res", "Tomate", "Queso", "Cebolla"}, []int{1, 3}},
	{"Avena con plátano", 0, 5, 5, recommend.DifficultyEasy, 3,
		[]string{"desayuno", "saludable", "fácil"}, []string{"Avena", "Plátano", "Leche", "Miel", "Canela"}, []int{2, 5}},
	{"Guacamole", 1, 10, 0, recommend.DifficultyEasy, 25,
		[]string{"mexicana", "aperitivo", "vegana", "sin gluten"}, []string{"Aguacate", "Tomate", "Cebolla", "Cilantro", "Limón", "Chiles"}, []int{0, 2, 4}},
	{"Pescado al horno con romero", 2, 15, 25, recommend.DifficultyIntermediate, 6,
		[]string{"mediterránea", "sin gluten", "cena"}, []string{"Pescado", "Romero", "Limón", "Papas", "Aceite de oliva"}, []int{4}},
	{"Brownie de nueces", 0, 20, 30, recommend.DifficultyIntermediate, 40,
		[]string{"postre"}, []string{"Harina", "Azúcar", "Mantequilla", "Huevos", "Nueces"}, []int{1, 5}},
	{"Sopa de lentejas", 1, 15, 45, recommend.DifficultyEasy, 15,
		[]string{"vegana", "saludable", "almuerzo"}, []string{"Lentejas", "Zanahoria", "Apio", "Cebolla", "Comino"}, []int{2}},
	{"Café con canela", 2, 5, 5, recommend.DifficultyEasy, 4,
		[]string{"bebida", "rápida", "desayuno"}, []string{"Café", "Canela", "Leche", "Azúcar"}, []int{3}},
}

// SeedDemoData idempotently inserts the tag and ingredient catalogs, then
// demo users, recipes and likes unless the demo users already exist.
// passwordHash is stored for every demo account.
func (db *DB) SeedDemoData(ctx context.Context, passwordHash string) error {
	for _, t := range CanonicalTags {
		if _, err := db.EnsureTag(ctx, t.Name, t.Color); err != nil {
			return fmt.Errorf("seed tag %q: %w", t.Name, err)
		}
	}
	for _, name := range CanonicalIngredients {
		if _, err := db.EnsureIngredient(ctx, name); err != nil {
			return fmt.Errorf("seed ingredient %q: %w", name, err)
		}
	}

	if _, err := db.GetUserByUsername(ctx, demoUsers[0]); err == nil {
		db.logger.Debug().Msg("Demo data already present, skipping")
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("check demo users: %w", err)
	}

	userIDs := make([]int, len(demoUsers))
	for i, name := range demoUsers {
		u, err := db.CreateUser(ctx, name, passwordHash, RoleUser)
		if err != nil {
			return fmt.Errorf("seed user %q: %w", name, err)
		}
		userIDs[i] = u.ID
	}

	now := db.now()
	likes := 0
	for _, d := range demoRecipes {
		id, err := db.CreateRecipe(ctx, &NewRecipe{
			Title:       d.title,
			PrepTime:    d.prep,
			CookTime:    d.cook,
			Servings:    4,
			Difficulty:  d.difficulty,
			AuthorID:    userIDs[d.author],
			Published:   true,
			Tags:        d.tags,
			Ingredients: d.ingredients,
			CreatedAt:   now.Add(-time.Duration(d.daysAgo) * 24 * time.Hour),
		})
		if err != nil {
			return fmt.Errorf("seed recipe %q: %w", d.title, err)
		}
		for _, u := range d.likedBy {
			if _, _, err := db.ToggleLike(ctx, userIDs[u], id); err != nil {
				return fmt.Errorf("seed like on %q: %w", d.title, err)
			}
			likes++
		}
	}

	db.logger.Info().
		Int("tags", len(CanonicalTags)).
		Int("ingredients", len(CanonicalIngredients)).
		Int("users", len(demoUsers)).
		Int("recipes", len(demoRecipes)).
		Int("likes", likes).
		Msg("Seeded demo data")
	return nil
}
