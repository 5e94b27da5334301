package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fintrack-dev/fintrack/db"
	"github.com/fintrack-dev/fintrack/internal/models"
)

type categoryBody struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Icon      string `json:"icon"`
	IsDefault bool   `json:"is_default"`
}

type categoryListBody struct {
	Categories []categoryBody `json:"categories"`
}

func createCategory(t *testing.T, r testRouter, token, name, categoryType, icon string) categoryBody {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/categories", token, map[string]interface{}{
		"name": name,
		"type": categoryType,
		"icon": icon,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create category status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created categoryBody
	decodeBody(t, w, &created)
	return created
}

func TestListCategoriesDefaultsFirst(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "categories@example.com")

	w := doRequest(t, r, http.MethodGet, "/api/categories", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}

	var list categoryListBody
	decodeBody(t, w, &list)

	if len(list.Categories) != 12 {
		t.Fatalf("seeded category count = %d, want 12", len(list.Categories))
	}

	createCategory(t, r, token, "Coffee", "EXPENSE", "Coffee")

	w = doRequest(t, r, http.MethodGet, "/api/categories", token, nil)
	decodeBody(t, w, &list)

	if len(list.Categories) != 13 {
		t.Fatalf("category count after create = %d, want 13", len(list.Categories))
	}

	// Defaults come first, then custom entries
	for i, category := range list.Categories {
		if i < 12 && !category.IsDefault {
			t.Errorf("position %d holds non-default category %q", i, category.Name)
		}
	}
	if last := list.Categories[12]; last.Name != "Coffee" || last.IsDefault {
		t.Errorf("expected custom category last, got %+v", last)
	}
}

func TestCategoriesAreScopedToOwner(t *testing.T) {
	r := setupTest(t)
	_, tokenA := createTestUser(t, "owner-a@example.com")
	_, tokenB := createTestUser(t, "owner-b@example.com")

	createCategory(t, r, tokenA, "Hobbies", "EXPENSE", "Palette")

	var list categoryListBody
	w := doRequest(t, r, http.MethodGet, "/api/categories", tokenB, nil)
	decodeBody(t, w, &list)

	for _, category := range list.Categories {
		if category.Name == "Hobbies" {
			t.Error("another user's custom category leaked into the listing")
		}
	}
}

func TestCreateCategoryValidation(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "validation@example.com")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"name too short", map[string]interface{}{"name": "X", "type": "EXPENSE", "icon": "Star"}},
		{"name with digits", map[string]interface{}{"name": "Cat123", "type": "EXPENSE", "icon": "Star"}},
		{"bad type", map[string]interface{}{"name": "Pets", "type": "SAVINGS", "icon": "Star"}},
		{"icon with spaces", map[string]interface{}{"name": "Pets", "type": "EXPENSE", "icon": "My Icon"}},
		{"missing icon", map[string]interface{}{"name": "Pets", "type": "EXPENSE"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/categories", token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestUpdateCategoryOwnership(t *testing.T) {
	r := setupTest(t)
	_, tokenA := createTestUser(t, "update-a@example.com")
	_, tokenB := createTestUser(t, "update-b@example.com")

	update := map[string]interface{}{"name": "Renamed", "type": "EXPENSE", "icon": "Star"}

	// Default categories are never editable
	groceriesID := defaultCategoryID(t, "Groceries")
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/categories/%d", groceriesID), tokenA, update)
	if w.Code != http.StatusNotFound {
		t.Errorf("update default status = %d, want %d", w.Code, http.StatusNotFound)
	}

	custom := createCategory(t, r, tokenA, "Garden", "EXPENSE", "Flower")

	// Another user cannot touch it
	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/categories/%d", custom.ID), tokenB, update)
	if w.Code != http.StatusNotFound {
		t.Errorf("update foreign status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// The owner can
	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/categories/%d", custom.ID), tokenA, update)
	if w.Code != http.StatusOK {
		t.Fatalf("update own status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var updated categoryBody
	decodeBody(t, w, &updated)
	if updated.Name != "Renamed" {
		t.Errorf("updated name = %q, want %q", updated.Name, "Renamed")
	}
}

func TestDeleteCategoryLeavesReferencesInPlace(t *testing.T) {
	r := setupTest(t)
	userID, token := createTestUser(t, "orphan@example.com")

	custom := createCategory(t, r, token, "Snacks", "EXPENSE", "Cookie")

	w := doRequest(t, r, http.MethodPost, "/api/transactions", token, map[string]interface{}{
		"amount":      12.50,
		"type":        "EXPENSE",
		"description": "vending machine",
		"date":        "2025-06-10",
		"category_id": custom.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"amount":      100,
		"category_id": custom.ID,
		"month":       6,
		"year":        2025,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create budget status = %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", custom.ID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete category status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// Referencing rows survive with dangling category ids
	var transactionCount, budgetCount int64
	db.DB.Model(&models.Transaction{}).Where("user_id = ? AND category_id = ?", userID, custom.ID).Count(&transactionCount)
	db.DB.Model(&models.Budget{}).Where("user_id = ? AND category_id = ?", userID, custom.ID).Count(&budgetCount)

	if transactionCount != 1 {
		t.Errorf("transaction count after category delete = %d, want 1", transactionCount)
	}
	if budgetCount != 1 {
		t.Errorf("budget count after category delete = %d, want 1", budgetCount)
	}
}
