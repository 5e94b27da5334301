package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
)

type budgetBody struct {
	ID         uint    `json:"id"`
	Amount     float64 `json:"amount"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	CategoryID uint    `json:"category_id"`
	Category   string  `json:"category"`
}

type budgetListBody struct {
	Budgets []budgetBody `json:"budgets"`
}

func createBudget(t *testing.T, r testRouter, token string, categoryID uint, amount float64, month, year int) budgetBody {
	t.Helper()

	w := doRequest(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"amount":      amount,
		"category_id": categoryID,
		"month":       month,
		"year":        year,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create budget status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var created budgetBody
	decodeBody(t, w, &created)
	return created
}

func TestCreateBudgetRejectsDuplicateTuple(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "budget-dup@example.com")
	groceriesID := defaultCategoryID(t, "Groceries")

	created := createBudget(t, r, token, groceriesID, 500, 6, 2025)
	if created.Category != "Groceries" {
		t.Errorf("joined category = %q, want %q", created.Category, "Groceries")
	}

	w := doRequest(t, r, http.MethodPost, "/api/budgets", token, map[string]interface{}{
		"amount": 400, "category_id": groceriesID, "month": 6, "year": 2025,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate tuple status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}

	// A different month is a different tuple
	createBudget(t, r, token, groceriesID, 400, 7, 2025)
}

func TestCreateBudgetCategoryEligibility(t *testing.T) {
	r := setupTest(t)
	_, tokenA := createTestUser(t, "budget-cat-a@example.com")
	_, tokenB := createTestUser(t, "budget-cat-b@example.com")

	// Income categories cannot carry budgets
	salaryID := defaultCategoryID(t, "Salary")
	w := doRequest(t, r, http.MethodPost, "/api/budgets", tokenA, map[string]interface{}{
		"amount": 100, "category_id": salaryID, "month": 6, "year": 2025,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("income category status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Unknown category
	w = doRequest(t, r, http.MethodPost, "/api/budgets", tokenA, map[string]interface{}{
		"amount": 100, "category_id": 99999, "month": 6, "year": 2025,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown category status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// Another user's custom expense category
	foreign := createCategory(t, r, tokenB, "Workshop", "EXPENSE", "Hammer")
	w = doRequest(t, r, http.MethodPost, "/api/budgets", tokenA, map[string]interface{}{
		"amount": 100, "category_id": foreign.ID, "month": 6, "year": 2025,
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("foreign category status = %d, want %d", w.Code, http.StatusNotFound)
	}

	// The caller's own custom expense category is fine
	own := createCategory(t, r, tokenA, "Workshop", "EXPENSE", "Hammer")
	createBudget(t, r, tokenA, own.ID, 100, 6, 2025)
}

func TestCreateBudgetValidation(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "budget-validation@example.com")
	groceriesID := defaultCategoryID(t, "Groceries")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"month too large", map[string]interface{}{"amount": 100, "category_id": groceriesID, "month": 13, "year": 2025}},
		{"year too early", map[string]interface{}{"amount": 100, "category_id": groceriesID, "month": 6, "year": 2023}},
		{"year too late", map[string]interface{}{"amount": 100, "category_id": groceriesID, "month": 6, "year": 2101}},
		{"negative amount", map[string]interface{}{"amount": -100, "category_id": groceriesID, "month": 6, "year": 2025}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/budgets", token, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d: %s", w.Code, http.StatusBadRequest, w.Body.String())
			}
		})
	}
}

func TestUpdateBudgetTupleConflict(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "budget-update@example.com")
	groceriesID := defaultCategoryID(t, "Groceries")

	createBudget(t, r, token, groceriesID, 500, 6, 2025)
	second := createBudget(t, r, token, groceriesID, 450, 7, 2025)

	// Moving the second budget onto the first one's tuple must fail
	w := doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/budgets/%d", second.ID), token, map[string]interface{}{
		"amount": 450, "category_id": groceriesID, "month": 6, "year": 2025,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("tuple conflict status = %d, want %d: %s", w.Code, http.StatusConflict, w.Body.String())
	}

	// Re-saving its own tuple with a new amount is fine
	w = doRequest(t, r, http.MethodPatch, fmt.Sprintf("/api/budgets/%d", second.ID), token, map[string]interface{}{
		"amount": 475, "category_id": groceriesID, "month": 7, "year": 2025,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("self update status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var updated budgetBody
	decodeBody(t, w, &updated)
	if updated.Amount != 475 {
		t.Errorf("updated amount = %v, want 475", updated.Amount)
	}
}

func TestDeleteBudgetFreesTuple(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "budget-delete@example.com")
	groceriesID := defaultCategoryID(t, "Groceries")

	created := createBudget(t, r, token, groceriesID, 500, 6, 2025)

	w := doRequest(t, r, http.MethodDelete, fmt.Sprintf("/api/budgets/%d", created.ID), token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", w.Code, http.StatusNoContent)
	}

	// The tuple is reusable after a real delete
	createBudget(t, r, token, groceriesID, 550, 6, 2025)
}

func TestListBudgetsNewestFirst(t *testing.T) {
	r := setupTest(t)
	_, token := createTestUser(t, "budget-list@example.com")
	groceriesID := defaultCategoryID(t, "Groceries")
	rentID := defaultCategoryID(t, "Rent")

	createBudget(t, r, token, groceriesID, 500, 6, 2025)
	createBudget(t, r, token, rentID, 1200, 1, 2026)
	createBudget(t, r, token, groceriesID, 480, 12, 2025)

	w := doRequest(t, r, http.MethodGet, "/api/budgets", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", w.Code, http.StatusOK)
	}

	var list budgetListBody
	decodeBody(t, w, &list)

	if len(list.Budgets) != 3 {
		t.Fatalf("budget count = %d, want 3", len(list.Budgets))
	}

	wantOrder := []struct {
		month int
		year  int
	}{{1, 2026}, {12, 2025}, {6, 2025}}

	for i, want := range wantOrder {
		got := list.Budgets[i]
		if got.Month != want.month || got.Year != want.year {
			t.Errorf("position %d = %d/%d, want %d/%d", i, got.Month, got.Year, want.month, want.year)
		}
	}
}
