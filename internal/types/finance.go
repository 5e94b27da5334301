package types

// Transaction and category direction. Every transaction and category is one
// of the two; amounts are stored unsigned and the type carries the sign.
const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Budget years accepted by the API.
const (
	MinBudgetYear = 2024
	MaxBudgetYear = 2100
)

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}
