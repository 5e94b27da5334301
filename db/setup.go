package db

import (
	"github.com/fintrack-dev/fintrack/internal/models"
	"github.com/fintrack-dev/fintrack/internal/types"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// TranslateError turns driver-specific unique violations into
	// gorm.ErrDuplicatedKey, which the budget handlers rely on.
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.Budget{},
	}

	for _, model := range models {
		if err := DB.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

var defaultCategories = []models.Category{
	{Name: "Salary", Type: types.TypeIncome, Icon: "Briefcase"},
	{Name: "Freelance", Type: types.TypeIncome, Icon: "Wallet"},
	{Name: "Investments", Type: types.TypeIncome, Icon: "PiggyBank"},
	{Name: "Rent", Type: types.TypeExpense, Icon: "Home"},
	{Name: "Groceries", Type: types.TypeExpense, Icon: "ShoppingBag"},
	{Name: "Utilities", Type: types.TypeExpense, Icon: "Building2"},
	{Name: "Transportation", Type: types.TypeExpense, Icon: "Car"},
	{Name: "Healthcare", Type: types.TypeExpense, Icon: "Heart"},
	{Name: "Education", Type: types.TypeExpense, Icon: "GraduationCap"},
	{Name: "Entertainment", Type: types.TypeExpense, Icon: "Pizza"},
	{Name: "Fitness", Type: types.TypeExpense, Icon: "Dumbbell"},
	{Name: "Shopping", Type: types.TypeExpense, Icon: "CreditCard"},
}

// SeedDefaultCategories inserts the system categories, keyed by (name, type)
// so repeated startups are idempotent.
func SeedDefaultCategories() error {
	for _, category := range defaultCategories {
		var existing models.Category

		err := DB.Where(models.Category{Name: category.Name, Type: category.Type, IsDefault: true}).
			Attrs(models.Category{Icon: category.Icon}).
			FirstOrCreate(&existing).Error

		if err != nil {
			return err
		}
	}

	return nil
}
