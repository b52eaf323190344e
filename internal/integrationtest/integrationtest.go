// Package integrationtest provides db helpers used in integration tests.
//
// The helpers resolve configs and db/migration relative to a package two
// directories below the module root.
package integrationtest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-petr/pet-finance/internal/accountrepo"
	"github.com/go-petr/pet-finance/internal/categoryrepo"
	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/userrepo"
	"github.com/go-petr/pet-finance/pkg/configpkg"
	"github.com/go-petr/pet-finance/pkg/dbpkg"
	"github.com/go-petr/pet-finance/pkg/randompkg"
	"github.com/shopspring/decimal"

	_ "github.com/lib/pq" // postgres driver
)

const (
	configPath   = "../../configs"
	migrationURL = "file://../../db/migration"
)

// LoadConfig loads the application config used by integration tests.
func LoadConfig(t *testing.T) configpkg.Config {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf("configpkg.Load(%q) returned error: %v", configPath, err)
	}

	return config
}

// SetupDB migrates the test database and returns a connection closed on cleanup.
func SetupDB(t *testing.T) *sql.DB {
	t.Helper()

	config := LoadConfig(t)

	if err := dbpkg.Migrate(migrationURL, config.DBSource); err != nil {
		t.Fatalf("dbpkg.Migrate(%q, ...) returned error: %v", migrationURL, err)
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		t.Fatalf("db initialization failed. err: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("db.Close() failed: %v", err)
		}
	})

	return db
}

// SetupTX sets up a database transaction to be used in tests.
//
// Once the test is done it will rollback the transaction.
func SetupTX(t *testing.T) *sql.Tx {
	t.Helper()

	db := SetupDB(t)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() failed: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("tx.Rollback() failed: %v", err)
		}
	})

	return tx
}

// SeedUser creates a random user.
func SeedUser(t *testing.T, db dbpkg.SQLInterface) domain.User {
	t.Helper()

	arg := domain.CreateUserParams{
		Name:  randompkg.Name(),
		Email: randompkg.Email(),
	}

	user, err := userrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("userRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return user
}

// SeedAccount creates an account of the user with the given baseline balance.
func SeedAccount(t *testing.T, db dbpkg.SQLInterface, userID int32, balance string) domain.Account {
	t.Helper()

	arg := domain.CreateAccountParams{
		UserID:  userID,
		Name:    randompkg.Name(),
		Balance: decimal.RequireFromString(balance),
	}

	account, err := accountrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("accountRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return account
}

// SeedCategory creates a random category.
func SeedCategory(t *testing.T, db dbpkg.SQLInterface) domain.Category {
	t.Helper()

	arg := domain.CreateCategoryParams{
		Name: randompkg.Name(),
		Type: randompkg.CategoryType(),
	}

	category, err := categoryrepo.NewRepoPGS(db).Create(context.Background(), arg)
	if err != nil {
		t.Fatalf("categoryRepo.Create(context.Background(), %+v) returned error: %v", arg, err)
	}

	return category
}

// Balance reads the stored balance of the account.
func Balance(t *testing.T, db dbpkg.SQLInterface, accountID int32) decimal.Decimal {
	t.Helper()

	account, err := accountrepo.NewRepoPGS(db).Get(context.Background(), accountID)
	if err != nil {
		t.Fatalf("accountRepo.Get(context.Background(), %v) returned error: %v", accountID, err)
	}

	return account.Balance
}

// SumTransactions returns the sum of all transaction amounts of the account.
func SumTransactions(t *testing.T, db dbpkg.SQLInterface, accountID int32) decimal.Decimal {
	t.Helper()

	const query = `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE account_id = $1`

	var sum decimal.Decimal
	if err := db.QueryRowContext(context.Background(), query, accountID).Scan(&sum); err != nil {
		t.Fatalf("sum of transactions of account %v failed: %v", accountID, err)
	}

	return sum
}

// RequireInvariant fails the test unless balance == baseline + Σ amounts.
func RequireInvariant(t *testing.T, db dbpkg.SQLInterface, accountID int32, baseline decimal.Decimal) {
	t.Helper()

	balance := Balance(t, db, accountID)
	sum := SumTransactions(t, db, accountID)

	if want := baseline.Add(sum); !want.Equal(balance) {
		t.Fatalf("account %v balance = %v, want baseline %v + transactions %v = %v",
			accountID, balance, baseline, sum, want)
	}
}
