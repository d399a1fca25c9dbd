package seed

import "github.com/carson-networks/pouch-server/internal/shard"

// Fixed identifiers shared across shards. Batch N may reference ids minted
// by batch N-1 because they are literals, not generated values.
const (
	DemoUserID       = "5d1f18dc-9c14-4a5c-9c5a-0d8f1a2b3c4d"
	DemoCheckingID   = "a1f0287e-55f1-4c6f-9a51-3e7c1d2b4a6f"
	DemoSavingsID    = "b2e13f90-66a2-4d70-8b62-4f8d2e3c5b70"
	DemoGroceriesID  = "c3d24fa1-77b3-4e81-9c73-509e3f4d6c81"
	DemoRentID       = "d4e35fb2-88c4-4f92-8d84-61af405e7d92"
	DemoVacationGoal = "e5f460c3-99d5-4083-9e95-72b0516f8ea3"
	seedCreatedAt    = "2024-01-01 00:00:00+00:00"
	seedTargetDate   = "2026-12-31 00:00:00+00:00"
)

// DefaultBatches is the baseline demo data set.
func DefaultBatches() []Batch {
	return []Batch{
		{
			Number: 1,
			Shard:  shard.ShardUser,
			Name:   "demo_user",
			Statements: []string{
				`INSERT INTO users (id, email, name, created_at)
				 VALUES ('` + DemoUserID + `', 'demo@pouch.local', 'Demo User', '` + seedCreatedAt + `')`,
			},
		},
		{
			Number: 2,
			Shard:  shard.ShardAccount,
			Name:   "demo_accounts",
			Statements: []string{
				`INSERT INTO accounts (id, owner_id, name, type, currency, starting_balance, balance, active, created_at)
				 VALUES ('` + DemoCheckingID + `', '` + DemoUserID + `', 'Everyday Checking', 0, 'USD', '5000.00', '5000.00', 1, '` + seedCreatedAt + `')`,
				`INSERT INTO accounts (id, owner_id, name, type, currency, starting_balance, balance, active, created_at)
				 VALUES ('` + DemoSavingsID + `', '` + DemoUserID + `', 'Rainy Day Savings', 1, 'USD', '12000.00', '12000.00', 1, '` + seedCreatedAt + `')`,
			},
		},
		{
			Number: 3,
			Shard:  shard.ShardPouch,
			Name:   "demo_pouches",
			Statements: []string{
				`INSERT INTO pouches (id, owner_id, name, visibility, budget_amount, budget_period, balance, created_at)
				 VALUES ('` + DemoGroceriesID + `', '` + DemoUserID + `', 'Groceries', 0, '600.00', 'monthly', '0', '` + seedCreatedAt + `')`,
				`INSERT INTO pouches (id, owner_id, name, visibility, budget_amount, budget_period, balance, created_at)
				 VALUES ('` + DemoRentID + `', '` + DemoUserID + `', 'Rent', 0, '1800.00', 'monthly', '0', '` + seedCreatedAt + `')`,
				`INSERT INTO goals (id, owner_id, pouch_id, title, target_amount, current_amount, target_date, monthly_contribution, created_at, updated_at)
				 VALUES ('` + DemoVacationGoal + `', '` + DemoUserID + `', NULL, 'Vacation Fund', '4000.00', '0', '` + seedTargetDate + `', '0', '` + seedCreatedAt + `', '` + seedCreatedAt + `')`,
			},
		},
	}
}
