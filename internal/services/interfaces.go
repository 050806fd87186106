package services

import (
	"time"

	"gagyebu/internal/cycle"
	"gagyebu/internal/installment"
	"gagyebu/internal/models"
	"gagyebu/internal/pagination"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, icon, color, memo string) (*models.Category, error)
	GetCategories(page pagination.PageRequest, categoryType *models.CategoryType) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID uint) (*models.Category, error)
	UpdateCategory(categoryID uint, name, icon, color, memo string) (*models.Category, error)
	DeleteCategory(categoryID uint) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate         *time.Time
	ToDate           *time.Time
	Type             *models.TransactionType
	CategoryID       *uint
	ExcludeGenerated bool
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(categoryID *uint, transactionType models.TransactionType, amount int64, memo string, date time.Time) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	UpdateTransaction(transactionID uint, categoryID *uint, amount *int64, memo *string, date *time.Time) (*models.Transaction, error)
	DeleteTransaction(transactionID uint) error
}

// CreateFixedInput carries the fields for registering a recurring rule.
type CreateFixedInput struct {
	Day        int
	Type       models.TransactionType
	Amount     int64
	CategoryID *uint
	Memo       string
	StartDate  time.Time
	EndType    models.EndType
	EndDate    *time.Time
}

// CreateInstallmentInput carries the fields for registering an installment
// purchase. The stored rule amount is derived from the amortization schedule,
// not supplied by the caller.
type CreateInstallmentInput struct {
	Day        int
	CategoryID *uint
	Memo       string
	StartDate  time.Time
	Principal  int64
	Months     int
	AnnualRate float64
	FreeMonths int
}

// BackfillResult reports how many historical occurrences were written when a
// rule was registered. Backfill runs in the rule's creation transaction, so
// it either completes or the rule does not exist.
type BackfillResult struct {
	Generated int `json:"generated"`
}

// FixedServicer defines the contract for recurring-rule business logic.
type FixedServicer interface {
	CreateFixed(input CreateFixedInput, now time.Time) (*models.FixedTransaction, *BackfillResult, error)
	CreateInstallment(input CreateInstallmentInput, now time.Time) (*models.FixedTransaction, *BackfillResult, error)
	GetFixed(page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.FixedTransaction], error)
	GetFixedByID(fixedID uint) (*models.FixedTransaction, error)
	UpdateFixed(fixedID uint, amount *int64, memo *string, isActive *bool, endDate *time.Time) (*models.FixedTransaction, error)
	DeleteFixed(fixedID uint, cascade bool) error
	GetInstallmentSchedule(fixedID uint) (*installment.Schedule, error)
}

// GenerationResult reports one scheduled generation run.
type GenerationResult struct {
	Generated    int    `json:"generated"`
	Skipped      int    `json:"skipped"`
	FailedFixed  []uint `json:"failed_fixed,omitempty"`
	Deactivated  int    `json:"deactivated"`
	RulesChecked int    `json:"rules_checked"`
}

// GenerationServicer materializes due occurrences for all active rules, at
// most one per rule per pay cycle.
type GenerationServicer interface {
	GenerateDue(now time.Time) (*GenerationResult, error)
}

// GoalServicer defines the contract for budget-goal business logic.
type GoalServicer interface {
	CreateGoal(categoryID *uint, amount int64) (*models.BudgetGoal, error)
	GetGoals() ([]models.BudgetGoal, error)
	UpdateGoal(goalID uint, amount int64) (*models.BudgetGoal, error)
	DeleteGoal(goalID uint) error
}

// SettingsServicer manages the singleton user settings row.
type SettingsServicer interface {
	GetSettings() (*models.Settings, error)
	UpdateCycleStartDay(day int) (*models.Settings, error)
	CurrentCycle(now time.Time) (cycle.Range, error)
}

// SurvivalStatus grades a budget position.
type SurvivalStatus string

const (
	SurvivalStatusSafe    SurvivalStatus = "safe"
	SurvivalStatusWarning SurvivalStatus = "warning"
	SurvivalStatusDanger  SurvivalStatus = "danger"
)

// CategorySurvival is the per-category budget position for the current cycle.
type CategorySurvival struct {
	CategoryID uint           `json:"category_id"`
	Budget     int64          `json:"budget"`
	Spent      int64          `json:"spent"`
	Remaining  int64          `json:"remaining"`
	Percentage float64        `json:"percentage"`
	Status     SurvivalStatus `json:"status"`
}

// SurvivalResult aggregates budget positions and the safe daily spend for the
// remainder of the cycle. Configured=false means no per-category goals exist;
// the other fields are then meaningless.
type SurvivalResult struct {
	Configured        bool               `json:"configured"`
	Categories        []CategorySurvival `json:"categories,omitempty"`
	TotalBudget       int64              `json:"total_budget"`
	CurrentSpent      int64              `json:"current_spent"`
	DisposableBalance int64              `json:"disposable_balance"`
	DaysLeft          int                `json:"days_left"`
	DailyAvailable    int64              `json:"daily_available"`
	Status            SurvivalStatus     `json:"status"`
}

// SurvivalServicer computes the budget survival view for the current cycle.
type SurvivalServicer interface {
	GetSurvival(now time.Time) (*SurvivalResult, error)
}

// CategoryTotal is one category's expense total within a month.
type CategoryTotal struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Amount     int64  `json:"amount"`
}

// DayTotal is one calendar day's income/expense totals.
type DayTotal struct {
	Date    time.Time `json:"date"`
	Income  int64     `json:"income"`
	Expense int64     `json:"expense"`
}

// MonthlySummary backs the calendar and statistics views for one month.
type MonthlySummary struct {
	Year       int             `json:"year"`
	Month      time.Month      `json:"month"`
	Income     int64           `json:"income"`
	Expense    int64           `json:"expense"`
	Net        int64           `json:"net"`
	ByCategory []CategoryTotal `json:"by_category"`
	ByDay      []DayTotal      `json:"by_day"`
}

// SummaryServicer defines the contract for calendar/statistics summaries.
type SummaryServicer interface {
	GetMonthlySummary(year int, month time.Month) (*MonthlySummary, error)
}
