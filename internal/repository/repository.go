package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/finhealth/internal/models"
)

// ErrCompanyNotFound is returned when no company matches the lookup
var ErrCompanyNotFound = errors.New("company not found")

// Accounting record types
const (
	RecordSale      = "SALE"
	RecordExpense   = "EXPENSE"
	RecordInventory = "INVENTORY"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FindCompanyByUserID retrieves the company owned by a user
func (r *Repository) FindCompanyByUserID(ctx context.Context, userID int64) (*models.Company, error) {
	query := `
		SELECT c.id, c.user_id, c.legal_name, COALESCE(u.email, '')
		FROM companies c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
		ORDER BY c.id
		LIMIT 1`
	company := &models.Company{}
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&company.ID, &company.UserID, &company.LegalName, &company.ContactEmail)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find company: %w", err)
	}
	return company, nil
}

// ListCompanies retrieves every company
func (r *Repository) ListCompanies(ctx context.Context) ([]models.Company, error) {
	query := `
		SELECT c.id, c.user_id, c.legal_name, COALESCE(u.email, '')
		FROM companies c
		LEFT JOIN users u ON u.id = c.user_id
		ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.UserID, &c.LegalName, &c.ContactEmail); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// LoadSnapshot aggregates accounting records and the latest bank balance
func (r *Repository) LoadSnapshot(ctx context.Context, companyID int64) (models.FinancialSnapshot, error) {
	var s models.FinancialSnapshot
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = $2), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $3), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = $4), 0)
		FROM accounting_records
		WHERE company_id = $1`
	err := r.db.QueryRowContext(ctx, query, companyID, RecordSale, RecordExpense, RecordInventory).
		Scan(&s.Sales, &s.Expenses, &s.InventoryValue)
	if err != nil {
		return s, fmt.Errorf("failed to aggregate accounting records: %w", err)
	}

	balanceQuery := `
		SELECT balance
		FROM bank_transactions
		WHERE company_id = $1
		ORDER BY date DESC, id DESC
		LIMIT 1`
	err = r.db.QueryRowContext(ctx, balanceQuery, companyID).Scan(&s.BankBalance)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("failed to load latest balance: %w", err)
	}
	return s, nil
}

// BalanceHistory retrieves bank balances in chronological order
func (r *Repository) BalanceHistory(ctx context.Context, companyID int64) ([]float64, error) {
	query := `
		SELECT balance
		FROM bank_transactions
		WHERE company_id = $1
		ORDER BY date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load balance history: %w", err)
	}
	defer rows.Close()

	history := []float64{}
	for rows.Next() {
		var b float64
		if err := rows.Scan(&b); err != nil {
			return nil, fmt.Errorf("failed to scan balance: %w", err)
		}
		history = append(history, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load balance history: %w", err)
	}
	return history, nil
}

// Transactions retrieves bank transactions; debits become negative amounts
func (r *Repository) Transactions(ctx context.Context, companyID int64) ([]models.Transaction, error) {
	query := `
		SELECT id, date, COALESCE(description, ''), debit, credit
		FROM bank_transactions
		WHERE company_id = $1
		ORDER BY date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		var (
			tx            models.Transaction
			date          sql.NullTime
			debit, credit float64
		)
		if err := rows.Scan(&tx.ID, &date, &tx.Description, &debit, &credit); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if date.Valid {
			d := date.Time
			tx.Date = &d
		}
		tx.Amount = credit - debit
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return txs, nil
}

// ExpenseCategories sums expense records per item category
func (r *Repository) ExpenseCategories(ctx context.Context, companyID int64) ([]models.ExpenseCategory, error) {
	query := `
		SELECT item_category, SUM(amount)
		FROM accounting_records
		WHERE company_id = $1 AND type = $2
		GROUP BY item_category
		ORDER BY item_category`
	rows, err := r.db.QueryContext(ctx, query, companyID, RecordExpense)
	if err != nil {
		return nil, fmt.Errorf("failed to load expense categories: %w", err)
	}
	defer rows.Close()

	categories := []models.ExpenseCategory{}
	for rows.Next() {
		var (
			name sql.NullString
			sum  float64
		)
		if err := rows.Scan(&name, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan expense category: %w", err)
		}
		// unnamed buckets keep their position so category colors stay stable
		categories = append(categories, models.ExpenseCategory{Name: name.String, Value: sum})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load expense categories: %w", err)
	}
	return categories, nil
}

// LoadAssessmentInput gathers everything the engine needs for one company
func (r *Repository) LoadAssessmentInput(ctx context.Context, company *models.Company, horizon int) (models.AssessmentInput, error) {
	in := models.AssessmentInput{CompanyName: company.LegalName, Horizon: horizon}

	snapshot, err := r.LoadSnapshot(ctx, company.ID)
	if err != nil {
		return in, err
	}
	in.Snapshot = snapshot

	if in.History, err = r.BalanceHistory(ctx, company.ID); err != nil {
		return in, err
	}
	if in.Transactions, err = r.Transactions(ctx, company.ID); err != nil {
		return in, err
	}
	if in.Categories, err = r.ExpenseCategories(ctx, company.ID); err != nil {
		return in, err
	}
	return in, nil
}
