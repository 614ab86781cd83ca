package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/compensation"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type compensationRepository struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.ComponentRepository {
	return &compensationRepository{db: db}
}

// scanComponent rebuilds the tagged calculation variant from the
// calculation_type/amount/percent columns; unknown stored values surface as
// errors instead of being coerced.
func scanComponent(row pgx.Row) (compensation.Component, error) {
	var c compensation.Component
	var kind, calcType, recurrence string
	var amount, percent *decimal.Decimal
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &kind, &calcType, &amount, &percent,
		&c.Taxable, &c.TaxPercent, &recurrence, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return compensation.Component{}, err
	}
	if c.Kind, err = compensation.ParseComponentKind(kind); err != nil {
		return compensation.Component{}, fmt.Errorf("component %s: %w", c.ID, err)
	}
	if c.Calculation, err = compensation.ParseCalculationMode(calcType, amount, percent); err != nil {
		return compensation.Component{}, fmt.Errorf("component %s: %w", c.ID, err)
	}
	if c.Recurrence, err = compensation.ParseRecurrence(recurrence); err != nil {
		return compensation.Component{}, fmt.Errorf("component %s: %w", c.ID, err)
	}
	return c, nil
}

func calculationColumns(c compensation.Component) (string, *decimal.Decimal, *decimal.Decimal) {
	if c.Calculation.IsFixed() {
		amount := c.Calculation.FixedAmount()
		return c.Calculation.Kind(), &amount, nil
	}
	percent := c.Calculation.Percent()
	return c.Calculation.Kind(), nil, &percent
}

const componentColumns = `
	id, company_id, name, kind, calculation_type, amount, percent,
	taxable, tax_percent, recurrence, is_active, created_at, updated_at
`

func (r *compensationRepository) Create(ctx context.Context, component compensation.Component) (compensation.Component, error) {
	q := GetQuerier(ctx, r.db)

	calcType, amount, percent := calculationColumns(component)

	query := `
		INSERT INTO compensation_components (
			company_id, name, kind, calculation_type, amount, percent,
			taxable, tax_percent, recurrence, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + componentColumns

	c, err := scanComponent(q.QueryRow(ctx, query,
		component.CompanyID, component.Name, component.Kind, calcType, amount, percent,
		component.Taxable, component.TaxPercent, component.Recurrence, component.IsActive,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_compensation_component_name") {
			return compensation.Component{}, compensation.ErrComponentNameExists
		}
		return compensation.Component{}, fmt.Errorf("failed to create component: %w", err)
	}

	return c, nil
}

func (r *compensationRepository) GetByID(ctx context.Context, id string, companyID string) (compensation.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM compensation_components
		WHERE id = $1 AND company_id = $2
	`

	c, err := scanComponent(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.Component{}, compensation.ErrComponentNotFound
		}
		return compensation.Component{}, fmt.Errorf("failed to get component: %w", err)
	}

	return c, nil
}

func (r *compensationRepository) GetByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]compensation.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM compensation_components
		WHERE company_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	defer rows.Close()

	var components []compensation.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *compensationRepository) GetByIDs(ctx context.Context, companyID string, ids []string) ([]compensation.Component, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + componentColumns + `
		FROM compensation_components
		WHERE company_id = $1 AND id = ANY($2)
	`

	rows, err := q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list components by ids: %w", err)
	}
	defer rows.Close()

	var components []compensation.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *compensationRepository) Update(ctx context.Context, companyID string, req compensation.UpdateComponentRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.Percent != nil {
		setParts = append(setParts, fmt.Sprintf("percent = $%d", argIdx))
		args = append(args, *req.Percent)
		argIdx++
	}
	if req.Taxable != nil {
		setParts = append(setParts, fmt.Sprintf("taxable = $%d", argIdx))
		args = append(args, *req.Taxable)
		argIdx++
	}
	if req.TaxPercent != nil {
		setParts = append(setParts, fmt.Sprintf("tax_percent = $%d", argIdx))
		args = append(args, *req.TaxPercent)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE compensation_components
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.ErrComponentNotFound
		}
		if strings.Contains(err.Error(), "uk_compensation_component_name") {
			return compensation.ErrComponentNameExists
		}
		return fmt.Errorf("failed to update component: %w", err)
	}

	return nil
}

func (r *compensationRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM compensation_components
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return compensation.ErrComponentNotFound
		}
		return fmt.Errorf("failed to delete component: %w", err)
	}

	return nil
}
