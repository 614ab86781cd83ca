package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/talenthub-id/payroll-backend-go/internal/domain/salarystructure"
	"github.com/talenthub-id/payroll-backend-go/internal/pkg/database"
)

type salaryStructureRepository struct {
	db *database.DB
}

func NewSalaryStructureRepository(db *database.DB) salarystructure.SalaryStructureRepository {
	return &salaryStructureRepository{db: db}
}

func (r *salaryStructureRepository) Create(ctx context.Context, structure salarystructure.SalaryStructure, componentIDs []string) (salarystructure.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_structures (company_id, employee_id, base_salary)
		VALUES ($1, $2, $3)
		RETURNING id, company_id, employee_id, base_salary, created_at, updated_at
	`

	var s salarystructure.SalaryStructure
	err := q.QueryRow(ctx, query, structure.CompanyID, structure.EmployeeID, structure.BaseSalary).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.BaseSalary, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_structure_employee") {
			return salarystructure.SalaryStructure{}, salarystructure.ErrStructureExists
		}
		return salarystructure.SalaryStructure{}, fmt.Errorf("failed to create salary structure: %w", err)
	}

	if err := r.replaceComponents(ctx, s.ID, componentIDs); err != nil {
		return salarystructure.SalaryStructure{}, err
	}

	return s, nil
}

// replaceComponents rewrites the attachment rows, preserving list order via
// the position column.
func (r *salaryStructureRepository) replaceComponents(ctx context.Context, structureID string, componentIDs []string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM salary_structure_components WHERE salary_structure_id = $1`, structureID); err != nil {
		return fmt.Errorf("failed to clear structure components: %w", err)
	}

	query := `
		INSERT INTO salary_structure_components (salary_structure_id, component_id, position)
		VALUES ($1, $2, $3)
	`
	for i, componentID := range componentIDs {
		if _, err := q.Exec(ctx, query, structureID, componentID, i); err != nil {
			if strings.Contains(err.Error(), "uk_structure_component") {
				return salarystructure.ErrComponentAlreadyLinked
			}
			return fmt.Errorf("failed to attach component: %w", err)
		}
	}

	return nil
}

func (r *salaryStructureRepository) GetByEmployeeID(ctx context.Context, companyID string, employeeID string) (salarystructure.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, base_salary, created_at, updated_at
		FROM salary_structures
		WHERE company_id = $1 AND employee_id = $2
	`

	var s salarystructure.SalaryStructure
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.BaseSalary, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salarystructure.SalaryStructure{}, salarystructure.ErrStructureNotConfigured
		}
		return salarystructure.SalaryStructure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	return s, nil
}

func (r *salaryStructureRepository) GetByCompanyID(ctx context.Context, companyID string) ([]salarystructure.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, base_salary, created_at, updated_at
		FROM salary_structures
		WHERE company_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []salarystructure.SalaryStructure
	for rows.Next() {
		var s salarystructure.SalaryStructure
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.BaseSalary, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}

	return structures, rows.Err()
}

func (r *salaryStructureRepository) GetComponentIDs(ctx context.Context, structureID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT component_id
		FROM salary_structure_components
		WHERE salary_structure_id = $1
		ORDER BY position
	`

	rows, err := q.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to get structure components: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan component id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *salaryStructureRepository) Update(ctx context.Context, structure salarystructure.SalaryStructure, componentIDs *[]string) (salarystructure.SalaryStructure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_structures
		SET base_salary = $3, updated_at = NOW()
		WHERE company_id = $1 AND employee_id = $2
		RETURNING id, company_id, employee_id, base_salary, created_at, updated_at
	`

	var s salarystructure.SalaryStructure
	err := q.QueryRow(ctx, query, structure.CompanyID, structure.EmployeeID, structure.BaseSalary).Scan(
		&s.ID, &s.CompanyID, &s.EmployeeID, &s.BaseSalary, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salarystructure.SalaryStructure{}, salarystructure.ErrStructureNotFound
		}
		return salarystructure.SalaryStructure{}, fmt.Errorf("failed to update salary structure: %w", err)
	}

	if componentIDs != nil {
		if err := r.replaceComponents(ctx, s.ID, *componentIDs); err != nil {
			return salarystructure.SalaryStructure{}, err
		}
	}

	return s, nil
}

func (r *salaryStructureRepository) Delete(ctx context.Context, companyID string, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM salary_structures
		WHERE company_id = $1 AND employee_id = $2
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, companyID, employeeID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salarystructure.ErrStructureNotFound
		}
		return fmt.Errorf("failed to delete salary structure: %w", err)
	}

	return nil
}

func (r *salaryStructureRepository) CountByComponentID(ctx context.Context, componentID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM salary_structure_components
		WHERE component_id = $1
	`

	var count int
	if err := q.QueryRow(ctx, query, componentID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count structures using component: %w", err)
	}

	return count, nil
}

// ListEmployeeIDsWithComponent returns the active employees whose structure
// includes the component, for allowance payrun entitlement.
func (r *salaryStructureRepository) ListEmployeeIDsWithComponent(ctx context.Context, companyID string, componentID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.employee_id
		FROM salary_structures ss
		JOIN salary_structure_components ssc ON ssc.salary_structure_id = ss.id
		JOIN employees e ON e.id = ss.employee_id
		WHERE ss.company_id = $1 AND ssc.component_id = $2
		  AND e.employment_status = 'active' AND e.deleted_at IS NULL
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, companyID, componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitled employees: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
