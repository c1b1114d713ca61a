package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/job-portal/internal/models"
)

const jobColumns = `id, title, category, company_name, location, company_logo,
			      description, min_salary, max_salary, experience, years,
			      employment_types, skills, expiry_date, featured, urgent`

// CreateJob сохраняет новую вакансию и возвращает её ID.
func (s *Storage) CreateJob(ctx context.Context, job models.Job) (int, error) {
	const op = "storage.CreateJob"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	employmentTypes, err := marshalNullable(job.EmploymentTypes)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	skills, err := marshalNullable(job.Skills)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var newID int
	query := `INSERT INTO jobs (title, category, company_name, location, company_logo,
			      description, min_salary, max_salary, experience, years,
			      employment_types, skills, expiry_date, featured, urgent)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9, 'freshman'), $10, $11, $12, $13, $14, $15)
			  RETURNING id;`
	experience := sql.NullString{String: job.Experience, Valid: job.Experience != ""}
	if err := s.DB.QueryRowContext(ctx, query,
		job.Title, job.Category, job.CompanyName, job.Location, job.CompanyLogo,
		job.Description, job.MinSalary, job.MaxSalary, experience, job.Years,
		employmentTypes, skills, job.ExpiryDate, job.Featured, job.Urgent).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetJob возвращает вакансию по её ID.
func (s *Storage) GetJob(ctx context.Context, id int) (*models.Job, error) {
	const op = "storage.GetJob"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + jobColumns + `
			  FROM jobs
			  WHERE id = $1`
	j, err := scanJob(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return j, nil
}

// ListJobs возвращает все вакансии в порядке создания.
func (s *Storage) ListJobs(ctx context.Context) ([]*models.Job, error) {
	const op = "storage.ListJobs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + jobColumns + `
			  FROM jobs
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, j)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateJob частично обновляет вакансию и возвращает обновленную запись.
func (s *Storage) UpdateJob(ctx context.Context, id int, entry models.UpdateJobEntry) (*models.Job, error) {
	const op = "storage.UpdateJob"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	employmentTypes, err := marshalNullable(entry.EmploymentTypes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	skills, err := marshalNullable(entry.Skills)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE jobs
			  SET title = COALESCE($2, title),
			      category = COALESCE($3, category),
			      company_name = COALESCE($4, company_name),
			      location = COALESCE($5, location),
			      company_logo = COALESCE($6, company_logo),
			      description = COALESCE($7, description),
			      min_salary = COALESCE($8, min_salary),
			      max_salary = COALESCE($9, max_salary),
			      experience = COALESCE($10, experience),
			      years = COALESCE($11, years),
			      employment_types = COALESCE($12, employment_types),
			      skills = COALESCE($13, skills),
			      expiry_date = COALESCE($14, expiry_date),
			      featured = COALESCE($15, featured),
			      urgent = COALESCE($16, urgent)
			  WHERE id = $1
			  RETURNING ` + jobColumns + `;`
	j, err := scanJob(s.DB.QueryRowContext(ctx, query, id,
		entry.Title, entry.Category, entry.CompanyName, entry.Location, entry.CompanyLogo,
		entry.Description, entry.MinSalary, entry.MaxSalary, entry.Experience, entry.Years,
		employmentTypes, skills, entry.ExpiryDate, entry.Featured, entry.Urgent))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return j, nil
}

// DeleteJob удаляет вакансию по ID и возвращает количество удалённых записей.
func (s *Storage) DeleteJob(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteJob"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// FillJobDefaults проставляет дефолтные значения в старых записях вакансий:
// пустой уровень опыта, отсутствующие массивы и флаги. Возвращает число
// исправленных записей.
func (s *Storage) FillJobDefaults(ctx context.Context) (int, error) {
	const op = "storage.FillJobDefaults"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE jobs
			  SET experience = COALESCE(NULLIF(experience, ''), 'freshman'),
			      employment_types = COALESCE(employment_types, '[]'::jsonb),
			      skills = COALESCE(skills, '[]'::jsonb),
			      featured = COALESCE(featured, FALSE),
			      urgent = COALESCE(urgent, FALSE)
			  WHERE experience IS NULL OR experience = ''
			     OR employment_types IS NULL OR skills IS NULL
			     OR featured IS NULL OR urgent IS NULL`
	result, err := s.DB.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// scanJob читает запись вакансии в порядке jobColumns.
func scanJob(row rowScanner) (*models.Job, error) {
	j := &models.Job{}

	var companyLogo, description, minSalary, maxSalary, years, expiryDate sql.NullString
	var employmentTypes, skills []byte

	if err := row.Scan(&j.ID, &j.Title, &j.Category, &j.CompanyName, &j.Location,
		&companyLogo, &description, &minSalary, &maxSalary, &j.Experience, &years,
		&employmentTypes, &skills, &expiryDate, &j.Featured, &j.Urgent); err != nil {
		return nil, err
	}

	if companyLogo.Valid {
		j.CompanyLogo = &companyLogo.String
	}
	if description.Valid {
		j.Description = &description.String
	}
	if minSalary.Valid {
		j.MinSalary = &minSalary.String
	}
	if maxSalary.Valid {
		j.MaxSalary = &maxSalary.String
	}
	if years.Valid {
		j.Years = &years.String
	}
	if expiryDate.Valid {
		j.ExpiryDate = &expiryDate.String
	}

	if err := unmarshalNullable(employmentTypes, &j.EmploymentTypes); err != nil {
		return nil, err
	}
	if err := unmarshalNullable(skills, &j.Skills); err != nil {
		return nil, err
	}
	return j, nil
}
