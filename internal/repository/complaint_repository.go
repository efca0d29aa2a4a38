package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/complainthub/complaint-service/internal/domain"
)

// ComplaintFilter captures list query parameters. Nil members are ignored.
type ComplaintFilter struct {
	Status    *domain.ComplaintStatus
	Category  *domain.ComplaintCategory
	Priority  *domain.ComplaintPriority
	Search    *string
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// ComplaintRepository encapsulates complaint persistence.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, int, error)
	CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error)
	CountByPriority(ctx context.Context) (map[domain.ComplaintPriority]int, error)
}

type complaintRepository struct {
	pool PgxPool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool PgxPool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, title, description, category, priority, status, customer_name,
               customer_email, customer_phone, assigned_to, notes, created_at, updated_at, resolved_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (id, title, description, category, priority, status, customer_name, customer_email, customer_phone, assigned_to, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.ID,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Priority,
		complaint.Status,
		complaint.CustomerName,
		complaint.CustomerEmail,
		complaint.CustomerPhone,
		complaint.AssignedTo,
		complaint.Notes,
	).Scan(&complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET title=$1, description=$2, category=$3, priority=$4, status=$5,
            customer_name=$6, customer_email=$7, customer_phone=$8, assigned_to=$9, notes=$10,
            resolved_at=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Title,
		complaint.Description,
		complaint.Category,
		complaint.Priority,
		complaint.Status,
		complaint.CustomerName,
		complaint.CustomerEmail,
		complaint.CustomerPhone,
		complaint.AssignedTo,
		complaint.Notes,
		complaint.ResolvedAt,
		complaint.ID,
	).Scan(&complaint.UpdatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	query := `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.Title,
		&complaint.Description,
		&complaint.Category,
		&complaint.Priority,
		&complaint.Status,
		&complaint.CustomerName,
		&complaint.CustomerEmail,
		&complaint.CustomerPhone,
		&complaint.AssignedTo,
		&complaint.Notes,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
		&complaint.ResolvedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// likeEscaper neutralizes LIKE wildcards in caller-supplied search terms.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// sortColumns is the allow-list for caller-supplied sort fields.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"priority":  "priority",
}

func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if filter.Priority != nil {
		args = append(args, *filter.Priority)
		clauses = append(clauses, fmt.Sprintf("priority=$%d", len(args)))
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + escapeLike(strings.ToLower(strings.TrimSpace(*filter.Search))) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(title) LIKE %s OR LOWER(description) LIKE %s OR LOWER(customer_name) LIKE %s OR LOWER(customer_email) LIKE %s)",
			placeholder, placeholder, placeholder, placeholder))
	}

	where := strings.Join(clauses, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM complaints WHERE ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		direction = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	// Secondary sort keeps pagination stable when the primary key ties.
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY %s %s, created_at ASC, id ASC LIMIT %d OFFSET %d`,
		complaintColumns, where, sortCol, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanComplaints(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *complaintRepository) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM complaints GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ComplaintStatus]int)
	for rows.Next() {
		var status domain.ComplaintStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *complaintRepository) CountByPriority(ctx context.Context) (map[domain.ComplaintPriority]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT priority, COUNT(*) FROM complaints GROUP BY priority`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.ComplaintPriority]int)
	for rows.Next() {
		var priority domain.ComplaintPriority
		var count int
		if err := rows.Scan(&priority, &count); err != nil {
			return nil, err
		}
		counts[priority] = count
	}
	return counts, rows.Err()
}

func scanComplaints(rows pgx.Rows) ([]domain.Complaint, error) {
	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.Title,
			&complaint.Description,
			&complaint.Category,
			&complaint.Priority,
			&complaint.Status,
			&complaint.CustomerName,
			&complaint.CustomerEmail,
			&complaint.CustomerPhone,
			&complaint.AssignedTo,
			&complaint.Notes,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
			&complaint.ResolvedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}
