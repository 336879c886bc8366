package usedparts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"ezypc-storefront/internal/models"
)

var (
	ErrPartNotFound    = errors.New("PART_NOT_FOUND")
	ErrDatabaseFailure = errors.New("DATABASE_OPERATION_FAILED")
)

type Repository interface {
	List(ctx context.Context) ([]models.UsedPart, error)
	Get(ctx context.Context, id string) (*models.UsedPart, error)
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error
	UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.UsedPart, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, component, grade, condition, price, image_url, details
		FROM used_parts
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: list used parts: %v", ErrDatabaseFailure, err)
	}
	defer rows.Close()

	parts := make([]models.UsedPart, 0)
	for rows.Next() {
		var p models.UsedPart
		if err := rows.Scan(&p.ID, &p.Component, &p.Grade, &p.Condition, &p.Price, &p.ImageURL, &p.Details); err != nil {
			return nil, fmt.Errorf("%w: scan used part: %v", ErrDatabaseFailure, err)
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate used parts: %v", ErrDatabaseFailure, err)
	}
	return parts, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.UsedPart, error) {
	var p models.UsedPart
	err := r.db.QueryRowContext(ctx, `
		SELECT id, component, grade, condition, price, image_url, details
		FROM used_parts
		WHERE id = $1`, id).
		Scan(&p.ID, &p.Component, &p.Grade, &p.Condition, &p.Price, &p.ImageURL, &p.Details)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get used part: %v", ErrDatabaseFailure, err)
	}
	return &p, nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS used_parts (
		id         TEXT PRIMARY KEY,
		component  TEXT NOT NULL,
		grade      TEXT NOT NULL CHECK (grade IN ('A', 'B', 'C')),
		condition  TEXT NOT NULL,
		price      INTEGER NOT NULL,
		image_url  TEXT NOT NULL DEFAULT '',
		details    TEXT NOT NULL DEFAULT '',
		position   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS part_inquiries (
		id             UUID PRIMARY KEY,
		part_id        TEXT NOT NULL REFERENCES used_parts (id),
		customer_name  TEXT NOT NULL,
		phone          TEXT NOT NULL,
		email          TEXT NOT NULL DEFAULT '',
		message        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_part_inquiries_part_id ON part_inquiries (part_id)`,
}

// EnsureSchema creates the used-parts tables when they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: ensure schema: %v", ErrDatabaseFailure, err)
		}
	}
	return nil
}

// Seed upserts parts inside one transaction, keeping their slice order.
func (r *PostgresRepository) Seed(ctx context.Context, parts []models.UsedPart) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin seed: %v", ErrDatabaseFailure, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range parts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO used_parts (id, component, grade, condition, price, image_url, details, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				component = EXCLUDED.component,
				grade = EXCLUDED.grade,
				condition = EXCLUDED.condition,
				price = EXCLUDED.price,
				image_url = EXCLUDED.image_url,
				details = EXCLUDED.details,
				position = EXCLUDED.position`,
			p.ID, p.Component, string(p.Grade), p.Condition, p.Price, p.ImageURL, p.Details, i,
		)
		if err != nil {
			return fmt.Errorf("%w: seed %s: %v", ErrDatabaseFailure, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit seed: %v", ErrDatabaseFailure, err)
	}
	return nil
}

func (r *PostgresRepository) CreateInquiry(ctx context.Context, inq *models.Inquiry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO part_inquiries (id, part_id, customer_name, phone, email, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		inq.ID, inq.PartID, inq.CustomerName, inq.Phone, inq.Email, inq.Message, string(inq.Status), inq.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: insert inquiry: %v", ErrDatabaseFailure, err)
	}
	return nil
}

func (r *PostgresRepository) UpdateInquiryStatus(ctx context.Context, id string, status models.InquiryStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE part_inquiries SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return fmt.Errorf("%w: update inquiry: %v", ErrDatabaseFailure, err)
	}
	return nil
}

// MemoryRepository serves a fixed inventory when no database is configured.
type MemoryRepository struct {
	mu        sync.RWMutex
	parts     []models.UsedPart
	inquiries map[string]models.Inquiry
}

func NewMemoryRepository(parts []models.UsedPart) *MemoryRepository {
	cp := make([]models.UsedPart, len(parts))
	copy(cp, parts)
	return &MemoryRepository{
		parts:     cp,
		inquiries: make(map[string]models.Inquiry),
	}
}

func (r *MemoryRepository) List(context.Context) ([]models.UsedPart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.UsedPart, len(r.parts))
	copy(out, r.parts)
	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, id string) (*models.UsedPart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parts {
		if p.ID == id {
			part := p
			return &part, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPartNotFound, id)
}

func (r *MemoryRepository) CreateInquiry(_ context.Context, inq *models.Inquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inquiries[inq.ID] = *inq
	return nil
}

func (r *MemoryRepository) UpdateInquiryStatus(_ context.Context, id string, status models.InquiryStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	inq, ok := r.inquiries[id]
	if !ok {
		return fmt.Errorf("inquiry %s not found", id)
	}
	inq.Status = status
	r.inquiries[id] = inq
	return nil
}

func (r *MemoryRepository) Inquiry(id string) (models.Inquiry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inq, ok := r.inquiries[id]
	return inq, ok
}
