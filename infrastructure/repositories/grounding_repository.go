package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"labelguard/database"
	"labelguard/domain/contracts"
	"labelguard/domain/grounding"
)

// SqliteGroundingRepository implements contracts.GroundingRepository on
// SQLite. Labels are stored by reference; fetching an item joins its label
// through the label repository.
type SqliteGroundingRepository struct {
	*BaseRepository
	labelRepo contracts.LabelRepository
}

// NewSqliteGroundingRepository creates a new grounding repository.
func NewSqliteGroundingRepository(database *database.Database, labelRepo contracts.LabelRepository) contracts.GroundingRepository {
	return &SqliteGroundingRepository{
		BaseRepository: NewBaseRepository(database),
		labelRepo:      labelRepo,
	}
}

// GetByID retrieves a grounding item by id, resolving its label reference.
func (r *SqliteGroundingRepository) GetByID(ctx context.Context, id string) (*grounding.GroundingData, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT id, content, source, data_type, label_id, metadata, created_at, updated_at
		FROM grounding_data WHERE id = ?`, id)
	item, err := r.scanItem(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.NewGroundingNotFound(id)
	}
	return item, err
}

// ListAll retrieves every stored grounding item.
func (r *SqliteGroundingRepository) ListAll(ctx context.Context) ([]*grounding.GroundingData, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT id, content, source, data_type, label_id, metadata, created_at, updated_at
		FROM grounding_data ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query grounding data: %w", err)
	}
	defer rows.Close()

	var out []*grounding.GroundingData
	for rows.Next() {
		item, err := r.scanItem(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save persists a grounding item, inserting or replacing by id.
func (r *SqliteGroundingRepository) Save(ctx context.Context, data *grounding.GroundingData) error {
	now := time.Now().UTC()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	if data.UpdatedAt.IsZero() {
		data.UpdatedAt = now
	}

	metadata, err := json.Marshal(orEmptyMap(data.Metadata))
	if err != nil {
		return fmt.Errorf("failed to marshal grounding metadata: %w", err)
	}

	var labelID sql.NullString
	if data.Label != nil {
		labelID = sql.NullString{String: data.Label.ID, Valid: true}
	}

	_, err = r.WriteDB().ExecContext(ctx,
		`INSERT INTO grounding_data (id, content, source, data_type, label_id, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			source = excluded.source,
			data_type = excluded.data_type,
			label_id = excluded.label_id,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at`,
		data.ID, data.Content, data.Source, string(data.DataType),
		labelID, string(metadata), data.CreatedAt, data.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save grounding data %s: %w", data.ID, err)
	}
	return nil
}

// Delete removes a grounding item by id.
func (r *SqliteGroundingRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.WriteDB().ExecContext(ctx, `DELETE FROM grounding_data WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete grounding data %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SqliteGroundingRepository) scanItem(ctx context.Context, row rowScanner) (*grounding.GroundingData, error) {
	var (
		item     grounding.GroundingData
		dataType string
		labelID  sql.NullString
		metadata string
	)
	err := row.Scan(&item.ID, &item.Content, &item.Source, &dataType,
		&labelID, &metadata, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}

	item.DataType = grounding.DataType(dataType)
	if err := json.Unmarshal([]byte(metadata), &item.Metadata); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", item.ID, err)
	}
	if len(item.Metadata) == 0 {
		item.Metadata = nil
	}

	// Resolve the label reference. A dangling reference is treated as
	// unclassified rather than an error; the row keeps its id via the
	// ON DELETE SET NULL constraint anyway.
	if labelID.Valid {
		label, err := r.labelRepo.GetByID(ctx, labelID.String)
		if err == nil {
			item.Label = label
		} else if !contracts.IsKind(err, contracts.KindLabelNotFound) {
			return nil, err
		}
	}
	return &item, nil
}
