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
	"labelguard/domain/labels"
)

// SqliteLabelRepository implements contracts.LabelRepository on SQLite with
// read/write separation.
type SqliteLabelRepository struct {
	*BaseRepository
}

// NewSqliteLabelRepository creates a new label repository with read/write database separation.
func NewSqliteLabelRepository(database *database.Database) contracts.LabelRepository {
	return &SqliteLabelRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

const labelColumns = `id, name, description, priority,
	require_encryption, prevent_extraction, prevent_copy_paste, prevent_grounding,
	allowed_users, allowed_groups, expires_at, custom_properties,
	active, created_at, updated_at`

// GetByID retrieves a label by id.
func (r *SqliteLabelRepository) GetByID(ctx context.Context, id string) (*labels.Label, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE id = ?`, id)
	label, err := r.scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.NewLabelNotFound(id)
	}
	return label, err
}

// GetByName retrieves a label by name, preferring active labels.
func (r *SqliteLabelRepository) GetByName(ctx context.Context, name string) (*labels.Label, error) {
	row := r.ReadDB().QueryRowContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE name = ? ORDER BY active DESC LIMIT 1`, name)
	label, err := r.scanLabel(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, contracts.NewLabelNotFound(name)
	}
	return label, err
}

// GetByPriority retrieves all active labels at the given tier.
func (r *SqliteLabelRepository) GetByPriority(ctx context.Context, tier labels.PriorityTier) ([]*labels.Label, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT `+labelColumns+` FROM labels WHERE priority = ? AND active = 1 ORDER BY created_at`, int(tier))
	if err != nil {
		return nil, fmt.Errorf("failed to query labels by priority: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

// GetAll retrieves every stored label.
func (r *SqliteLabelRepository) GetAll(ctx context.Context) ([]*labels.Label, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT `+labelColumns+` FROM labels ORDER BY priority DESC, created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
	}
	defer rows.Close()
	return r.scanLabels(rows)
}

// Create persists a new label. Duplicate ids and duplicate active names are
// rejected.
func (r *SqliteLabelRepository) Create(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	now := time.Now().UTC()
	stored := label.Clone()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	var exists int
	err := r.ReadDB().QueryRowContext(ctx,
		`SELECT COUNT(1) FROM labels WHERE id = ?`, stored.ID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check label id: %w", err)
	}
	if exists > 0 {
		return nil, ErrDuplicateLabel{Field: "id", Value: stored.ID}
	}

	err = r.ReadDB().QueryRowContext(ctx,
		`SELECT COUNT(1) FROM labels WHERE name = ? AND active = 1`, stored.Name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check label name: %w", err)
	}
	if stored.Active && exists > 0 {
		return nil, ErrDuplicateLabel{Field: "name", Value: stored.Name}
	}

	if err := r.execUpsert(ctx, `INSERT INTO labels (`+labelColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, stored); err != nil {
		return nil, fmt.Errorf("failed to insert label %s: %w", stored.ID, err)
	}
	return stored, nil
}

// Update persists changes to an existing label, refreshing UpdatedAt and
// preserving CreatedAt.
func (r *SqliteLabelRepository) Update(ctx context.Context, label *labels.Label) (*labels.Label, error) {
	existing, err := r.GetByID(ctx, label.ID)
	if err != nil {
		return nil, err
	}

	stored := label.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	users, groups, props, err := marshalLabelJSON(stored)
	if err != nil {
		return nil, err
	}

	_, err = r.WriteDB().ExecContext(ctx,
		`UPDATE labels SET name = ?, description = ?, priority = ?,
			require_encryption = ?, prevent_extraction = ?, prevent_copy_paste = ?, prevent_grounding = ?,
			allowed_users = ?, allowed_groups = ?, expires_at = ?, custom_properties = ?,
			active = ?, updated_at = ?
		WHERE id = ?`,
		stored.Name, stored.Description, int(stored.Priority),
		stored.Protection.RequireEncryption, stored.Protection.PreventExtraction,
		stored.Protection.PreventCopyPaste, stored.Protection.PreventGrounding,
		users, groups, r.ToNullTime(stored.Protection.ExpiresAt), props,
		stored.Active, stored.UpdatedAt,
		stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update label %s: %w", stored.ID, err)
	}
	return stored, nil
}

// Delete removes a label by id. Returns false when the id was not present.
func (r *SqliteLabelRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.WriteDB().ExecContext(ctx, `DELETE FROM labels WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete label %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SqliteLabelRepository) execUpsert(ctx context.Context, query string, l *labels.Label) error {
	users, groups, props, err := marshalLabelJSON(l)
	if err != nil {
		return err
	}
	_, err = r.WriteDB().ExecContext(ctx, query,
		l.ID, l.Name, l.Description, int(l.Priority),
		l.Protection.RequireEncryption, l.Protection.PreventExtraction,
		l.Protection.PreventCopyPaste, l.Protection.PreventGrounding,
		users, groups, r.ToNullTime(l.Protection.ExpiresAt), props,
		l.Active, l.CreatedAt, l.UpdatedAt)
	return err
}

// marshalLabelJSON serializes the slice/map fields stored as JSON columns.
func marshalLabelJSON(l *labels.Label) (users, groups, props string, err error) {
	u, err := json.Marshal(orEmptySlice(l.Protection.AllowedUsers))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal allowed users: %w", err)
	}
	g, err := json.Marshal(orEmptySlice(l.Protection.AllowedGroups))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal allowed groups: %w", err)
	}
	p, err := json.Marshal(orEmptyMap(l.CustomProperties))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to marshal custom properties: %w", err)
	}
	return string(u), string(g), string(p), nil
}

func orEmptySlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

// rowScanner lets scanLabel work for both QueryRow and Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SqliteLabelRepository) scanLabel(row rowScanner) (*labels.Label, error) {
	var (
		l         labels.Label
		priority  int
		users     string
		groups    string
		props     string
		expiresAt sql.NullTime
	)
	err := row.Scan(&l.ID, &l.Name, &l.Description, &priority,
		&l.Protection.RequireEncryption, &l.Protection.PreventExtraction,
		&l.Protection.PreventCopyPaste, &l.Protection.PreventGrounding,
		&users, &groups, &expiresAt, &props,
		&l.Active, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}

	l.Priority = labels.PriorityTier(priority)
	l.Protection.ExpiresAt = r.FromNullTime(expiresAt)
	if err := json.Unmarshal([]byte(users), &l.Protection.AllowedUsers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal allowed users for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal([]byte(groups), &l.Protection.AllowedGroups); err != nil {
		return nil, fmt.Errorf("failed to unmarshal allowed groups for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal([]byte(props), &l.CustomProperties); err != nil {
		return nil, fmt.Errorf("failed to unmarshal custom properties for %s: %w", l.ID, err)
	}
	if len(l.Protection.AllowedUsers) == 0 {
		l.Protection.AllowedUsers = nil
	}
	if len(l.Protection.AllowedGroups) == 0 {
		l.Protection.AllowedGroups = nil
	}
	if len(l.CustomProperties) == 0 {
		l.CustomProperties = nil
	}
	return &l, nil
}

func (r *SqliteLabelRepository) scanLabels(rows *sql.Rows) ([]*labels.Label, error) {
	var out []*labels.Label
	for rows.Next() {
		l, err := r.scanLabel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
