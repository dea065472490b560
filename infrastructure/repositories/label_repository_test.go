package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labelguard/database"
	"labelguard/domain/contracts"
	"labelguard/domain/grounding"
	"labelguard/domain/labels"
	"labelguard/logging"
)

func openTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	logger := logging.NewLogger(&logging.Config{Level: "error", Format: "text", Output: "stderr"})
	db, err := database.New(database.Config{
		Path:              filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns:      4,
		MaxIdleConns:      2,
		ConnMaxLifetime:   time.Minute,
		ConnMaxIdleTime:   time.Minute,
		BusyTimeoutMs:     1000,
		EnableForeignKeys: true,
		EnableWAL:         false,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func storedLabel(id, name string, tier labels.PriorityTier) *labels.Label {
	expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	return &labels.Label{
		ID:          id,
		Name:        name,
		Description: "test label",
		Priority:    tier,
		Protection: labels.ProtectionSettings{
			RequireEncryption: tier >= labels.TierConfidential,
			PreventCopyPaste:  tier >= labels.TierHighlyConfidential,
			AllowedUsers:      []string{"alice@example.com"},
			ExpiresAt:         &expires,
		},
		CustomProperties: map[string]string{"owner": "security"},
		Active:           true,
	}
}

func TestLabelRepository_CreateAndGetRoundTrip(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, storedLabel("finance-conf", "Finance Confidential", labels.TierConfidential))
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, "finance-conf")
	require.NoError(t, err)
	assert.Equal(t, "Finance Confidential", got.Name)
	assert.Equal(t, labels.TierConfidential, got.Priority)
	assert.True(t, got.Protection.RequireEncryption)
	assert.Equal(t, []string{"alice@example.com"}, got.Protection.AllowedUsers)
	assert.Equal(t, map[string]string{"owner": "security"}, got.CustomProperties)
	require.NotNil(t, got.Protection.ExpiresAt)
	assert.Equal(t, 2030, got.Protection.ExpiresAt.Year())

	byName, err := repo.GetByName(ctx, "Finance Confidential")
	require.NoError(t, err)
	assert.Equal(t, "finance-conf", byName.ID)
}

func TestLabelRepository_MissingLabelIsNotFoundKind(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))

	_, err := repo.GetByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, contracts.IsKind(err, contracts.KindLabelNotFound))
}

func TestLabelRepository_DuplicatesRejected(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, storedLabel("dup-id", "First", labels.TierInternal))
	require.NoError(t, err)

	_, err = repo.Create(ctx, storedLabel("dup-id", "Second", labels.TierInternal))
	var dup ErrDuplicateLabel
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "id", dup.Field)

	_, err = repo.Create(ctx, storedLabel("other-id", "First", labels.TierInternal))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "name", dup.Field)
}

func TestLabelRepository_GetByPriorityReturnsActiveOnly(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))
	ctx := context.Background()

	active := storedLabel("conf-active", "Active Confidential", labels.TierConfidential)
	inactive := storedLabel("conf-inactive", "Inactive Confidential", labels.TierConfidential)
	inactive.Active = false

	_, err := repo.Create(ctx, active)
	require.NoError(t, err)
	_, err = repo.Create(ctx, inactive)
	require.NoError(t, err)
	_, err = repo.Create(ctx, storedLabel("pub", "Public", labels.TierPublic))
	require.NoError(t, err)

	got, err := repo.GetByPriority(ctx, labels.TierConfidential)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "conf-active", got[0].ID)
}

func TestLabelRepository_UpdatePreservesCreatedAt(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))
	ctx := context.Background()

	created, err := repo.Create(ctx, storedLabel("ops", "Ops", labels.TierInternal))
	require.NoError(t, err)

	changed := created.Clone()
	changed.Description = "updated"
	changed.Priority = labels.TierConfidential

	updated, err := repo.Update(ctx, changed)
	require.NoError(t, err)
	// Stored timestamps round-trip through the driver's text encoding, so
	// compare within a tolerance instead of exact equality.
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Second)

	got, err := repo.GetByID(ctx, "ops")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Description)
	assert.Equal(t, labels.TierConfidential, got.Priority)
}

func TestLabelRepository_Delete(t *testing.T) {
	repo := NewSqliteLabelRepository(openTestDatabase(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, storedLabel("gone", "Gone", labels.TierPublic))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "gone")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "gone")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestGroundingRepository_SaveAndGetResolvesLabel(t *testing.T) {
	db := openTestDatabase(t)
	labelRepo := NewSqliteLabelRepository(db)
	repo := NewSqliteGroundingRepository(db, labelRepo)
	ctx := context.Background()

	label, err := labelRepo.Create(ctx, storedLabel("pii", "PII", labels.TierRestricted))
	require.NoError(t, err)

	item := &grounding.GroundingData{
		ID:       "g-1",
		Content:  "ssn 123-45-6789",
		Source:   "hr",
		DataType: grounding.DataTypeText,
		Label:    label,
		Metadata: map[string]string{"batch": "import-1"},
	}
	require.NoError(t, repo.Save(ctx, item))

	got, err := repo.GetByID(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "hr", got.Source)
	require.NotNil(t, got.Label)
	assert.Equal(t, "pii", got.Label.ID)
	assert.Equal(t, labels.TierRestricted, got.EffectiveTier())
	assert.Equal(t, map[string]string{"batch": "import-1"}, got.Metadata)
}

func TestGroundingRepository_MissingItemIsNotFoundKind(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewSqliteGroundingRepository(db, NewSqliteLabelRepository(db))

	_, err := repo.GetByID(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, contracts.IsKind(err, contracts.KindGroundingNotFound))
}

func TestGroundingRepository_SaveIsUpsert(t *testing.T) {
	db := openTestDatabase(t)
	repo := NewSqliteGroundingRepository(db, NewSqliteLabelRepository(db))
	ctx := context.Background()

	item := &grounding.GroundingData{ID: "g-2", Content: "first", DataType: grounding.DataTypeText}
	require.NoError(t, repo.Save(ctx, item))

	item.Content = "second"
	require.NoError(t, repo.Save(ctx, item))

	got, err := repo.GetByID(ctx, "g-2")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Content)
	assert.Nil(t, got.Label)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
