package executors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"labelguard/application"
	"labelguard/domain/jobs"
	"labelguard/domain/labels"
	"labelguard/test/helpers"
)

func newExecutorFixture(workers int) (*BatchClassificationExecutor, *helpers.MockCollaborators) {
	mocks := helpers.NewMockCollaborators()
	classification := application.NewClassificationService(mocks.LabelRepo, mocks.Encryptor, labels.NewValidator())
	grounding := application.NewGroundingService(mocks.GroundingRepo, mocks.LabelRepo, classification, mocks.Encryptor, mocks.Publisher)
	return NewBatchClassificationExecutor(grounding, workers), mocks
}

func noopProgress(string, string, int, int, int) {}

func TestBatchExecutor_ClassifiesAllItems(t *testing.T) {
	executor, mocks := newExecutorFixture(2)
	data := helpers.NewTestData()

	public := data.SimpleLabel("default-public", labels.TierPublic)
	restricted := data.SimpleLabel("pii-restricted", labels.TierRestricted)
	mocks.ExpectLabelsAtTier(labels.TierPublic, []*labels.Label{public})
	mocks.ExpectLabelsAtTier(labels.TierRestricted, []*labels.Label{restricted})
	mocks.GroundingRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	mocks.Publisher.On("PublishContentClassified", mock.Anything).Return()

	job := jobs.NewBatchClassificationJob([]jobs.BatchItem{
		{Content: "plain note", Source: "wiki"},
		{Content: "ssn 123-45-6789", Source: "hr"},
	})

	err := executor.Execute(context.Background(), job, noopProgress)

	require.NoError(t, err)
	assert.Equal(t, 2, job.Stats.ItemsClassified)
	assert.Equal(t, 0, job.Stats.ItemsFailed)
	assert.Equal(t, 1, job.Stats.PatternsDetected, "only the SSN item carries a pattern")
	assert.Equal(t, int(labels.TierRestricted), job.Stats.HighestTierOrdinal)
}

func TestBatchExecutor_AllItemsFailingIsAnError(t *testing.T) {
	executor, mocks := newExecutorFixture(1)
	data := helpers.NewTestData()

	public := data.SimpleLabel("default-public", labels.TierPublic)
	mocks.ExpectLabelsAtTier(labels.TierPublic, []*labels.Label{public})
	mocks.GroundingRepo.On("Save", mock.Anything, mock.Anything).
		Return(assert.AnError)

	job := jobs.NewBatchClassificationJob([]jobs.BatchItem{{Content: "plain"}})

	err := executor.Execute(context.Background(), job, noopProgress)

	require.Error(t, err)
	assert.Equal(t, 1, job.Stats.ItemsFailed)
	assert.Equal(t, 0, job.Stats.ItemsClassified)
}

func TestBatchExecutor_CancelledContext(t *testing.T) {
	executor, _ := newExecutorFixture(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := jobs.NewBatchClassificationJob([]jobs.BatchItem{{Content: "a"}, {Content: "b"}})

	err := executor.Execute(ctx, job, noopProgress)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 2, job.Stats.ItemsFailed)
}
