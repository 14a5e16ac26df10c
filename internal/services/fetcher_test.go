package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/careerdesk/jobboard/internal/clients/boards"
	"github.com/careerdesk/jobboard/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type mockListingsClient struct {
	calls    int
	listings []json.RawMessage
	err      error
}

func (m *mockListingsClient) GetJobs(_ boards.SearchParameters) ([]json.RawMessage, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.listings, nil
}

type mockJobsStore struct {
	batches [][]models.Job
}

func (m *mockJobsStore) SetAllJobs(jobs []models.Job) {
	m.batches = append(m.batches, jobs)
}

func (m *mockJobsStore) lastBatch() []models.Job {
	if len(m.batches) == 0 {
		return nil
	}
	return m.batches[len(m.batches)-1]
}

func Test_Fetcher_NormalizesAndFeedsStore(t *testing.T) {

	assert := assert.New(t)

	client := &mockListingsClient{listings: []json.RawMessage{
		json.RawMessage(`{"id":"j1","title":"Backend Engineer","company":"Acme"}`),
		json.RawMessage(`{"id":"j2","salary_from":"broken","title":"Designer"}`),
	}}
	store := &mockJobsStore{}

	fetcher := NewFetcher(client, store, 5*time.Minute)
	fetcher.Refresh()

	assert.Equal(1, client.calls)
	batch := store.lastBatch()
	assert.Len(batch, 2)
	assert.Equal("Backend Engineer", batch[0].Title)
	assert.Nil(batch[1].SalaryFrom)
}

func Test_Fetcher_ReusesBatchInsideFreshnessWindow(t *testing.T) {

	assert := assert.New(t)

	client := &mockListingsClient{listings: []json.RawMessage{
		json.RawMessage(`{"id":"j1","title":"Backend Engineer"}`),
	}}
	store := &mockJobsStore{}

	fetcher := NewFetcher(client, store, 5*time.Minute)
	fetcher.Refresh()
	fetcher.Refresh()

	assert.Equal(1, client.calls)
	assert.Len(store.batches, 2)
	assert.Equal(store.batches[0], store.batches[1])
}

func Test_Fetcher_ReusesLastBatchWhenRefetchFails(t *testing.T) {

	assert := assert.New(t)

	client := &mockListingsClient{listings: []json.RawMessage{
		json.RawMessage(`{"id":"j1","title":"Backend Engineer"}`),
	}}
	store := &mockJobsStore{}

	fetcher := NewFetcher(client, store, 5*time.Minute)
	fetcher.Refresh()

	// Freshness window over, next fetch fails.
	fetcher.cache.Delete(listingsCacheKey)
	client.err = errors.New("connection refused")
	fetcher.Refresh()

	assert.Equal(2, client.calls)
	batch := store.lastBatch()
	assert.Len(batch, 1)
	assert.Equal("j1", batch[0].ID)
	assert.Equal(models.SourceAPI, batch[0].Source)
}

func Test_Fetcher_FallsBackToSamplesOnFetchFailure(t *testing.T) {

	assert := assert.New(t)

	client := &mockListingsClient{err: errors.New("connection refused")}
	store := &mockJobsStore{}

	fetcher := NewFetcher(client, store, 5*time.Minute)
	fetcher.Refresh()

	batch := store.lastBatch()
	assert.NotEmpty(batch)
	for _, job := range batch {
		assert.Equal(models.SourceMock, job.Source)
	}
}
