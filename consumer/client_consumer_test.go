package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"casepilot/models"
)

type cacheEntry struct {
	value      string
	expiration time.Duration
}

type fakeCache struct {
	entries map[string]cacheEntry
	deleted []string
	failSet bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]cacheEntry)}
}

func (f *fakeCache) GetFromCache(ctx context.Context, key string) (string, error) {
	if e, ok := f.entries[key]; ok {
		return e.value, nil
	}
	return "", errors.New("cache miss")
}

func (f *fakeCache) SetToCache(ctx context.Context, key, value string, expiration time.Duration) error {
	if f.failSet {
		return errors.New("redis unavailable")
	}
	f.entries[key] = cacheEntry{value: value, expiration: expiration}
	return nil
}

func (f *fakeCache) DeleteFromCache(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	delete(f.entries, key)
	return nil
}

func (f *fakeCache) Close() error { return nil }

type indexedDoc struct {
	index string
	id    string
}

type fakeES struct {
	indexed []indexedDoc
	deleted []indexedDoc
}

func (f *fakeES) IndexRecord(ctx context.Context, index, id string, document interface{}) error {
	f.indexed = append(f.indexed, indexedDoc{index: index, id: id})
	return nil
}

func (f *fakeES) SearchRecords(ctx context.Context, index string, query map[string]interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

func (f *fakeES) DeleteRecord(ctx context.Context, index, id string) error {
	f.deleted = append(f.deleted, indexedDoc{index: index, id: id})
	return nil
}

func (f *fakeES) Close() error { return nil }

func newTestConsumer(cache *fakeCache, es *fakeES) *ClientConsumer {
	c := &ClientConsumer{cache: cache, shutdown: make(chan struct{})}
	if es != nil {
		c.es = es
	}
	return c
}

func savedClient() models.Client {
	return models.Client{
		IfaNumber:          "123456",
		LastName:           "Muster",
		FirstName:          "Anna",
		Gender:             models.GenderFemale,
		RelationshipStatus: models.RelationshipSingle,
	}
}

func TestClientSavedCachesWithDayTTL(t *testing.T) {
	cache := newFakeCache()
	es := &fakeES{}
	c := newTestConsumer(cache, es)

	c.handleClientSaved(context.Background(), savedClient())

	entry, ok := cache.entries["client:123456"]
	if !ok {
		t.Fatalf("client not cached, entries: %v", cache.entries)
	}
	if entry.expiration != 24*time.Hour {
		t.Errorf("cache expiration = %v, want 24h", entry.expiration)
	}

	var cached models.Client
	if err := json.Unmarshal([]byte(entry.value), &cached); err != nil {
		t.Fatalf("cached value is not a client document: %v", err)
	}
	if cached.IfaNumber != "123456" || cached.LastName != "Muster" {
		t.Errorf("cached client = %+v, want full record", cached)
	}
}

func TestClientSavedIndexesInClients(t *testing.T) {
	es := &fakeES{}
	c := newTestConsumer(newFakeCache(), es)

	c.handleClientSaved(context.Background(), savedClient())

	if len(es.indexed) != 1 {
		t.Fatalf("indexed %d documents, want 1", len(es.indexed))
	}
	if got := es.indexed[0]; got.index != "clients" || got.id != "123456" {
		t.Errorf("indexed %+v, want index clients id 123456", got)
	}
}

func TestClientSavedWithoutElasticsearchStillCaches(t *testing.T) {
	cache := newFakeCache()
	c := newTestConsumer(cache, nil)

	c.handleClientSaved(context.Background(), savedClient())

	if _, ok := cache.entries["client:123456"]; !ok {
		t.Error("client not cached when the search projection is down")
	}
}

func TestClientSavedCacheFailureStillIndexes(t *testing.T) {
	cache := newFakeCache()
	cache.failSet = true
	es := &fakeES{}
	c := newTestConsumer(cache, es)

	c.handleClientSaved(context.Background(), savedClient())

	if len(es.indexed) != 1 {
		t.Errorf("indexed %d documents after cache failure, want 1", len(es.indexed))
	}
}

func TestClientDeletedDropsProjections(t *testing.T) {
	cache := newFakeCache()
	cache.entries["client:123456"] = cacheEntry{value: "{}", expiration: 24 * time.Hour}
	es := &fakeES{}
	c := newTestConsumer(cache, es)

	c.handleClientDeleted(context.Background(), "123456")

	if _, ok := cache.entries["client:123456"]; ok {
		t.Error("cache entry survived client_deleted")
	}
	if len(es.deleted) != 1 || es.deleted[0].index != "clients" || es.deleted[0].id != "123456" {
		t.Errorf("es deletions = %+v, want clients/123456", es.deleted)
	}
}

func TestDispatchRoutesByEventName(t *testing.T) {
	cache := newFakeCache()
	es := &fakeES{}
	c := newTestConsumer(cache, es)

	payload, err := json.Marshal(map[string]interface{}{
		"event": "client_saved",
		"data":  savedClient(),
	})
	if err != nil {
		t.Fatalf("marshaling event: %v", err)
	}
	var saved ClientEvent
	if err := json.Unmarshal(payload, &saved); err != nil {
		t.Fatalf("unmarshaling event: %v", err)
	}
	c.dispatch(context.Background(), saved)

	if _, ok := cache.entries["client:123456"]; !ok {
		t.Error("client_saved event did not reach the cache")
	}

	c.dispatch(context.Background(), ClientEvent{Event: "client_deleted", IfaNumber: "123456"})
	if _, ok := cache.entries["client:123456"]; ok {
		t.Error("client_deleted event did not drop the cache entry")
	}
}

func TestDispatchIgnoresUnknownEvents(t *testing.T) {
	cache := newFakeCache()
	es := &fakeES{}
	c := newTestConsumer(cache, es)

	c.dispatch(context.Background(), ClientEvent{Event: "client_archived", IfaNumber: "123456"})

	if len(cache.entries) != 0 || len(cache.deleted) != 0 || len(es.indexed) != 0 || len(es.deleted) != 0 {
		t.Error("unknown event touched a projection")
	}
}
