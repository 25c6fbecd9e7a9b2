package cached

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/lavamax/console/internal/domain"
	"github.com/lavamax/console/internal/pkg/logger"
	"github.com/lavamax/console/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCacheMiss = errors.New("cache miss")

// fakeCache is an in-memory Cache with injectable failures.
type fakeCache struct {
	entries map[string]string
	getErr  error
	setErr  error
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return "", errCacheMiss
	}
	return value, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value.(string)
	return nil
}

func (f *fakeCache) Del(ctx context.Context, keys ...string) error {
	f.deleted = append(f.deleted, keys...)
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

// stubSource counts calls to the inner records client. Methods the tests
// never reach panic through the nil embedded interface.
type stubSource struct {
	records.Client

	vehicleLists    int
	employeeLists   int
	lastActiveOnly  bool
	vehiclesErr     error
	createdVehicles []domain.CreateVehicleRequest
	createErr       error
}

func (s *stubSource) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	s.vehicleLists++
	if s.vehiclesErr != nil {
		return nil, s.vehiclesErr
	}
	return []domain.Vehicle{{Plate: "XYZ789", VehicleTypeID: 1}}, nil
}

func (s *stubSource) ListEmployees(ctx context.Context, activeOnly bool) ([]domain.Employee, error) {
	s.employeeLists++
	s.lastActiveOnly = activeOnly
	return []domain.Employee{{ID: 7, Name: "Carlos", Active: true}}, nil
}

func (s *stubSource) CreateVehicle(ctx context.Context, req *domain.CreateVehicleRequest) (*domain.Vehicle, error) {
	s.createdVehicles = append(s.createdVehicles, *req)
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Vehicle{Plate: req.Plate, VehicleTypeID: req.VehicleTypeID}, nil
}

func newTestClient(source *stubSource, cache *fakeCache) *Client {
	return New(source, cache, time.Minute, logger.NewNoop())
}

// TestClient_ReadThroughFillsCache checks that a miss fetches from the
// source once and subsequent reads are served from the cache.
func TestClient_ReadThroughFillsCache(t *testing.T) {
	source := &stubSource{}
	cache := newFakeCache()
	client := newTestClient(source, cache)

	vehicles, err := client.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, 1, source.vehicleLists)
	assert.Contains(t, cache.entries, keyVehicles)

	vehicles, err = client.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "XYZ789", vehicles[0].Plate)
	assert.Equal(t, 1, source.vehicleLists)
}

// TestClient_CacheFailureDegradesToSource checks that a broken cache never
// fails a read: both the lookup and the fill may error and the source
// still serves.
func TestClient_CacheFailureDegradesToSource(t *testing.T) {
	source := &stubSource{}
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	client := newTestClient(source, cache)

	vehicles, err := client.ListVehicles(context.Background())
	require.NoError(t, err)
	assert.Len(t, vehicles, 1)
	assert.Equal(t, 1, source.vehicleLists)
	assert.Empty(t, cache.entries)
}

// TestClient_SourceErrorPropagates checks that on a miss a failing source
// surfaces its error and nothing is cached.
func TestClient_SourceErrorPropagates(t *testing.T) {
	source := &stubSource{vehiclesErr: errors.New("backend down")}
	cache := newFakeCache()
	client := newTestClient(source, cache)

	_, err := client.ListVehicles(context.Background())
	require.Error(t, err)
	assert.Empty(t, cache.entries)
}

// TestClient_CorruptEntryRefetched checks that an undecodable cache entry
// is dropped and the read falls through to the source.
func TestClient_CorruptEntryRefetched(t *testing.T) {
	source := &stubSource{}
	cache := newFakeCache()
	cache.entries[keyVehicles] = "{not json"
	client := newTestClient(source, cache)

	vehicles, err := client.ListVehicles(context.Background())
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, 1, source.vehicleLists)
	assert.Contains(t, cache.deleted, keyVehicles)

	// The refill is decodable again.
	var cachedVehicles []domain.Vehicle
	require.NoError(t, json.Unmarshal([]byte(cache.entries[keyVehicles]), &cachedVehicles))
	assert.Len(t, cachedVehicles, 1)
}

// TestClient_CreateVehicleInvalidatesVehicles checks the write-path
// invalidation: after a vehicle creation the next plate resolution must
// not see the stale list.
func TestClient_CreateVehicleInvalidatesVehicles(t *testing.T) {
	source := &stubSource{}
	cache := newFakeCache()
	cache.entries[keyVehicles] = `[{"placa":"XYZ789","id_tipo_vehiculo":1}]`
	client := newTestClient(source, cache)

	vehicle, err := client.CreateVehicle(context.Background(), &domain.CreateVehicleRequest{
		Plate:         "ABC123",
		VehicleTypeID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "ABC123", vehicle.Plate)
	require.Len(t, source.createdVehicles, 1)

	assert.Contains(t, cache.deleted, keyVehicles)
	assert.NotContains(t, cache.entries, keyVehicles)
}

// TestClient_CreateVehicleFailureKeepsCache checks that a rejected
// creation leaves the cached list alone: nothing changed upstream.
func TestClient_CreateVehicleFailureKeepsCache(t *testing.T) {
	source := &stubSource{createErr: errors.New("plate rejected")}
	cache := newFakeCache()
	cache.entries[keyVehicles] = `[{"placa":"XYZ789","id_tipo_vehiculo":1}]`
	client := newTestClient(source, cache)

	_, err := client.CreateVehicle(context.Background(), &domain.CreateVehicleRequest{
		Plate:         "ABC123",
		VehicleTypeID: 2,
	})
	require.Error(t, err)
	assert.Empty(t, cache.deleted)
	assert.Contains(t, cache.entries, keyVehicles)
}

// TestClient_FullEmployeeListBypassesCache checks that only the
// active-employee list is cached.
func TestClient_FullEmployeeListBypassesCache(t *testing.T) {
	source := &stubSource{}
	cache := newFakeCache()
	client := newTestClient(source, cache)

	_, err := client.ListEmployees(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, 1, source.employeeLists)
	assert.False(t, source.lastActiveOnly)
	assert.Empty(t, cache.entries)

	_, err = client.ListEmployees(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, source.lastActiveOnly)
	assert.Contains(t, cache.entries, keyEmployees)
}
