package student

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uepex/internal/store"
)

func newSQLiteRepository(t *testing.T) *Repository {
	t.Helper()
	ctx := context.Background()
	db, err := store.NewDB(ctx, "sqlite://"+filepath.Join(t.TempDir(), "uepex.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewRepository(db.Client)
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestRepository_InsertAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)
	rec := Sample()

	got, err := repo.FindByKey(ctx, rec.DocumentNumber)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Insert(ctx, rec))

	got, err = repo.FindByKey(ctx, rec.DocumentNumber)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestRepository_DuplicateKeyIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)
	rec := Sample()
	require.NoError(t, repo.Insert(ctx, rec))

	rec.FirstName = "Otra"
	err := repo.Insert(ctx, rec)

	assert.ErrorIs(t, err, ErrConflict)
	got, err := repo.FindByKey(ctx, rec.DocumentNumber)
	require.NoError(t, err)
	assert.Equal(t, "María", got.FirstName)
}

func TestRepository_ListAllOrder(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)
	for _, r := range []Record{
		{DocumentNumber: "3", FirstName: "Luis", LastName: "Abreu"},
		{DocumentNumber: "2", FirstName: "Ana", LastName: "Peña"},
		{DocumentNumber: "9", FirstName: "Ana", LastName: "Báez"},
		{DocumentNumber: "1", FirstName: "Ana", LastName: "Báez"},
	} {
		require.NoError(t, repo.Insert(ctx, r))
	}

	got, err := repo.ListAll(ctx)

	require.NoError(t, err)
	var keys []string
	for _, r := range got {
		keys = append(keys, r.DocumentNumber)
	}
	assert.Equal(t, []string{"1", "9", "2", "3"}, keys)
}

func TestService_PersistTwiceWithRepository(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)
	svc := NewService(nil, repo, nil, nil)

	first := svc.Submit(ctx, Sample())
	second := svc.Submit(ctx, Sample())

	assert.Equal(t, CodeOK, first.Code)
	assert.Equal(t, CodeExists, second.Code)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestService_ConcurrentSubmissionsWriteOnce(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)
	svc := NewService(nil, repo, nil, nil)

	const workers = 8
	results := make([]Result, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = svc.Submit(ctx, Sample())
		}()
	}
	wg.Wait()

	ok := 0
	for _, res := range results {
		switch res.Code {
		case CodeOK:
			ok++
		case CodeExists:
		default:
			t.Fatalf("unexpected code %s", res.Code)
		}
	}
	assert.Equal(t, 1, ok)
	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
