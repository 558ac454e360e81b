package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/medichat/medichat"
	mcjson "github.com/medichat/medichat/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIdentity_V1Envelope(t *testing.T) {
	t.Parallel()
	id := medichat.Identity{Token: "tok", Name: "Budi Santoso", Role: medichat.RoleUser, Email: "b@x.id"}
	updated := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	data, err := mcjson.MarshalIdentity(id, updated)
	require.NoError(t, err)

	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &envelope))

	var version int
	require.NoError(t, json.Unmarshal(envelope["version"], &version))
	assert.Equal(t, 1, version)

	var name string
	require.NoError(t, json.Unmarshal(envelope["full_name"], &name))
	assert.Equal(t, "Budi Santoso", name)

	_, ok := envelope["updated_at"]
	assert.True(t, ok, "expected updated_at key in JSON")
}

func TestUnmarshalIdentity_UnsupportedVersion(t *testing.T) {
	t.Parallel()
	_, err := mcjson.UnmarshalIdentity([]byte(`{"version":2,"token":"x"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported envelope version: 2")
}

func TestUnmarshalIdentity_InvalidJSON(t *testing.T) {
	t.Parallel()
	_, err := mcjson.UnmarshalIdentity([]byte(`not json`))
	require.Error(t, err)
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "auth.json")
	store := mcjson.NewStore(path)
	id := medichat.Identity{Token: "tok", Name: "Super Admin", Role: medichat.RoleAdmin, Email: "admin@medichat.com"}

	require.NoError(t, store.Save(id))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestStore_SaveFilePermissions(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, mcjson.NewStore(path).Save(medichat.Identity{Token: "tok"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	assertNoTempFiles(t, filepath.Dir(path))
}

func TestStore_ConcurrentSavesFromTwoStores(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "auth.json")
	a, b := mcjson.NewStore(path), mcjson.NewStore(path)
	first := medichat.Identity{Token: "a", Name: "Budi", Role: medichat.RoleUser}
	second := medichat.Identity{Token: "b", Name: "Siti", Role: medichat.RoleAdmin}

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs <- a.Save(first)
		}()
		go func() {
			defer wg.Done()
			errs <- b.Save(second)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := a.Load()
	require.NoError(t, err)
	assert.Contains(t, []medichat.Identity{first, second}, got)
	assertNoTempFiles(t, filepath.Dir(path))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "auth-*.json"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files should be renamed away")
}

func TestStore_SaveOverwritesWholeIdentity(t *testing.T) {
	t.Parallel()
	store := mcjson.NewStore(filepath.Join(t.TempDir(), "auth.json"))
	require.NoError(t, store.Save(medichat.Identity{Token: "a", Name: "Budi", Role: medichat.RoleUser, Email: "b@x.id"}))
	require.NoError(t, store.Save(medichat.Identity{Name: "Budi", Role: medichat.RoleUser}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, medichat.Identity{Name: "Budi", Role: medichat.RoleUser}, got)
}

func TestStore_LoadMissingFile(t *testing.T) {
	t.Parallel()
	store := mcjson.NewStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, medichat.Identity{}, got)
	assert.False(t, got.LoggedIn())
}

func TestStore_LoadCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "auth.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := mcjson.NewStore(path).Load()
	require.Error(t, err)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "auth.json")
	store := mcjson.NewStore(path)
	require.NoError(t, store.Save(medichat.Identity{Token: "tok"}))

	require.NoError(t, store.Clear())
	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, medichat.Identity{}, got)

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestStore_WithAuthSession(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "auth.json")

	sess, err := medichat.NewAuthSession(mcjson.NewStore(path))
	require.NoError(t, err)
	_, err = sess.Login(medichat.LoginResult{AccessToken: "tok", FullName: "Budi", Email: "b@x.id"})
	require.NoError(t, err)
	require.NoError(t, sess.ClearToken())

	reopened, err := medichat.NewAuthSession(mcjson.NewStore(path))
	require.NoError(t, err)
	assert.Equal(t, medichat.Identity{Name: "Budi", Role: medichat.RoleUser, Email: "b@x.id"}, reopened.Current())
}
