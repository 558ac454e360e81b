package medichat_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/medichat/medichat"
	"github.com/medichat/medichat/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	t.Parallel()

	t.Run("display name defaults", func(t *testing.T) {
		t.Parallel()
		var id medichat.Identity
		assert.Equal(t, "Pengguna", id.DisplayName())
		assert.Equal(t, "U", id.Initial())
		assert.False(t, id.LoggedIn())
	})

	t.Run("first name and initial", func(t *testing.T) {
		t.Parallel()
		id := medichat.Identity{Token: "t", Name: "budi santoso"}
		assert.Equal(t, "budi", id.FirstName())
		assert.Equal(t, "B", id.Initial())
		assert.True(t, id.LoggedIn())
	})

	t.Run("initial keeps a whole grapheme", func(t *testing.T) {
		t.Parallel()
		id := medichat.Identity{Name: "élise"}
		assert.Equal(t, "É", id.Initial())
	})
}

func TestAuthSession(t *testing.T) {
	t.Parallel()

	t.Run("loads stored identity", func(t *testing.T) {
		t.Parallel()
		store := &mock.MemoryStore{Identity: medichat.Identity{Token: "tok", Role: medichat.RoleAdmin}}
		s, err := medichat.NewAuthSession(store)
		require.NoError(t, err)
		assert.Equal(t, "tok", s.Token())
		assert.True(t, s.Current().IsAdmin())
	})

	t.Run("load failure is returned", func(t *testing.T) {
		t.Parallel()
		store := &mock.AuthStore{LoadFn: func() (medichat.Identity, error) {
			return medichat.Identity{}, errors.New("corrupt")
		}}
		_, err := medichat.NewAuthSession(store)
		assert.Error(t, err)
	})

	t.Run("login writes all fields at once", func(t *testing.T) {
		t.Parallel()
		var saves []medichat.Identity
		store := &mock.AuthStore{
			LoadFn: func() (medichat.Identity, error) { return medichat.Identity{}, nil },
			SaveFn: func(id medichat.Identity) error {
				saves = append(saves, id)
				return nil
			},
		}
		s, err := medichat.NewAuthSession(store)
		require.NoError(t, err)

		id, err := s.Login(medichat.LoginResult{AccessToken: "tok", FullName: "Budi", Email: "b@x.id"})
		require.NoError(t, err)

		want := medichat.Identity{Token: "tok", Name: "Budi", Role: medichat.RoleUser, Email: "b@x.id"}
		assert.Equal(t, want, id)
		assert.Equal(t, []medichat.Identity{want}, saves)
		assert.Equal(t, want, s.Current())
	})

	t.Run("failed save keeps previous identity", func(t *testing.T) {
		t.Parallel()
		store := &mock.AuthStore{
			LoadFn: func() (medichat.Identity, error) { return medichat.Identity{Token: "old"}, nil },
			SaveFn: func(medichat.Identity) error { return errors.New("disk full") },
		}
		s, err := medichat.NewAuthSession(store)
		require.NoError(t, err)

		_, err = s.Login(medichat.LoginResult{AccessToken: "new"})
		assert.Error(t, err)
		assert.Equal(t, "old", s.Token())
	})

	t.Run("clear token keeps profile fields", func(t *testing.T) {
		t.Parallel()
		store := &mock.MemoryStore{Identity: medichat.Identity{Token: "tok", Name: "Budi", Role: medichat.RoleUser}}
		s, err := medichat.NewAuthSession(store)
		require.NoError(t, err)

		require.NoError(t, s.ClearToken())

		assert.Equal(t, medichat.Identity{Name: "Budi", Role: medichat.RoleUser}, s.Current())
		assert.Equal(t, "", store.Identity.Token)
	})

	t.Run("clear token does not undo a concurrent login", func(t *testing.T) {
		t.Parallel()
		for range 200 {
			store := &mock.MemoryStore{Identity: medichat.Identity{Token: "old", Name: "Budi"}}
			s, err := medichat.NewAuthSession(store)
			require.NoError(t, err)

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = s.Login(medichat.LoginResult{AccessToken: "new", FullName: "Siti"})
			}()
			go func() {
				defer wg.Done()
				_ = s.ClearToken()
			}()
			wg.Wait()

			cur := s.Current()
			assert.Equal(t, "Siti", cur.Name)
			assert.Equal(t, store.Identity, cur)
		}
	})

	t.Run("logout clears everything", func(t *testing.T) {
		t.Parallel()
		store := &mock.MemoryStore{Identity: medichat.Identity{Token: "tok", Name: "Budi", Email: "b@x.id"}}
		s, err := medichat.NewAuthSession(store)
		require.NoError(t, err)

		require.NoError(t, s.Logout())

		assert.Equal(t, medichat.Identity{}, s.Current())
		assert.Equal(t, medichat.Identity{}, store.Identity)
	})
}
