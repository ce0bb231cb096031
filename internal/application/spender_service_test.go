package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourwallet/ourwallet/internal/domain/entity"
)

func newSpenderFixture(t *testing.T) (*SpenderService, string) {
	t.Helper()
	users := newMemUserRepo()
	u := &entity.User{Email: "alice@example.com", Name: "Alice", Spenders: []string{entity.DefaultSpender}}
	require.NoError(t, users.Create(u))
	return NewSpenderService(users), u.ID
}

func TestAddSpender(t *testing.T) {
	svc, id := newSpenderFixture(t)

	spenders, err := svc.Add(id, "Alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Joint", "Alice"}, spenders)

	_, err = svc.Add(id, "Alice")
	assert.ErrorIs(t, err, ErrSpenderExists)

	_, err = svc.Add("ghost", "Bob")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRemoveSpender(t *testing.T) {
	svc, id := newSpenderFixture(t)

	_, err := svc.Add(id, "Alice")
	require.NoError(t, err)

	spenders, err := svc.Remove(id, "Joint")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, spenders)

	_, err = svc.Remove(id, "Joint")
	assert.ErrorIs(t, err, ErrSpenderNotFound)

	// The last remaining label cannot be removed.
	_, err = svc.Remove(id, "Alice")
	assert.ErrorIs(t, err, ErrLastSpender)
}
