package session

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/markbook/internal/common"
	"github.com/dmitrijs2005/markbook/internal/models"
)

func TestSession_EmptyByDefault(t *testing.T) {
	var s Session

	email, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, email)
	assert.Empty(t, s.ID())

	_, err := s.RequireAuthenticated()
	require.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestSession_SignIn(t *testing.T) {
	s := New()
	id := s.SignIn(models.Account{Email: "ann@uni.example"})

	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, s.ID())

	email, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "ann@uni.example", email)

	email, err = s.RequireAuthenticated()
	require.NoError(t, err)
	assert.Equal(t, "ann@uni.example", email)
}

func TestSession_SignInReplaces(t *testing.T) {
	s := New()
	first := s.SignIn(models.Account{Email: "a@x.example"})
	second := s.SignIn(models.Account{Email: "b@x.example"})

	assert.NotEqual(t, first, second)
	email, _ := s.Current()
	assert.Equal(t, "b@x.example", email)
}

func TestSession_ConcurrentReaders(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SignIn(models.Account{Email: "ann@uni.example"})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.RequireAuthenticated()
		}()
	}
	wg.Wait()

	email, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "ann@uni.example", email)
}
