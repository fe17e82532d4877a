package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginWithDemoCredentials(t *testing.T) {
	store, _ := newTestStore(t)
	store.SetAuthModalOpen(true)

	ok := store.Login("demo@example.com", "password123")

	require.True(t, ok)
	user := store.User()
	require.NotNil(t, user)
	assert.Equal(t, &User{ID: "1", Name: "Demo User", Email: "demo@example.com"}, user)
	assert.False(t, store.AuthModalOpen(), "successful login must close the auth modal")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store, _ := newTestStore(t)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "demo@example.com", "wrong"},
		{"unknown email", "nobody@example.com", "password123"},
		{"email is case-sensitive", "Demo@example.com", "password123"},
		{"password is case-sensitive", "demo@example.com", "Password123"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := store.Login(tt.email, tt.password)
			assert.False(t, ok)
			assert.Nil(t, store.User(), "failed login must leave the session untouched")
		})
	}
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	store, _ := newTestStore(t)
	require.True(t, store.Login("demo@example.com", "password123"))

	ok := store.Login("demo@example.com", "wrong")

	assert.False(t, ok)
	require.NotNil(t, store.User())
	assert.Equal(t, "1", store.User().ID)
}

func TestSignupCreatesSessionAndCredentials(t *testing.T) {
	store, _ := newTestStore(t)
	store.SetAuthModalOpen(true)

	ok := store.Signup("New Shopper", "new@example.com", "hunter22")

	require.True(t, ok)
	user := store.User()
	require.NotNil(t, user)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "New Shopper", user.Name)
	assert.Equal(t, "new@example.com", user.Email)
	assert.False(t, store.AuthModalOpen())

	// The new record is usable for a later login.
	store.Logout()
	require.Nil(t, store.User())
	require.True(t, store.Login("new@example.com", "hunter22"))
	assert.Equal(t, user.ID, store.User().ID)
}

func TestSignupGeneratesUniqueIDs(t *testing.T) {
	store, _ := newTestStore(t)

	store.Signup("A", "a@example.com", "pw")
	firstID := store.User().ID
	store.Signup("B", "b@example.com", "pw")
	secondID := store.User().ID

	assert.NotEqual(t, firstID, secondID)
}

func TestSignupAllowsDuplicateEmails(t *testing.T) {
	// Mock auth on purpose: duplicate emails are appended, not rejected.
	store, _ := newTestStore(t)

	assert.True(t, store.Signup("First", "same@example.com", "pw1"))
	assert.True(t, store.Signup("Second", "same@example.com", "pw2"))
	assert.Equal(t, "Second", store.User().Name)
}

func TestLogoutKeepsCartAndLikes(t *testing.T) {
	store, _ := newTestStore(t)
	require.True(t, store.Login("demo@example.com", "password123"))
	store.AddToCart("p1")
	store.ToggleLike("p2")

	store.Logout()

	assert.Nil(t, store.User())
	assert.Len(t, store.Cart(), 1)
	assert.Equal(t, []string{"p2"}, store.Likes())
}

func TestCredentialTablesAreIsolatedPerStore(t *testing.T) {
	first, _ := newTestStore(t)
	second, _ := newTestStore(t)

	require.True(t, first.Signup("Only Here", "here@example.com", "pw"))

	assert.False(t, second.Login("here@example.com", "pw"),
		"signup in one store must not leak into another")
}
