package core

import "github.com/google/uuid"

// User is the identity carried by an active session. Passwords never
// leave the credential table.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// credential is a mock auth record. This is demo-grade on purpose:
// plaintext passwords, in-process only, no uniqueness check on email.
type credential struct {
	ID       string
	Name     string
	Email    string
	Password string
}

// seedCredentials returns the demo account every fresh store starts
// with. Each ShopStore owns its own table, so signups in one store
// never leak into another.
func seedCredentials() []credential {
	return []credential{
		{ID: "1", Name: "Demo User", Email: "demo@example.com", Password: "password123"},
	}
}

// Login attempts to authenticate against the credential table with an
// exact, case-sensitive match on email and password. On success the
// session is set to the matching identity and the auth modal closes.
// On failure the session is untouched and false is returned; surfacing
// an invalid-credentials message is the caller's job.
func (s *ShopStore) Login(email, password string) bool {
	s.mu.Lock()
	var matched *credential
	for i := range s.creds {
		if s.creds[i].Email == email && s.creds[i].Password == password {
			matched = &s.creds[i]
			break
		}
	}
	if matched == nil {
		s.mu.Unlock()
		s.logger.Debug("Login rejected", map[string]interface{}{
			"operation": "login",
			"email":     email,
			"error":     ErrInvalidCredentials.Error(),
		})
		return false
	}

	s.user = &User{ID: matched.ID, Name: matched.Name, Email: matched.Email}
	s.authModalOpen = false
	s.mu.Unlock()

	s.logger.Info("User logged in", map[string]interface{}{
		"operation": "login",
		"user_id":   s.User().ID,
	})
	s.commit("login")
	return true
}

// Signup appends a new credential record with a generated ID, signs the
// new identity in and closes the auth modal. It always succeeds:
// duplicate emails are not rejected, matching the mock auth contract.
func (s *ShopStore) Signup(name, email, password string) bool {
	id := uuid.NewString()

	s.mu.Lock()
	s.creds = append(s.creds, credential{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: password,
	})
	s.user = &User{ID: id, Name: name, Email: email}
	s.authModalOpen = false
	s.mu.Unlock()

	s.logger.Info("User signed up", map[string]interface{}{
		"operation": "signup",
		"user_id":   id,
	})
	s.commit("signup")
	return true
}

// Logout clears the session. Cart and likes are kept; signing out does
// not empty a shopper's basket.
func (s *ShopStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.commit("logout")
}
