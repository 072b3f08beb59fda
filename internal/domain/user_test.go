package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "valid user",
			email:    "u@x.com",
			password: "secret1",
			wantErr:  nil,
		},
		{
			name:     "empty email",
			email:    "",
			password: "secret1",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "email without at sign",
			email:    "not-an-email",
			password: "secret1",
			wantErr:  ErrMalformedEmail,
		},
		{
			name:     "email without domain dot",
			email:    "u@localhost",
			password: "secret1",
			wantErr:  ErrMalformedEmail,
		},
		{
			name:     "email with trailing dot",
			email:    "u@example.",
			password: "secret1",
			wantErr:  ErrMalformedEmail,
		},
		{
			name:     "password too short",
			email:    "u@x.com",
			password: "12345",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password at minimum length",
			email:    "u@x.com",
			password: "123456",
			wantErr:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := NewUser(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.False(t, user.CreatedAt.IsZero())
		})
	}
}

func TestUserValidate_StoredUser(t *testing.T) {
	t.Parallel()

	// A user loaded from the store has no plaintext password.
	user := &User{Email: "u@x.com", HashedPassword: "$2a$12$something"}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
