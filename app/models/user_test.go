package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUser(t *testing.T) {
	user, err := CreateUser("Maria Silva", "maria@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "Maria Silva", user.Name)
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, CheckPasswordHash("secret123", user.Password))
	assert.False(t, CheckPasswordHash("wrong", user.Password))
}

func TestCreateUserValidation(t *testing.T) {
	_, err := CreateUser("Ma", "maria@example.com", "secret123")
	assert.Error(t, err, "name below minimum length must fail")

	_, err = CreateUser("Maria Silva", "not-an-email", "secret123")
	assert.Error(t, err, "invalid email must fail")
}

func TestUserIsActive(t *testing.T) {
	user := &User{Status: STATUS_ACTIVE}
	assert.True(t, user.IsActive())

	user.Status = STATUS_DISABLED
	assert.False(t, user.IsActive())
}
