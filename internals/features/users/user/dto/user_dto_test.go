package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	uModel "lmsku_backend/internals/features/users/user/model"
)

func validCreateRequest() CreateUserRequest {
	return CreateUserRequest{
		UserName: "jdoe",
		Email:    "jdoe@example.com",
		Password: "secret1",
		FullName: "John Doe",
		Role:     "student",
	}
}

func TestCreateUserRequestValidation(t *testing.T) {
	v := validator.New()

	t.Run("valid", func(t *testing.T) {
		r := validCreateRequest()
		assert.NoError(t, v.Struct(&r))
	})

	t.Run("password too short", func(t *testing.T) {
		r := validCreateRequest()
		r.Password = "12345"
		assert.Error(t, v.Struct(&r))
	})

	t.Run("unknown role", func(t *testing.T) {
		r := validCreateRequest()
		r.Role = "principal"
		assert.Error(t, v.Struct(&r))
	})

	t.Run("grade out of range", func(t *testing.T) {
		r := validCreateRequest()
		grade := 13
		r.Grade = &grade
		assert.Error(t, v.Struct(&r))

		grade = 12
		assert.NoError(t, v.Struct(&r))
	})

	t.Run("bad email", func(t *testing.T) {
		r := validCreateRequest()
		r.Email = "not-an-email"
		assert.Error(t, v.Struct(&r))
	})
}

func TestCreateUserRequestNormalize(t *testing.T) {
	r := CreateUserRequest{
		UserName: "  jdoe ",
		Email:    " JDoe@Example.COM ",
		FullName: " John Doe ",
		Role:     " Student ",
	}
	r.Normalize()

	assert.Equal(t, "jdoe", r.UserName)
	assert.Equal(t, "jdoe@example.com", r.Email)
	assert.Equal(t, "John Doe", r.FullName)
	assert.Equal(t, "student", r.Role)
}

func TestUpdateUserRequestApplyToModel(t *testing.T) {
	m := uModel.UserModel{
		UserName: "jdoe",
		Email:    "jdoe@example.com",
		Password: "$2a$10$storedhash",
		FullName: "John Doe",
		Role:     "student",
	}

	t.Run("omitted password keeps stored hash", func(t *testing.T) {
		name := "Jane Doe"
		r := UpdateUserRequest{FullName: &name}
		r.ApplyToModel(&m)

		assert.Equal(t, "Jane Doe", m.FullName)
		assert.Equal(t, "$2a$10$storedhash", m.Password)
		assert.Equal(t, "jdoe", m.UserName)
	})

	t.Run("present password replaces hash", func(t *testing.T) {
		pwd := "$2a$10$newhash"
		r := UpdateUserRequest{Password: &pwd}
		r.ApplyToModel(&m)
		require.Equal(t, "$2a$10$newhash", m.Password)
	})
}
