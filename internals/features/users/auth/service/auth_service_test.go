package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	"mwit_alumni_backend/internals/features/users/users/model"
)

func newService(t *testing.T) (*AuthService, *gorm.DB) {
	db := testdb.New(t, &model.UserModel{})
	return &AuthService{
		DB:             db,
		AllowedDomains: []string{"mwit.ac.th", "gmail.com"},
		AdminEmails:    []string{"boss@mwit.ac.th"},
	}, db
}

// upsert fails the test instead of hanging when UpsertUser does not return.
func upsert(t *testing.T, s *AuthService, id *GoogleIdentity) (*model.UserModel, error) {
	t.Helper()
	type result struct {
		u   *model.UserModel
		err error
	}
	done := make(chan result, 1)
	go func() {
		u, err := s.UpsertUser(context.Background(), id, nil)
		done <- result{u, err}
	}()
	select {
	case r := <-done:
		return r.u, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("UpsertUser did not return")
		return nil, nil
	}
}

func TestUpsertUserFollowsGoogleAccountToNewEmail(t *testing.T) {
	s, db := newService(t)

	first, err := upsert(t, s, &GoogleIdentity{Sub: "G1", Email: "old@gmail.com", Name: "Ploy"})
	require.NoError(t, err)
	require.NoError(t, db.Model(first).Update("role", constants.RoleAdmin).Error)

	again, err := upsert(t, s, &GoogleIdentity{Sub: "G1", Email: "new@mwit.ac.th", Name: "Ploy"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	var got model.UserModel
	require.NoError(t, db.First(&got, "id = ?", first.ID).Error)
	assert.Equal(t, "new@mwit.ac.th", got.Email)
	assert.Equal(t, constants.RoleAdmin, got.Role)

	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUpsertUserGoogleIDOwnedByAnotherUser(t *testing.T) {
	s, db := newService(t)

	_, err := upsert(t, s, &GoogleIdentity{Sub: "G1", Email: "a@gmail.com"})
	require.NoError(t, err)
	_, err = upsert(t, s, &GoogleIdentity{Sub: "G2", Email: "b@gmail.com"})
	require.NoError(t, err)

	// a@gmail.com now signs in with the account already bound to b@gmail.com
	_, err = upsert(t, s, &GoogleIdentity{Sub: "G2", Email: "a@gmail.com"})
	assert.ErrorIs(t, err, ErrIdentityConflict)

	var a model.UserModel
	require.NoError(t, db.First(&a, "email = ?", "a@gmail.com").Error)
	require.NotNil(t, a.GoogleID)
	assert.Equal(t, "G1", *a.GoogleID)
}

func TestUpsertUserCreatesOnce(t *testing.T) {
	s, db := newService(t)

	u, err := upsert(t, s, &GoogleIdentity{Sub: "G9", Email: "boss@mwit.ac.th"})
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, u.Role)
	assert.Equal(t, "boss", u.Name)

	_, err = upsert(t, s, &GoogleIdentity{Sub: "G9", Email: "boss@mwit.ac.th", Name: "Boss"})
	require.NoError(t, err)

	var n int64
	require.NoError(t, db.Model(&model.UserModel{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	_, err = upsert(t, s, &GoogleIdentity{Sub: "G10", Email: "x@yahoo.com"})
	assert.ErrorIs(t, err, ErrDomainNotAllowed)
}
