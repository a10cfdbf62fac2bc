package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mwit_alumni_backend/internals/constants"
	"mwit_alumni_backend/internals/databases/testdb"
	contentModel "mwit_alumni_backend/internals/features/home/contents/model"
	qaModel "mwit_alumni_backend/internals/features/home/qa/model"
	userModel "mwit_alumni_backend/internals/features/users/users/model"
)

func TestRunAllSeedsIsIdempotent(t *testing.T) {
	db := testdb.New(t, &userModel.UserModel{}, &contentModel.ContentBlock{}, &qaModel.QAItem{})

	require.NoError(t, RunAllSeeds(db))

	var admin userModel.UserModel
	require.NoError(t, db.First(&admin, "email = ?", "alumni.admin@mwit.ac.th").Error)
	assert.Equal(t, constants.RoleAdmin, admin.Role)

	// a demoted seed admin is not promoted again
	require.NoError(t, db.Model(&admin).Update("role", constants.RoleUser).Error)
	require.NoError(t, RunAllSeeds(db))
	require.NoError(t, db.First(&admin, "id = ?", admin.ID).Error)
	assert.Equal(t, constants.RoleUser, admin.Role)

	var users, blocks, items int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&users).Error)
	require.NoError(t, db.Model(&contentModel.ContentBlock{}).Count(&blocks).Error)
	require.NoError(t, db.Model(&qaModel.QAItem{}).Count(&items).Error)
	assert.EqualValues(t, 1, users)
	assert.EqualValues(t, 3, blocks)
	assert.EqualValues(t, 3, items)
}
