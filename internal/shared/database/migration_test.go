package database_test

import (
	"testing"

	"github.com/histolook/go-api-server/internal/model"
	"github.com/histolook/go-api-server/internal/shared/database"
	"github.com/histolook/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func lookupNames(t *testing.T, db *gorm.DB, table any) []string {
	t.Helper()

	var names []string
	require.NoError(t, db.Model(table).Order("id").Pluck("name", &names).Error)
	return names
}

func TestSeedLookups(t *testing.T) {
	// Given: SetupTestDB already migrated and seeded once
	db := testutil.SetupTestDB(t)

	// Then: every table holds its own seed values
	assert.Equal(t, database.DefaultBrands, lookupNames(t, db, &model.Brand{}))
	assert.Equal(t, database.DefaultTimelines, lookupNames(t, db, &model.Timeline{}))
	assert.Equal(t, database.DefaultCategories, lookupNames(t, db, &model.Category{}))

	// When: seeding runs again
	require.NoError(t, database.SeedLookups(db))

	// Then: nothing is duplicated
	assert.Equal(t, database.DefaultBrands, lookupNames(t, db, &model.Brand{}))
	assert.Equal(t, database.DefaultTimelines, lookupNames(t, db, &model.Timeline{}))
	assert.Equal(t, database.DefaultCategories, lookupNames(t, db, &model.Category{}))
}
