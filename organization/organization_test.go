package organization

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volunteermatch/volunteer-server-go/database"
)

func TestValidWebsite(t *testing.T) {
	assert.True(t, ValidWebsite(""))
	assert.True(t, ValidWebsite("https://example.org"))
	assert.True(t, ValidWebsite("http://example.org/volunteer?ref=1"))
	assert.True(t, ValidWebsite("example.org"))

	assert.False(t, ValidWebsite("not a url"))
	assert.False(t, ValidWebsite("visit https://example.org today"))
}

func TestExists(t *testing.T) {
	db, err := database.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Organization{}))

	org := Organization{Name: "Soup kitchen"}
	require.NoError(t, db.Create(&org).Error)

	found, err := Exists(db, org.ID)
	assert.NoError(t, err)
	assert.True(t, found)

	found, err = Exists(db, org.ID+1)
	assert.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Migrator().DropTable(&Organization{}))

	found, err = Exists(db, org.ID)
	assert.Error(t, err)
	assert.False(t, found)
}
