package users

import (
	"io/fs"
	"testing"

	"github.com/dmitrijs2005/userauth/internal/server/migrations"
	"github.com/stretchr/testify/require"
)

func mustSub(t *testing.T, dir string) fs.FS {
	t.Helper()
	sub, err := fs.Sub(migrations.Migrations, dir)
	require.NoError(t, err)
	return sub
}
