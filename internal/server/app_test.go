package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/userauth/internal/common"
	"github.com/dmitrijs2005/userauth/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(driver, dsn string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDriver = driver
	c.DatabaseDSN = dsn
	c.BcryptCost = bcrypt.MinCost
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(config.DriverMemory, ""))
	require.NoError(t, err)
	require.NotNil(t, app.authService)
	assert.Nil(t, app.db)
	assert.NoError(t, app.Close())
}

func TestNewApp_SQLiteFile(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "nested", "userauth.db")

	app, err := NewApp(ctx, testConfig(config.DriverSQLite, dsn))
	require.NoError(t, err)
	require.NotNil(t, app.db)
	defer app.Close()

	_, err = os.Stat(filepath.Dir(dsn))
	require.NoError(t, err)

	// migrations ran; the service works end to end on the file store
	_, err = app.authService.RegisterUser(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	_, err = app.authService.RegisterUser(ctx, "a@x.com", "pw1")
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	ok, err := app.authService.ValidLogin(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	_, err := NewApp(context.Background(), testConfig("oracle", "x"))
	require.Error(t, err)
}

func TestIsSQLiteFilePath(t *testing.T) {
	assert.True(t, isSQLiteFilePath("data/userauth.db"))
	assert.False(t, isSQLiteFilePath(":memory:"))
	assert.False(t, isSQLiteFilePath("file:x?mode=memory"))
	assert.False(t, isSQLiteFilePath(""))
}

func TestApp_Run_StopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(config.DriverMemory, ""))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
