package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/roi-admin-api/pkg/config"
)

func TestNewPoolConfig_Defaults(t *testing.T) {
	cfg := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "roi", SSLMode: "disable"}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "db", pc.ConnConfig.Host)
	assert.Equal(t, "roi", pc.ConnConfig.Database)
	assert.Equal(t, int32(25), pc.MaxConns)
	assert.Equal(t, int32(minConns), pc.MinConns)
	assert.Equal(t, lockTimeout, pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, applicationName, pc.ConnConfig.RuntimeParams["application_name"])
}

func TestNewPoolConfig_URLOverrides(t *testing.T) {
	cfg := config.DBConfig{
		DatabaseURL: "postgres://u:p@pg.local:6543/other?sslmode=disable&lock_timeout=1s",
		MaxConns:    1,
	}

	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "pg.local", pc.ConnConfig.Host)
	assert.Equal(t, uint16(6543), pc.ConnConfig.Port)
	assert.Equal(t, "1s", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, int32(1), pc.MaxConns)
	assert.Equal(t, int32(1), pc.MinConns)
}

func TestNewPoolConfig_InvalidDSN(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://u:p@host:notaport/db"})
	assert.Error(t, err)
}
