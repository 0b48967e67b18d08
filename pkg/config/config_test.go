package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CLIENT_ORIGIN", "")
	t.Setenv("JWT_EXPIRY", "86400")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, []string{"*"}, cfg.ClientOrigins)
	assert.Equal(t, int64(24*60*60), cfg.JWTExpiry)
}

func TestLoadClientOrigins(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CLIENT_ORIGIN", "http://localhost:5173, https://ecofinds.app ,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:5173", "https://ecofinds.app"}, cfg.ClientOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "memory",
			cfg:  Config{StoreDriver: StoreMemory, JWTExpiry: 60},
		},
		{
			name:    "postgres without url",
			cfg:     Config{StoreDriver: StorePostgres, DBMaxConns: 10, JWTExpiry: 60},
			wantErr: "DATABASE_URL",
		},
		{
			name: "postgres",
			cfg:  Config{StoreDriver: StorePostgres, DatabaseURL: "postgres://localhost/ecofinds", DBMaxConns: 10, JWTExpiry: 60},
		},
		{
			name:    "firestore without project",
			cfg:     Config{StoreDriver: StoreFirestore, JWTExpiry: 60},
			wantErr: "FIREBASE_PROJECT_ID",
		},
		{
			name:    "mongo without uri",
			cfg:     Config{StoreDriver: StoreMongo, JWTExpiry: 60},
			wantErr: "MONGO_URI",
		},
		{
			name:    "unknown store",
			cfg:     Config{StoreDriver: "mysql", JWTExpiry: 60},
			wantErr: "unknown store driver",
		},
		{
			name:    "unknown storage",
			cfg:     Config{StoreDriver: StoreMemory, StorageDriver: "s3", JWTExpiry: 60},
			wantErr: "unknown storage driver",
		},
		{
			name:    "non positive expiry",
			cfg:     Config{StoreDriver: StoreMemory},
			wantErr: "JWT_EXPIRY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
