package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDSN(t *testing.T) {
	tests := map[string]string{
		"postgresql+asyncpg://u:p@h/db":  "postgresql://u:p@h/db",
		"postgres+pgx://u:p@h/db":        "postgres://u:p@h/db",
		"postgresql+psycopg2://u:p@h/db": "postgresql://u:p@h/db",
		"  postgres://u:p@h/db  ":        "postgres://u:p@h/db",
		"":                               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeDSN(in), in)
	}
}

func TestTablesFor(t *testing.T) {
	tables, err := tablesFor("meta")
	assert.NoError(t, err)
	assert.Equal(t, "meta_messages", tables.messages)

	_, err = tablesFor("telegram")
	assert.Error(t, err)
}
