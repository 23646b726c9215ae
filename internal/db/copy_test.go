package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "stored_reports", []string{"id", "user_id"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom(t *testing.T) {
	tests := []struct {
		name  string
		table string
		ident pgx.Identifier
	}{
		{"plain table", "stored_reports", pgx.Identifier{"stored_reports"}},
		{"schema qualified", "investor.stored_reports", pgx.Identifier{"investor", "stored_reports"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			mock.ExpectCopyFrom(tt.ident, []string{"id", "user_id"}).WillReturnResult(2)

			rows := [][]any{{"r1", "u1"}, {"r2", "u2"}}
			n, err := CopyFrom(context.Background(), mock, tt.table, []string{"id", "user_id"}, rows)
			require.NoError(t, err)
			assert.Equal(t, int64(2), n)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"stored_reports"}, []string{"id"}).WillReturnError(fmt.Errorf("duplicate key"))

	_, err = CopyFrom(context.Background(), mock, "stored_reports", []string{"id"}, [][]any{{"r1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO stored_reports")
	assert.NoError(t, mock.ExpectationsWereMet())
}
