package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseapp/pulse/domain"
)

func TestCommentRepository_GetByIDTransientErrorIsNotNotFound(t *testing.T) {
	gdb, mock := openMockDB(t)
	repo := NewCommentRepository(gdb)

	mock.ExpectQuery("SELECT (.+) FROM `comments`").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.GetByID(context.Background(), 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
