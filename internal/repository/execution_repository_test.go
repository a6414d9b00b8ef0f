package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iac-studio/converge/internal/models"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Execution{}, &models.ServiceOutcome{}))
	return db
}

func newExecution(env string) *models.Execution {
	return &models.Execution{
		OrganizationID: "org",
		ClusterID:      "cluster",
		EnvironmentID:  env,
		Action:         string(models.ActionCreate),
		Status:         models.ExecutionQueued,
		Request:        datatypes.JSON(`{"action":"CREATE"}`),
	}
}

func TestExecutionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewExecutionRepository(openSQLite(t))

	e := newExecution("env-1")
	require.NoError(t, repo.Create(ctx, e))
	require.NotEqual(t, uuid.Nil, e.ID)

	started := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpdateStatus(ctx, e.ID, models.ExecutionRunning, started))

	require.NoError(t, repo.AddOutcome(ctx, &models.ServiceOutcome{
		ExecutionID: e.ID, ServiceID: "z0badcafe", ServiceName: "web", ServiceType: "Application",
		Action: string(models.ActionCreate), Succeeded: true,
	}))
	require.NoError(t, repo.AddOutcome(ctx, &models.ServiceOutcome{
		ExecutionID: e.ID, ServiceID: "z0badbeef", ServiceName: "pg", ServiceType: "PostgreSQL database",
		Action: string(models.ActionCreate), ErrorTag: "DATABASE_FAILED_TO_START_AFTER_SEVERAL_RETRIES",
	}))
	require.NoError(t, repo.UpdateStatus(ctx, e.ID, models.ExecutionFailed, started.Add(time.Minute)))

	got, err := repo.GetWithOutcomes(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ExecutionFailed, got.Status)
	require.NotNil(t, got.StartedAt)
	require.NotNil(t, got.FinishedAt)
	assert.Equal(t, time.Minute, got.FinishedAt.Sub(*got.StartedAt))
	assert.Len(t, got.Outcomes, 2)
}

func TestExecutionNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewExecutionRepository(openSQLite(t))

	_, err := repo.GetWithOutcomes(ctx, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = repo.UpdateStatus(ctx, uuid.New(), models.ExecutionRunning, time.Now())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))

	err = repo.Delete(ctx, uuid.New())
	assert.True(t, appErr.IsCode(err, appErr.CodeNotFound))
}

func TestListByEnvironment(t *testing.T) {
	ctx := context.Background()
	repo := NewExecutionRepository(openSQLite(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newExecution("env-1")))
	}
	require.NoError(t, repo.Create(ctx, newExecution("env-2")))

	list, err := repo.ListByEnvironment(ctx, "env-1", 0)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	list, err = repo.ListByEnvironment(ctx, "env-1", 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestWrapWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want appErr.Code
	}{
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "executions_pkey"}, appErr.CodeAlreadyExists},
		{"duplicated key", gorm.ErrDuplicatedKey, appErr.CodeAlreadyExists},
		{"other", errors.New("disk full"), appErr.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, appErr.IsCode(wrapWriteError(tt.err, "write failed"), tt.want))
		})
	}
}
