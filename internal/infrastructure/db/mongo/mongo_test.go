package mongo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/calorietrack/calorie-api/internal/core/domain"
)

// startMongo runs a single node replica set so transactions are available.
func startMongo(t *testing.T) (*mongo.Client, *mongo.Database) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
			WaitingFor:   wait.ForLog("Waiting for connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	code, _, err := container.Exec(ctx, []string{
		"mongosh", "--quiet", "--eval",
		"rs.initiate({_id: 'rs0', members: [{_id: 0, host: 'localhost:27017'}]})",
	})
	require.NoError(t, err)
	require.Zero(t, code)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err)

	uri := fmt.Sprintf("mongodb://%s:%s/?directConnection=true", host, port.Port())
	client, db, err := Connect(ctx, Config{URI: uri, Database: "calorie_test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	require.Eventually(t, func() bool {
		var hello struct {
			IsWritablePrimary bool `bson:"isWritablePrimary"`
		}
		err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello)
		return err == nil && hello.IsWritablePrimary
	}, 30*time.Second, 250*time.Millisecond)

	require.NoError(t, EnsureIndexes(ctx, db))
	return client, db
}

func TestMongoRepositories(t *testing.T) {
	client, db := startMongo(t)
	ctx := context.Background()

	t.Run("users", func(t *testing.T) {
		repo := NewUserRepository(db, 5*time.Second)
		now := time.Now().UTC()

		first, err := repo.Create(ctx, &domain.User{Username: "alice", Email: "alice@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		second, err := repo.Create(ctx, &domain.User{Username: "bob", Email: "bob@example.com", PasswordHash: "h", CreatedAt: now, UpdatedAt: now})
		require.NoError(t, err)
		assert.Equal(t, first.ID+1, second.ID)

		exists, err := repo.ExistsByUsernameOrEmail(ctx, "carol", "bob@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		found, err := repo.FindByIdentifier(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		_, err = repo.Create(ctx, &domain.User{Username: "alice", Email: "new@example.com", PasswordHash: "h"})
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("intakes", func(t *testing.T) {
		repo := NewIntakeRepository(client, db, 5*time.Second)
		jan1, _ := domain.ParseDate("2024-01-01")
		jan2, _ := domain.ParseDate("2024-01-02")

		batch := []domain.IntakeRecord{
			{UserID: 1, Date: jan1, Calories: 100},
			{UserID: 1, Date: jan2, Calories: 10},
		}
		require.NoError(t, repo.AddCalories(ctx, batch))

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.NoError(t, repo.AddCalories(ctx, batch))
			}()
		}
		wg.Wait()

		rows, err := repo.List(ctx, 1, domain.DateRange{})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 50, rows[0].Calories)
		assert.Equal(t, 500, rows[1].Calories)

		rows, err = repo.List(ctx, 1, domain.DateRange{From: jan2})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.True(t, jan2.Equal(rows[0].Date))

		err = repo.AddCalories(ctx, []domain.IntakeRecord{
			{UserID: 1, Date: jan1, Calories: 1},
			{UserID: 1, Date: jan2, Calories: domain.MaxCalories + 1},
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
		rows, err = repo.List(ctx, 1, domain.DateRange{})
		require.NoError(t, err)
		assert.Equal(t, 500, rows[1].Calories)
	})

	t.Run("artifacts", func(t *testing.T) {
		repo := NewArtifactRepository(db, 5*time.Second)

		_, err := repo.Load(ctx, 1, domain.FormatPDF)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)

		require.NoError(t, repo.Save(ctx, domain.ReportArtifact{UserID: 1, PDF: []byte("%PDF")}))
		require.NoError(t, repo.Save(ctx, domain.ReportArtifact{UserID: 1, CSV: []byte("Date,Calories\n")}))

		pdf, err := repo.Load(ctx, 1, domain.FormatPDF)
		require.NoError(t, err)
		assert.Equal(t, "%PDF", string(pdf))

		csv, err := repo.Load(ctx, 1, domain.FormatCSV)
		require.NoError(t, err)
		assert.Equal(t, "Date,Calories\n", string(csv))
	})
}

func TestRepositories_UseConfiguredTimeout(t *testing.T) {
	// Connect is lazy, so no server is needed.
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	db := client.Database("calorie_test")

	assert.Equal(t, 3*time.Second, NewUserRepository(db, 3*time.Second).timeout)
	assert.Equal(t, 3*time.Second, NewIntakeRepository(client, db, 3*time.Second).timeout)
	assert.Equal(t, 3*time.Second, NewArtifactRepository(db, 3*time.Second).timeout)
	assert.Equal(t, defaultTimeout, NewUserRepository(db, 0).timeout)
}
