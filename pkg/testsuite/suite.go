package testsuite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http/httptest"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sakashimaa/accessory-shop/pkg/db"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	kafka bool
	redis bool
}

func WithKafka() Option {
	return func(o *options) { o.kafka = true }
}

func WithRedis() Option {
	return func(o *options) { o.redis = true }
}

type BaseSuite struct {
	suite.Suite
	PgContainer    *postgres.PostgresContainer
	KafkaContainer *kafka.KafkaContainer
	RedisContainer *tcredis.RedisContainer
	DbPool         *pgxpool.Pool
	RedisClient    *goredis.Client
	KafkaBrokers   []string
	Ctx            context.Context
}

// SetupInfrastructure starts Postgres, applies the migrations found at migrationsRelPath
// and starts Kafka/Redis when requested.
func (s *BaseSuite) SetupInfrastructure(migrationsRelPath string, opts ...Option) {
	s.Ctx = context.Background()

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	s.PgContainer, err = postgres.Run(
		s.Ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)

	connStr, err := s.PgContainer.ConnectionString(s.Ctx, "sslmode=disable")
	s.Require().NoError(err)

	absPath, err := filepath.Abs(migrationsRelPath)
	s.Require().NoError(err)

	m, err := migrate.New("file://"+absPath, connStr)
	s.Require().NoError(err)
	s.Require().NoError(m.Up())

	s.DbPool, err = db.NewPostgresDB(s.Ctx, connStr, zap.NewNop())
	s.Require().NoError(err)

	if o.kafka {
		s.KafkaContainer, err = kafka.Run(
			s.Ctx,
			"confluentinc/cp-kafka:7.5.0",
			kafka.WithClusterID("test-cluster"),
		)
		s.Require().NoError(err)

		s.KafkaBrokers, err = s.KafkaContainer.Brokers(s.Ctx)
		s.Require().NoError(err)
	}

	if o.redis {
		s.RedisContainer, err = tcredis.Run(s.Ctx, "redis:7-alpine")
		s.Require().NoError(err)

		redisURL, err := s.RedisContainer.ConnectionString(s.Ctx)
		s.Require().NoError(err)

		redisOpts, err := goredis.ParseURL(redisURL)
		s.Require().NoError(err)

		s.RedisClient = goredis.NewClient(redisOpts)
	}
}

func (s *BaseSuite) TearDownInfrastructure() {
	if s.DbPool != nil {
		s.DbPool.Close()
	}
	if s.RedisClient != nil {
		_ = s.RedisClient.Close()
	}

	terminate := func(name string, c testcontainers.Container) {
		if err := c.Terminate(s.Ctx); err != nil {
			log.Printf("Failed to terminate %s container: %v", name, err)
		}
	}

	if s.PgContainer != nil {
		terminate("postgres", s.PgContainer)
	}
	if s.KafkaContainer != nil {
		terminate("kafka", s.KafkaContainer)
	}
	if s.RedisContainer != nil {
		terminate("redis", s.RedisContainer)
	}
}

func (s *BaseSuite) TruncateTables(tableNames ...string) {
	for _, tableName := range tableNames {
		_, err := s.DbPool.Exec(s.Ctx, fmt.Sprintf("TRUNCATE %s RESTART IDENTITY CASCADE", tableName))
		s.Require().NoError(err)
	}
}

// CountRows runs a COUNT(*) query with args and returns the result.
func (s *BaseSuite) CountRows(query string, args ...any) int {
	var n int
	s.Require().NoError(s.DbPool.QueryRow(s.Ctx, query, args...).Scan(&n))

	return n
}

// DoJSON sends a request to app and returns the status and raw body.
// A nil body sends no payload.
func (s *BaseSuite) DoJSON(app *fiber.App, method, path string, body any) (int, []byte) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	s.Require().NoError(err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)

	return resp.StatusCode, raw
}

// DecodeJSON unmarshals raw into out and fails the test on error.
func (s *BaseSuite) DecodeJSON(raw []byte, out any) {
	s.Require().NoError(json.Unmarshal(raw, out), string(raw))
}
