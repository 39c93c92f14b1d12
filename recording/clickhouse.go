package recording

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/joho/godotenv"
	"github.com/tebeka/atexit"
)

// ClickHouseRecorder records training data into ClickHouse. It keeps
// type-specific batches for the known table shapes, so inserts stay free of
// reflection, and sends each batch with the native bulk protocol.
type ClickHouseRecorder struct {
	conn      clickhouse.Conn
	mu        sync.Mutex
	batchSize int

	tables map[string]chTableType

	metricBatches  map[string][]MetricSample
	runInfoBatches map[string][]RunInfo

	entryCount int
}

type chTableType int

const (
	chTableMetrics chTableType = iota
	chTableRunInfo
)

// NewClickHouseRecorder connects to a ClickHouse server and returns a
// Recorder on it. A batchSize of 0 selects the default of 100000.
func NewClickHouseRecorder(
	host string,
	port int,
	database string,
	username string,
	password string,
	batchSize int,
) Recorder {
	if batchSize == 0 {
		batchSize = 100000
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", host, port)},
		Auth: clickhouse.Auth{
			Database: database,
			Username: username,
			Password: password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:      time.Second * 30,
		MaxOpenConns:     5,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		BlockBufferSize:  10,
	})
	if err != nil {
		panic(fmt.Errorf("failed to connect to ClickHouse: %w", err))
	}

	if err := conn.Ping(context.Background()); err != nil {
		panic(fmt.Errorf("failed to ping ClickHouse: %w", err))
	}

	r := &ClickHouseRecorder{
		conn:           conn,
		batchSize:      batchSize,
		tables:         make(map[string]chTableType),
		metricBatches:  make(map[string][]MetricSample),
		runInfoBatches: make(map[string][]RunInfo),
	}

	atexit.Register(func() { r.Flush() })

	return r
}

// NewClickHouseRecorderFromEnv builds the recorder from CLICKHOUSE_HOST,
// CLICKHOUSE_PORT, CLICKHOUSE_DB, CLICKHOUSE_USER and CLICKHOUSE_PASSWORD,
// loading a .env file first when one exists.
func NewClickHouseRecorderFromEnv() Recorder {
	_ = godotenv.Load()

	host := os.Getenv("CLICKHOUSE_HOST")
	if host == "" {
		host = "localhost"
	}

	port := 9000
	if v := os.Getenv("CLICKHOUSE_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			panic(fmt.Errorf("invalid CLICKHOUSE_PORT %q: %w", v, err))
		}

		port = p
	}

	database := os.Getenv("CLICKHOUSE_DB")
	if database == "" {
		database = "default"
	}

	username := os.Getenv("CLICKHOUSE_USER")
	if username == "" {
		username = "default"
	}

	return NewClickHouseRecorder(host, port, database, username,
		os.Getenv("CLICKHOUSE_PASSWORD"), 0)
}

// CreateTable creates a MergeTree table for one of the known entry shapes.
func (r *ClickHouseRecorder) CreateTable(tableName string, sampleEntry any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var createSQL string

	var tType chTableType

	switch sampleEntry.(type) {
	case MetricSample:
		tType = chTableMetrics
		createSQL = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				Run String,
				Epoch Int64,
				Iter Int64,
				Mode String,
				Metric String,
				Value Float64
			) ENGINE = MergeTree()
			ORDER BY (Run, Metric, Iter)
		`, tableName)

	case RunInfo:
		tType = chTableRunInfo
		createSQL = fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				Property String,
				Value String
			) ENGINE = MergeTree()
			ORDER BY Property
		`, tableName)

	default:
		panic(fmt.Sprintf("unknown table type: %T", sampleEntry))
	}

	err := r.conn.Exec(context.Background(), createSQL)
	if err != nil {
		panic(fmt.Errorf("failed to create table %s: %w", tableName, err))
	}

	r.tables[tableName] = tType
}

// Insert buffers one entry. The table must exist and the entry must match
// the table's shape.
func (r *ClickHouseRecorder) Insert(tableName string, entry any) {
	r.mu.Lock()

	tType, exists := r.tables[tableName]
	if !exists {
		r.mu.Unlock()
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	switch tType {
	case chTableMetrics:
		e, ok := entry.(MetricSample)
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("invalid entry type for metrics: %T", entry))
		}

		r.metricBatches[tableName] = append(r.metricBatches[tableName], e)

	case chTableRunInfo:
		e, ok := entry.(RunInfo)
		if !ok {
			r.mu.Unlock()
			panic(fmt.Sprintf("invalid entry type for run info: %T", entry))
		}

		r.runInfoBatches[tableName] = append(r.runInfoBatches[tableName], e)

	default:
		r.mu.Unlock()
		panic(fmt.Sprintf("unknown table type: %d", tType))
	}

	r.entryCount++

	if r.entryCount >= r.batchSize {
		r.mu.Unlock()
		r.Flush()

		return
	}

	r.mu.Unlock()
}

// ListTables returns all created table names.
func (r *ClickHouseRecorder) ListTables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	tables := make([]string, 0, len(r.tables))
	for name := range r.tables {
		tables = append(tables, name)
	}

	return tables
}

// Flush sends all buffered batches.
func (r *ClickHouseRecorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.entryCount == 0 {
		return
	}

	ctx := context.Background()

	for tableName, batch := range r.metricBatches {
		if len(batch) > 0 {
			r.flushMetrics(ctx, tableName)
		}
	}

	for tableName, batch := range r.runInfoBatches {
		if len(batch) > 0 {
			r.flushRunInfo(ctx, tableName)
		}
	}

	r.entryCount = 0
}

func (r *ClickHouseRecorder) flushMetrics(
	ctx context.Context,
	tableName string,
) {
	batch, err := r.conn.PrepareBatch(ctx,
		fmt.Sprintf("INSERT INTO %s", tableName))
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w",
			tableName, err))
	}

	for _, entry := range r.metricBatches[tableName] {
		err = batch.Append(
			entry.Run,
			int64(entry.Epoch),
			int64(entry.Iter),
			entry.Mode,
			entry.Metric,
			entry.Value,
		)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	if err := batch.Send(); err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.metricBatches[tableName] = r.metricBatches[tableName][:0]
}

func (r *ClickHouseRecorder) flushRunInfo(
	ctx context.Context,
	tableName string,
) {
	batch, err := r.conn.PrepareBatch(ctx,
		fmt.Sprintf("INSERT INTO %s", tableName))
	if err != nil {
		panic(fmt.Errorf("failed to prepare batch for %s: %w",
			tableName, err))
	}

	for _, entry := range r.runInfoBatches[tableName] {
		err = batch.Append(entry.Property, entry.Value)
		if err != nil {
			panic(fmt.Errorf("failed to append to batch: %w", err))
		}
	}

	if err := batch.Send(); err != nil {
		panic(fmt.Errorf("failed to send batch: %w", err))
	}

	r.runInfoBatches[tableName] = r.runInfoBatches[tableName][:0]
}

// Close flushes remaining batches and closes the connection.
func (r *ClickHouseRecorder) Close() error {
	r.Flush()

	err := r.conn.Close()
	if err != nil {
		return fmt.Errorf("failed to close ClickHouse connection: %w", err)
	}

	return nil
}
