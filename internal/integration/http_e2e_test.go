//go:build integration || !unit

package integration

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	server "hotel_enrich/internal/adapters/http_server"
	redisad "hotel_enrich/internal/adapters/redis"
	"hotel_enrich/internal/adapters/tabular"
	"hotel_enrich/internal/app"
	"hotel_enrich/internal/enrich"
	"hotel_enrich/internal/fixtures"
	mysqlsink "hotel_enrich/internal/storage/mysql"
)

// ---------- helpers ----------
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir()

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotel_enrich",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "hotel_enrich")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return db
}

func testLookups() enrich.Lookups {
	return app.LoadLookups(zerolog.Nop(), app.LookupPaths{
		Geography:    filepath.Join("..", "..", "data", "department_to_region_fr.csv"),
		GroupDomains: filepath.Join("..", "..", "data", "hotel_groups_domains.csv"),
		MajorCities:  filepath.Join("..", "..", "data", "major_cities_fr.txt"),
	})
}

// ---------- the test ----------

// A registry file enriched by the batch command and the same bytes posted
// to the API must give identical output, and the batch run must land in
// the sink row for row.
func TestEndToEnd_BatchAndAPIAgree(t *testing.T) {
	db := startMySQL(t)
	ctx := context.Background()

	// input file
	in := fixtures.Generate(300, 11)
	var input bytes.Buffer
	if err := tabular.EncodeCSV(&input, in, true); err != nil {
		t.Fatalf("encode input: %v", err)
	}
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "registry.csv")
	if err := os.WriteFile(inputPath, input.Bytes(), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	lookups := testLookups()
	pipe := enrich.NewPipeline(enrich.DefaultRules(), lookups, enrich.WithWorkers(4))

	// batch
	sink := mysqlsink.New(db)
	svc := app.NewBatchService(tabular.NewReader(zerolog.Nop()), tabular.NewWriter(), sink, pipe, zerolog.Nop())
	res, err := svc.Run(ctx, app.RunRequest{InputPath: inputPath, OutputDir: filepath.Join(dir, "out")})
	if err != nil {
		t.Fatalf("batch run: %v", err)
	}
	if len(res.Outputs) != 2 {
		t.Fatalf("expected csv and xlsx outputs, got %v", res.Outputs)
	}
	n, err := sink.CountRun(ctx, res.RunID)
	if err != nil || n != 300 {
		t.Fatalf("sink rows=%d err=%v", n, err)
	}
	byOwner, err := sink.CountByOwnership(ctx, res.RunID)
	if err != nil {
		t.Fatalf("CountByOwnership: %v", err)
	}
	total := 0
	for k, v := range byOwner {
		if v != res.Stats.Ownership[enrich.Ownership(k)] {
			t.Fatalf("ownership %s: sink %d, stats %d", k, v, res.Stats.Ownership[enrich.Ownership(k)])
		}
		total += v
	}
	if total != 300 {
		t.Fatalf("ownership total %d", total)
	}
	batchCSV, err := os.ReadFile(res.Outputs[0])
	if err != nil {
		t.Fatalf("read batch output: %v", err)
	}

	// api
	mr := miniredis.RunT(t)
	cache := redisad.NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	q := app.NewQueryService(pipe, lookups, tabular.CSVCodec{BOM: true}, cache, 10*time.Minute)
	srv := server.New(server.WithLogger(zerolog.Nop()))
	srv.MountHandlers(&server.Handlers{Q: q})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	post := func() ([]byte, *http.Response) {
		res, err := http.Post(ts.URL+"/v1/enrich", "text/csv", bytes.NewReader(input.Bytes()))
		if err != nil {
			t.Fatalf("POST: %v", err)
		}
		defer res.Body.Close()
		b, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatalf("read body: %v", err)
		}
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", res.StatusCode, b)
		}
		return b, res
	}

	body, resp := post()
	if got := resp.Header.Get("X-Enrich-Rows"); got != strconv.Itoa(300) {
		t.Fatalf("X-Enrich-Rows=%s", got)
	}
	if !bytes.Equal(body, batchCSV) {
		t.Fatalf("API output differs from batch output (%d vs %d bytes)", len(body), len(batchCSV))
	}

	cached := 0
	for _, k := range mr.Keys() {
		if strings.HasPrefix(k, "hotel_enrich:csv:") {
			cached++
		}
	}
	if cached != 1 {
		t.Fatalf("expected one cached CSV result, keys=%v", mr.Keys())
	}

	again, resp2 := post()
	if !bytes.Equal(again, body) || resp2.Header.Get("ETag") != resp.Header.Get("ETag") {
		t.Fatal("cached response differs from the first one")
	}
}
