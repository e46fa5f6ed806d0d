//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_enrich/internal/domain"
	"hotel_enrich/internal/enrich"
	mysqlsink "hotel_enrich/internal/storage/mysql"
)

// migrationsDir defaults to the repo's migrations/ when MIGRATIONS_DIR is unset.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return filepath.Join("..", "..", "..", "migrations")
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

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
	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=hotels",
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
		"root", hostPort, "hotels")

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

func enrichedTable(t *testing.T, n int) domain.Table {
	t.Helper()
	in := domain.Table{Columns: append([]string(nil), domain.RequiredColumns...)}
	for i := 0; i < n; i++ {
		r := domain.Row{}
		for _, c := range domain.RequiredColumns {
			r[c] = ""
		}
		r[domain.ColNomCommercial] = fmt.Sprintf("Hôtel Numéro %d", i)
		r[domain.ColCodePostal] = "75008"
		if i%2 == 0 {
			r[domain.ColWebsite] = "www.ibis.com"
		} else {
			r[domain.ColWebsite] = fmt.Sprintf("hotel-%d.fr", i)
		}
		in.Rows = append(in.Rows, r)
	}
	p := enrich.NewPipeline(enrich.DefaultRules(), enrich.Lookups{
		Geography: enrich.GeographyLookup{"75": {Region: "Île-de-France"}},
		Groups:    enrich.GroupDomains{"ibis.com": "Accor"},
	})
	out, _, err := p.Enrich(context.Background(), in)
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	return out
}

// ---------- the test ----------
func TestSink_MySQL_SaveAndReplaceRun(t *testing.T) {
	db := startMySQL(t)
	sink := mysqlsink.New(db)
	ctx := context.Background()

	// more rows than one INSERT batch
	tbl := enrichedTable(t, 1203)
	if err := sink.SaveTable(ctx, "run-1", tbl); err != nil {
		t.Fatalf("SaveTable: %v", err)
	}

	n, err := sink.CountRun(ctx, "run-1")
	if err != nil || n != 1203 {
		t.Fatalf("CountRun = %d, %v", n, err)
	}

	got, err := sink.GetRow(ctx, "run-1", 2)
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if got[domain.ColNomCommercial] != "Hôtel Numéro 2" || got[enrich.ColGroupName] != "Accor" || got[enrich.ColRegion] != "Île-de-France" {
		t.Fatalf("unexpected stored row: %+v", got)
	}

	byOwn, err := sink.CountByOwnership(ctx, "run-1")
	if err != nil {
		t.Fatalf("CountByOwnership: %v", err)
	}
	if byOwn["group"] != 602 || byOwn["independent"] != 601 {
		t.Fatalf("unexpected ownership counts: %v", byOwn)
	}

	// saving the same run again replaces, never appends
	if err := sink.SaveTable(ctx, "run-1", tbl.Head(10)); err != nil {
		t.Fatalf("SaveTable again: %v", err)
	}
	if n, _ := sink.CountRun(ctx, "run-1"); n != 10 {
		t.Fatalf("after replace CountRun = %d", n)
	}
	if _, err := sink.GetRow(ctx, "run-1", 500); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	// other runs are untouched
	if err := sink.SaveTable(ctx, "run-2", tbl.Head(3)); err != nil {
		t.Fatalf("SaveTable run-2: %v", err)
	}
	if n, _ := sink.CountRun(ctx, "run-1"); n != 10 {
		t.Fatalf("run-1 changed by run-2: %d", n)
	}
}

// Cells wider than the typed columns must not fail the run; the typed
// columns are clipped and the JSON row keeps the full value.
func TestSink_MySQL_OversizedCells(t *testing.T) {
	db := startMySQL(t)
	sink := mysqlsink.New(db)
	ctx := context.Background()

	tbl := enrichedTable(t, 3)
	longPostal := "75008 PARIS CEDEX 08 " + strings.Repeat("BP 1234 ", 20)
	longName := strings.Repeat("Hôtel très long ", 2000)
	tbl.Rows[1][domain.ColCodePostal] = longPostal
	tbl.Rows[1][domain.ColNomCommercial] = longName
	tbl.Rows[2][enrich.ColGroupName] = strings.Repeat("Groupe ", 100)

	if err := sink.SaveTable(ctx, "run-wide", tbl); err != nil {
		t.Fatalf("SaveTable: %v", err)
	}
	if n, _ := sink.CountRun(ctx, "run-wide"); n != 3 {
		t.Fatalf("CountRun = %d", n)
	}

	var postal string
	if err := db.QueryRowContext(ctx,
		"SELECT code_postal FROM enriched_hotels WHERE run_id = ? AND row_index = 1", "run-wide").Scan(&postal); err != nil {
		t.Fatalf("select code_postal: %v", err)
	}
	if len([]rune(postal)) != 64 || !strings.HasPrefix(longPostal, postal) {
		t.Fatalf("code_postal not clipped to 64 runes: %q", postal)
	}

	got, err := sink.GetRow(ctx, "run-wide", 1)
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if got[domain.ColCodePostal] != longPostal || got[domain.ColNomCommercial] != longName {
		t.Fatal("row JSON lost the full cell values")
	}
}
