package postgres

import (
	"context"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"

	"antiswear/pkg/censor"
)

const defaultPostgresPass = "some_pass"
const defaultPostgresPort = "5432"

func postgresConf() Config {
	pass := os.Getenv("POSTGRES_PASSWORD")
	if pass == "" {
		pass = defaultPostgresPass
	}

	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = defaultPostgresPort
	}

	return Config{
		User:     "postgres",
		Password: pass,
		Host:     "localhost",
		Port:     port,
		DBName:   "antiswear",
	}
}

// storageConnect skips the calling test when no database is reachable.
func storageConnect(t *testing.T) *Store {
	t.Helper()

	conf := postgresConf()
	ctx := context.Background()
	db, err := New(ctx, conf.ConString())
	if err != nil {
		t.Skipf("postgres is not available: %v", err)
	}
	if err := db.Ping(ctx); err != nil {
		db.Close()
		t.Skipf("postgres is not responding: %v", err)
	}

	return db
}

// truncate restores the original state of DB for further testing.
func truncate(db *Store) error {
	_, err := db.db.Exec(context.Background(), "TRUNCATE TABLE blacklist, whitelist")
	return err
}

func TestMain(m *testing.M) {
	log.SetLevel(log.PanicLevel)
	exitCode := m.Run()
	os.Exit(exitCode)
}

func TestStore_Load(t *testing.T) {
	db := storageConnect(t)
	t.Cleanup(func() {
		if err := truncate(db); err != nil {
			t.Errorf("unexpected error clearing tables: %v", err)
		}
		db.Close()
	})

	ctx := context.Background()
	search := "broken"
	pairs := []censor.Pair{
		censor.NewPair("idiot", "id**t"),
		censor.NewPair("noob", "n**b"),
		{Search: &search},
	}
	if err := db.AddPairs(ctx, pairs); err != nil {
		t.Fatalf("unexpected error adding pairs: %v", err)
	}
	if err := db.AddPhrases(ctx, []string{"not an idiot"}); err != nil {
		t.Fatalf("unexpected error adding phrases: %v", err)
	}

	d, err := db.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error loading dictionary: %v", err)
	}
	if d.Blacklisted() != 2 || d.Whitelisted() != 1 {
		t.Errorf("want 2 blacklist and 1 whitelist entries, got %d and %d", d.Blacklisted(), d.Whitelisted())
	}

	got, changed := d.Process("you are not an idiot, noob")
	if !changed || got != "you are not an idiot, n**b" {
		t.Errorf("unexpected result %q (changed: %v)", got, changed)
	}
}
