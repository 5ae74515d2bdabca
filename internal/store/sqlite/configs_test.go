package sqlite

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexuspointwg/corectl/internal/pkg/code"
	"github.com/nexuspointwg/corectl/internal/pkg/model"
	"github.com/HappyLadySauce/errors"
)

// newTestDB opens a fresh in-memory database and migrates the schema,
// independent of the process-wide GetSqliteFactoryOr singleton so tests
// don't share state with each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A name-scoped shared-cache memory DB: shared so gorm's connection pool
	// sees one consistent database, scoped to t.Name() so parallel test
	// functions never collide on the same in-memory instance.
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Dialector{DSN: dsn}, &gorm.Config{})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Integration{},
		&model.Key{},
		&model.Config{},
		&model.ConfigIP{},
		&model.PeerSetting{},
		&model.Stat{},
		&model.Request{},
	); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

func TestAddConfigAndGetFull(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	userID := uuid.New()
	cfg := &model.Config{ID: uuid.New(), UserID: userID, PublicKey: []byte("pub-key-1"), Name: "laptop"}

	if err := cs.AddConfig(ctx, cfg, 0x0A020001); err != nil {
		t.Fatalf("AddConfig: %v", err)
	}

	got, err := cs.GetFull(ctx, cfg.ID)
	if err != nil {
		t.Fatalf("GetFull: %v", err)
	}
	if got.Name != "laptop" || got.Addr != 0x0A020001 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.Tx != 0 || got.Rx != 0 {
		t.Fatalf("expected zero stats for a config with no traffic yet, got tx=%d rx=%d", got.Tx, got.Rx)
	}
}

func TestAddConfigDuplicatePublicKey(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	userID := uuid.New()
	first := &model.Config{ID: uuid.New(), UserID: userID, PublicKey: []byte("dup-key"), Name: "a"}
	if err := cs.AddConfig(ctx, first, 1); err != nil {
		t.Fatalf("AddConfig first: %v", err)
	}

	second := &model.Config{ID: uuid.New(), UserID: userID, PublicKey: []byte("dup-key"), Name: "b"}
	err := cs.AddConfig(ctx, second, 2)
	if err == nil {
		t.Fatal("expected a unique-violation error for a duplicate public key")
	}
	if !errors.IsCode(err, code.ErrServiceClientAlreadyExists) {
		t.Fatalf("expected ErrServiceClientAlreadyExists, got %v", err)
	}
}

func TestGetFullNotFound(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}

	_, err := cs.GetFull(context.Background(), uuid.New())
	if !errors.IsCode(err, code.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound, got %v", err)
	}
}

func TestGetFullByAddrExcludesDeleted(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	cfg := &model.Config{ID: uuid.New(), UserID: uuid.New(), PublicKey: []byte("k"), Name: "n"}
	if err := cs.AddConfig(ctx, cfg, 42); err != nil {
		t.Fatalf("AddConfig: %v", err)
	}
	if err := cs.SoftDelete(ctx, cfg.ID); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	if _, err := cs.GetFullByAddr(ctx, 42); !errors.IsCode(err, code.ErrServiceNotFound) {
		t.Fatalf("expected a soft-deleted config's address to resolve to not-found, got %v", err)
	}
}

func TestListFullByUserOrderAndScope(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	a := &model.Config{ID: uuid.New(), UserID: owner, PublicKey: []byte("a"), Name: "a"}
	b := &model.Config{ID: uuid.New(), UserID: owner, PublicKey: []byte("b"), Name: "b"}
	c := &model.Config{ID: uuid.New(), UserID: other, PublicKey: []byte("c"), Name: "c"}
	for i, cfg := range []*model.Config{a, b, c} {
		if err := cs.AddConfig(ctx, cfg, uint32(i+1)); err != nil {
			t.Fatalf("AddConfig %d: %v", i, err)
		}
	}

	rows, err := cs.ListFullByUser(ctx, owner)
	if err != nil {
		t.Fatalf("ListFullByUser: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 configs owned by %s, got %d", owner, len(rows))
	}
	for _, row := range rows {
		if row.UserID != owner {
			t.Fatalf("expected only %s's configs, got a row owned by %s", owner, row.UserID)
		}
	}
	if rows[0].ID != a.ID || rows[1].ID != b.ID {
		t.Fatalf("expected configs in creation order (a, b), got (%s, %s)", rows[0].Name, rows[1].Name)
	}
}

func TestRenameAndSoftDeleteNotFound(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	if err := cs.Rename(ctx, uuid.New(), "new-name"); !errors.IsCode(err, code.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound renaming a missing config, got %v", err)
	}
	if err := cs.SoftDelete(ctx, uuid.New()); !errors.IsCode(err, code.ErrServiceNotFound) {
		t.Fatalf("expected ErrServiceNotFound deleting a missing config, got %v", err)
	}
}

func TestCountAll(t *testing.T) {
	db := newTestDB(t)
	cs := &configs{db: db}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cfg := &model.Config{ID: uuid.New(), UserID: uuid.New(), PublicKey: []byte{byte(i)}, Name: "n"}
		if err := cs.AddConfig(ctx, cfg, uint32(i)); err != nil {
			t.Fatalf("AddConfig %d: %v", i, err)
		}
	}
	if err := cs.SoftDelete(ctx, func() uuid.UUID {
		var first model.Config
		db.First(&first)
		return first.ID
	}()); err != nil {
		t.Fatalf("SoftDelete: %v", err)
	}

	count, err := cs.CountAll(ctx)
	if err != nil {
		t.Fatalf("CountAll: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected CountAll to include soft-deleted rows (3), got %d", count)
	}
}
