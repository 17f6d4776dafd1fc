package palate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/savorworks/palate/internal/store/migrations"
)

const schemaVersion = "1"

// Store persists model state (user profiles and catalog items) to a local
// SQLite database. The engine treats it as an optional collaborator: every
// Store failure is recoverable and leaves the in-memory stores operational.
type Store struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewStore opens or creates a local model store.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "."); err != nil {
		return fmt.Errorf("store: run migrations: %w", err)
	}

	_, err := s.db.Exec(`
		INSERT OR IGNORE INTO metadata (key, value) VALUES ('schema_version', ?)
	`, schemaVersion)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// UpsertProfile writes a single profile, replacing any existing row.
func (s *Store) UpsertProfile(prof *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	return upsertProfile(s.db, prof)
}

// UpsertItem writes a single catalog item. New items are appended after the
// current highest position so catalog iteration order survives a reload.
func (s *Store) UpsertItem(item *ItemFeatures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	var position int
	err := s.db.QueryRow(
		"SELECT position FROM catalog_items WHERE item_id = ?", item.ItemID,
	).Scan(&position)
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(
			"SELECT COALESCE(MAX(position), -1) + 1 FROM catalog_items",
		).Scan(&position)
	}
	if err != nil {
		return fmt.Errorf("store: resolve item position: %w", err)
	}

	return upsertItem(s.db, item, position)
}

// SaveSnapshot atomically replaces all persisted state with the given
// profiles and items. Item positions follow slice order.
func (s *Store) SaveSnapshot(profiles []*UserProfile, items []ItemFeatures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	if _, err := tx.Exec("DELETE FROM user_profiles"); err != nil {
		return fmt.Errorf("store: clear profiles: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM catalog_items"); err != nil {
		return fmt.Errorf("store: clear items: %w", err)
	}

	for _, prof := range profiles {
		if err := upsertProfile(tx, prof); err != nil {
			return err
		}
	}
	for i := range items {
		if err := upsertItem(tx, &items[i], i); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`
		INSERT INTO metadata (key, value) VALUES ('last_saved', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("store: record save time: %w", err)
	}

	return tx.Commit()
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertProfile(db execer, prof *UserProfile) error {
	preferences, err := json.Marshal(prof.Preferences)
	if err != nil {
		return fmt.Errorf("store: encode preferences: %w", err)
	}
	history, err := json.Marshal(prof.OrderHistory)
	if err != nil {
		return fmt.Errorf("store: encode history: %w", err)
	}
	restrictions, err := json.Marshal(prof.DietaryRestrictions)
	if err != nil {
		return fmt.Errorf("store: encode restrictions: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO user_profiles (user_id, preferences, order_history, dietary_restrictions, price_sensitivity, avg_order_value, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferences = excluded.preferences,
			order_history = excluded.order_history,
			dietary_restrictions = excluded.dietary_restrictions,
			price_sensitivity = excluded.price_sensitivity,
			avg_order_value = excluded.avg_order_value,
			last_updated = excluded.last_updated
	`,
		prof.UserID,
		string(preferences),
		string(history),
		string(restrictions),
		prof.PriceSensitivity,
		prof.AvgOrderValue,
		prof.LastUpdated.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("store: upsert profile: %w", err)
	}
	return nil
}

func upsertItem(db execer, item *ItemFeatures, position int) error {
	tags, err := json.Marshal(item.Tags)
	if err != nil {
		return fmt.Errorf("store: encode tags: %w", err)
	}

	vegetarian := 0
	if item.IsVegetarian {
		vegetarian = 1
	}

	_, err = db.Exec(`
		INSERT INTO catalog_items (item_id, name, cuisine, spice_level, is_vegetarian, price, rating, tags, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET
			name = excluded.name,
			cuisine = excluded.cuisine,
			spice_level = excluded.spice_level,
			is_vegetarian = excluded.is_vegetarian,
			price = excluded.price,
			rating = excluded.rating,
			tags = excluded.tags,
			position = excluded.position
	`,
		item.ItemID,
		item.Name,
		item.Cuisine,
		item.SpiceLevel,
		vegetarian,
		item.Price,
		item.Rating,
		string(tags),
		position,
	)
	if err != nil {
		return fmt.Errorf("store: upsert item: %w", err)
	}
	return nil
}

// LoadProfiles reads all persisted profiles.
func (s *Store) LoadProfiles() ([]UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT user_id, preferences, order_history, dietary_restrictions, price_sensitivity, avg_order_value, last_updated
		FROM user_profiles ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query profiles: %w", err)
	}
	defer rows.Close()

	var profiles []UserProfile
	for rows.Next() {
		var (
			prof         UserProfile
			preferences  string
			history      string
			restrictions string
			lastUpdated  string
		)
		if err := rows.Scan(&prof.UserID, &preferences, &history, &restrictions, &prof.PriceSensitivity, &prof.AvgOrderValue, &lastUpdated); err != nil {
			return nil, fmt.Errorf("store: scan profile: %w", err)
		}

		if err := json.Unmarshal([]byte(preferences), &prof.Preferences); err != nil {
			return nil, fmt.Errorf("store: decode preferences: %w", err)
		}
		if err := json.Unmarshal([]byte(history), &prof.OrderHistory); err != nil {
			return nil, fmt.Errorf("store: decode history: %w", err)
		}
		if err := json.Unmarshal([]byte(restrictions), &prof.DietaryRestrictions); err != nil {
			return nil, fmt.Errorf("store: decode restrictions: %w", err)
		}
		prof.LastUpdated, _ = time.Parse(time.RFC3339, lastUpdated)

		profiles = append(profiles, prof)
	}
	return profiles, rows.Err()
}

// LoadItems reads all persisted catalog items in stored position order.
func (s *Store) LoadItems() ([]ItemFeatures, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`
		SELECT item_id, name, cuisine, spice_level, is_vegetarian, price, rating, tags
		FROM catalog_items ORDER BY position, item_id
	`)
	if err != nil {
		return nil, fmt.Errorf("store: query items: %w", err)
	}
	defer rows.Close()

	var items []ItemFeatures
	for rows.Next() {
		var (
			item       ItemFeatures
			vegetarian int
			tags       string
		)
		if err := rows.Scan(&item.ItemID, &item.Name, &item.Cuisine, &item.SpiceLevel, &vegetarian, &item.Price, &item.Rating, &tags); err != nil {
			return nil, fmt.Errorf("store: scan item: %w", err)
		}
		item.IsVegetarian = vegetarian != 0
		if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
			return nil, fmt.Errorf("store: decode tags: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetMetadata returns the metadata value for key, empty when unset.
func (s *Store) GetMetadata(key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return "", ErrStoreClosed
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetMetadata stores a metadata key/value pair.
func (s *Store) SetMetadata(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Counts returns the number of persisted profiles and items.
func (s *Store) Counts() (profiles, items int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, 0, ErrStoreClosed
	}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM user_profiles").Scan(&profiles); err != nil {
		return 0, 0, err
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM catalog_items").Scan(&items); err != nil {
		return 0, 0, err
	}
	return profiles, items, nil
}

// SchemaVersion returns the store schema version.
func (s *Store) SchemaVersion() string {
	return schemaVersion
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
