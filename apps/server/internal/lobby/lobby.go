package lobby

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/apps/server/internal/table"
	"blackjack-lite/blackjack"
)

// Lobby owns the open practice tables. Every connection gets its own table; nothing is
// shared between players.
type Lobby struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
	nextID uint64

	defaultConfig blackjack.Config
	store         practice.Service
	logger        *slog.Logger
}

func New(defaultConfig blackjack.Config, store practice.Service, logger *slog.Logger) *Lobby {
	if logger == nil {
		logger = slog.Default()
	}
	return &Lobby{
		tables:        make(map[string]*table.Table),
		defaultConfig: defaultConfig,
		store:         store,
		logger:        logger,
	}
}

// Open creates a table for userID. An empty mode keeps the server default.
func (l *Lobby) Open(userID, mode string, send func(data []byte)) (*table.Table, error) {
	cfg := l.defaultConfig
	cfg.DeckOverride = nil
	if mode = strings.TrimSpace(mode); mode != "" {
		cfg.Mode = blackjack.Mode(mode)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	tableID := fmt.Sprintf("practice_%d", l.nextID)
	t, err := table.New(tableID, userID, cfg, send, l.store, l.logger)
	if err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	l.tables[tableID] = t

	l.logger.Info("[Lobby] Opened table", "table", tableID, "user", userID, "mode", cfg.Mode)
	return t, nil
}

// Get returns a table by ID
func (l *Lobby) Get(tableID string) *table.Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tables[tableID]
}

// Close ends the table's session and forgets it.
func (l *Lobby) Close(tableID string) {
	l.mu.Lock()
	t := l.tables[tableID]
	delete(l.tables, tableID)
	l.mu.Unlock()

	if t == nil {
		return
	}
	t.Close()
	l.logger.Info("[Lobby] Closed table", "table", tableID)
}

// CloseAll ends every open session, waiting for their writes to reach the store.
func (l *Lobby) CloseAll() {
	l.mu.Lock()
	open := make([]*table.Table, 0, len(l.tables))
	for id, t := range l.tables {
		open = append(open, t)
		delete(l.tables, id)
	}
	l.mu.Unlock()

	for _, t := range open {
		t.Close()
		t.WaitPersist()
	}
}

// ListTables returns all table IDs
func (l *Lobby) ListTables() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.tables))
	for id := range l.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TablesFor lists the tables a user has open.
func (l *Lobby) TablesFor(userID string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var ids []string
	for id, t := range l.tables {
		if t.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
