package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"leaguerats/pkg/errs"
	"leaguerats/pkg/messages"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row of the documents table.
type documentRecord struct {
	Path       string         `gorm:"column:path;primaryKey"`
	Collection string         `gorm:"column:collection"`
	DocID      string         `gorm:"column:doc_id"`
	Data       datatypes.JSON `gorm:"column:data"`
	CreatedAt  time.Time      `gorm:"column:created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at"`
}

func (documentRecord) TableName() string {
	return "documents"
}

func (r documentRecord) toDocument() (Document, error) {
	data := map[string]any{}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &data); err != nil {
			return Document{}, err
		}
	}
	return Document{ID: r.DocID, Path: r.Path, Data: data, UpdatedAt: r.UpdatedAt}, nil
}

type PostgresStoreDeps struct {
	DB       *gorm.DB
	Notifier Notifier
	Logger   zerolog.Logger

	// Used by listeners when no notifier is available.
	PollInterval time.Duration
}

// PostgresStore keeps documents as JSONB rows.
type PostgresStore struct {
	db           *gorm.DB
	notifier     Notifier
	logger       zerolog.Logger
	pollInterval time.Duration
}

func NewPostgresStore(deps *PostgresStoreDeps) *PostgresStore {
	interval := deps.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return &PostgresStore{
		db:           deps.DB,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		pollInterval: interval,
	}
}

// Get returns the document at path.
func (s *PostgresStore) Get(ctx context.Context, path string) (Document, error) {
	if _, _, err := SplitDocumentPath(path); err != nil {
		return Document{}, err
	}

	var record documentRecord
	err := s.db.WithContext(ctx).Where("path = ?", CleanPath(path)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Document{}, fmt.Errorf("document %s: %w", path, errs.ErrNotFound)
	}
	if err != nil {
		return Document{}, fmt.Errorf("document %s: %w: %v", path, errs.ErrTransport, err)
	}

	doc, err := record.toDocument()
	if err != nil {
		return Document{}, fmt.Errorf("document %s: %w: %v", path, errs.ErrTransport, err)
	}
	return doc, nil
}

// Query returns the matching documents of a collection.
func (s *PostgresStore) Query(ctx context.Context, query Query) ([]Document, error) {
	collection, err := validateCollection(query.Collection)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx).Model(&documentRecord{}).Where("collection = ?", collection)

	for _, filter := range query.Where {
		tx = tx.Where(datatypes.JSONQuery("data").Equals(filter.Value, strings.Split(filter.Field, ".")...))
	}

	direction := "ASC"
	if query.Desc {
		direction = "DESC"
	}

	fieldPath := jsonPath(query.OrderBy)
	if query.StartAfter != nil {
		tx = startAfter(tx, query, fieldPath)
	}

	if query.OrderBy != "" {
		tx = tx.Order(clause.OrderBy{Expression: clause.Expr{
			SQL:  fmt.Sprintf("data #> ?::text[] %s, doc_id %s", direction, direction),
			Vars: []any{fieldPath},
		}})
	} else {
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "doc_id"}, Desc: query.Desc})
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var records []documentRecord
	if err := tx.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w: %v", collection, errs.ErrTransport, err)
	}

	docs := make([]Document, 0, len(records))
	for _, record := range records {
		doc, err := record.toDocument()
		if err != nil {
			return nil, fmt.Errorf("query %s: %w: %v", collection, errs.ErrTransport, err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Rows strictly after the cursor in the query ordering.
// Missing fields sort last ascending and first descending, as postgres NULLs do.
func startAfter(tx *gorm.DB, query Query, fieldPath string) *gorm.DB {
	cursor := query.StartAfter

	if query.OrderBy == "" {
		if query.Desc {
			return tx.Where("doc_id < ?", cursor.ID)
		}
		return tx.Where("doc_id > ?", cursor.ID)
	}

	value, ok := cursor.Field(query.OrderBy)
	if !ok {
		if query.Desc {
			return tx.Where("(data #> ?::text[] IS NOT NULL OR doc_id < ?)", fieldPath, cursor.ID)
		}
		return tx.Where("(data #> ?::text[] IS NULL AND doc_id > ?)", fieldPath, cursor.ID)
	}

	encoded, _ := json.Marshal(value)
	if query.Desc {
		return tx.Where("(data #> ?::text[], doc_id) < (?::jsonb, ?)", fieldPath, string(encoded), cursor.ID)
	}
	return tx.Where("((data #> ?::text[], doc_id) > (?::jsonb, ?) OR data #> ?::text[] IS NULL)",
		fieldPath, string(encoded), cursor.ID, fieldPath)
}

// Postgres text array literal of a dotted path.
func jsonPath(field string) string {
	if field == "" {
		return "{}"
	}
	return "{" + strings.ReplaceAll(field, ".", ",") + "}"
}

// Add stores data under a generated id.
func (s *PostgresStore) Add(ctx context.Context, collection string, data any) (Document, error) {
	collection, err := validateCollection(collection)
	if err != nil {
		return Document{}, err
	}

	path := Join(collection, uuid.NewString())
	if err := s.Set(ctx, path, data); err != nil {
		return Document{}, err
	}
	return s.Get(ctx, path)
}

// Set creates or fully replaces the document at path.
func (s *PostgresStore) Set(ctx context.Context, path string, data any) error {
	collection, id, err := SplitDocumentPath(path)
	if err != nil {
		return err
	}

	normalized, err := Normalize(data)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrInvalidInput, err)
	}

	path = CleanPath(path)
	now := time.Now().UTC()
	record := documentRecord{
		Path:       path,
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(encoded),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("set %s: %w: %v", path, errs.ErrTransport, err)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, path); err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("failed to broadcast document change")
		}
	}
	return nil
}

// Listen delivers the current snapshot, then a full re-read after every change.
// Without a notifier the path is polled and only changed snapshots are delivered.
func (s *PostgresStore) Listen(ctx context.Context, path string, onSnapshot func(Snapshot), onError func(error)) (Unsubscribe, error) {
	if len(segments(path)) == 0 {
		return nil, fmt.Errorf("%w: empty listen path", errs.ErrInvalidInput)
	}
	path = CleanPath(path)

	initial, err := s.read(ctx, path)
	if err != nil {
		return nil, err
	}
	onSnapshot(initial)

	ctx, cancel := context.WithCancel(ctx)
	trigger := make(chan struct{}, 1)

	var stopNotifier Unsubscribe
	if s.notifier != nil {
		stopNotifier, err = s.notifier.Subscribe(ctx, func(changed string) {
			if !affects(path, changed) {
				return
			}
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("path", path).Msg("push unavailable, polling instead")
			stopNotifier = nil
		}
	}

	l := &listener{
		store:      s,
		path:       path,
		trigger:    trigger,
		poll:       stopNotifier == nil,
		onSnapshot: onSnapshot,
		onError:    onError,
		last:       fingerprint(initial),
	}
	go l.run(ctx)

	return func() {
		cancel()
		if stopNotifier != nil {
			stopNotifier()
		}
	}, nil
}

func (s *PostgresStore) read(ctx context.Context, path string) (Snapshot, error) {
	snapshot := Snapshot{Path: path, Documents: []Document{}}

	if IsDocumentPath(path) {
		doc, err := s.Get(ctx, path)
		if errors.Is(err, errs.ErrNotFound) {
			return snapshot, nil
		}
		if err != nil {
			return snapshot, err
		}
		snapshot.Documents = append(snapshot.Documents, doc)
		return snapshot, nil
	}

	docs, err := s.Query(ctx, Query{Collection: path})
	if err != nil {
		return snapshot, err
	}
	snapshot.Documents = docs
	return snapshot, nil
}

type listener struct {
	store      *PostgresStore
	path       string
	trigger    chan struct{}
	poll       bool
	onSnapshot func(Snapshot)
	onError    func(error)
	last       string
}

func (l *listener) run(ctx context.Context) {
	var tick <-chan time.Time
	if l.poll {
		ticker := time.NewTicker(l.store.pollInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-l.trigger:
			l.refresh(ctx, true)
		case <-tick:
			l.refresh(ctx, false)
		}
	}
}

func (l *listener) refresh(ctx context.Context, always bool) {
	snapshot, err := l.store.read(ctx, l.path)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		l.store.logger.Error().Err(err).Msgf(messages.ListenerFailed, l.path)
		if l.onError != nil {
			l.onError(err)
		}
		return
	}

	current := fingerprint(snapshot)
	if !always && current == l.last {
		return
	}
	l.last = current
	l.onSnapshot(snapshot)
}

func fingerprint(snapshot Snapshot) string {
	encoded, _ := json.Marshal(snapshot.Documents)
	return string(encoded)
}
