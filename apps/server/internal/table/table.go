package table

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"blackjack-lite/apps/server/internal/codec"
	"blackjack-lite/apps/server/internal/practice"
	"blackjack-lite/blackjack"

	"github.com/google/uuid"
)

// Table is one player's practice session. A single actor goroutine drains the event
// channel, so overlapping requests from the socket are applied one at a time.
type Table struct {
	ID     string
	UserID string

	mu        sync.RWMutex
	game      *blackjack.Game
	sessionID string
	closed    bool
	stopOnce  sync.Once

	events chan Event
	done   chan struct{}

	serverSeq uint64

	send    func(data []byte)
	store   practice.Service
	logger  *slog.Logger
	persist sync.WaitGroup

	// pending holds ended sessions the store has not accepted yet.
	pendMu  sync.Mutex
	pending []pendingSave
}

type pendingSave struct {
	session practice.SessionRecord
	score   *practice.ScoreRecord
	// sessionSaved skips the session row on retry when only the score failed.
	sessionSaved bool
}

type EventType int

const (
	EventJoin EventType = iota
	EventDeal
	EventAction
	EventCheckCount
	EventResetStats
	EventEndSession
	EventRetrySave
	EventClose
)

func (t EventType) String() string {
	switch t {
	case EventJoin:
		return "join"
	case EventDeal:
		return "deal"
	case EventAction:
		return "action"
	case EventCheckCount:
		return "check_count"
	case EventResetStats:
		return "reset"
	case EventEndSession:
		return "end_session"
	case EventRetrySave:
		return "save_retry"
	case EventClose:
		return "close"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

type Event struct {
	Type      EventType
	Action    blackjack.Action
	Value     string
	Timestamp time.Time
	Response  chan error
}

var ErrTableClosed = errors.New("table closed")

const persistTimeout = 5 * time.Second

// Error codes carried by error frames.
const (
	CodeInternal     = 1
	CodeClosed       = 2
	CodeInvalidState = 3
	CodeInvalidMove  = 4
	CodeBadCount     = 5
)

// New creates a table around a fresh game and starts its actor. send must be safe for
// concurrent use; store may be nil when persistence is disabled.
func New(id, userID string, cfg blackjack.Config, send func(data []byte), store practice.Service, logger *slog.Logger) (*Table, error) {
	game, err := blackjack.NewGame(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Table{
		ID:        id,
		UserID:    userID,
		game:      game,
		sessionID: uuid.NewString(),
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
		send:      send,
		store:     store,
		logger:    logger.With("table", id, "user", userID),
	}
	go t.run()

	gc := game.Config()
	t.logger.Info("[Table] Created", "mode", gc.Mode, "decks", gc.DeckCount, "penetration", gc.Penetration)
	return t, nil
}

func (t *Table) run() {
	for {
		select {
		case event := <-t.events:
			err := t.handleEvent(event)
			if event.Response != nil {
				event.Response <- err
			}
		case <-t.done:
			t.logger.Info("[Table] Actor stopped")
			return
		}
	}
}

func (t *Table) handleEvent(e Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed && e.Type != EventClose {
		return ErrTableClosed
	}

	switch e.Type {
	case EventJoin:
		t.sendSnapshot()
		return nil
	case EventDeal:
		return t.handleDeal()
	case EventAction:
		return t.handleAction(e.Action)
	case EventCheckCount:
		return t.handleCheckCount(e.Value)
	case EventResetStats:
		t.game.ResetStats()
		t.sessionID = uuid.NewString()
		t.sendSnapshot()
		return nil
	case EventEndSession:
		t.endSessionLocked()
		t.sendSnapshot()
		return nil
	case EventRetrySave:
		t.flushPending()
		return nil
	case EventClose:
		if !t.closed {
			t.endSessionLocked()
		}
		t.stopLocked()
		return nil
	default:
		return fmt.Errorf("unknown event type: %d", e.Type)
	}
}

func (t *Table) handleDeal() error {
	res, err := t.game.StartRound()
	if err != nil {
		return err
	}
	t.sendSnapshot()
	if res != nil {
		t.sendFrame(codec.ServerSettlement, codec.SettlementPayload(res))
	}
	return nil
}

func (t *Table) handleAction(action blackjack.Action) error {
	dec, res, err := t.game.Act(action)
	if err != nil {
		return err
	}
	t.logger.Debug("[Table] Action", "action", action, "correct", dec.Correct)
	t.sendFrame(codec.ServerDecision, codec.DecisionPayload(*dec))
	t.sendSnapshot()
	if res != nil {
		t.sendFrame(codec.ServerSettlement, codec.SettlementPayload(res))
	}
	return nil
}

func (t *Table) handleCheckCount(raw string) error {
	cc, err := t.game.CheckCount(raw)
	if err != nil {
		return err
	}
	t.sendFrame(codec.ServerCountCheck, codec.CountCheckPayload(cc))
	return nil
}

// endSessionLocked emits the summary, queues it for the store and starts a new session.
// An empty session is dropped, but earlier unsaved sessions are still flushed.
func (t *Table) endSessionLocked() {
	sum := t.game.Summary()
	sessionID := t.sessionID
	t.game.ResetStats()
	t.sessionID = uuid.NewString()

	if sum.HandsPlayed > 0 || sum.CorrectCount+sum.IncorrectCount > 0 {
		t.sendFrame(codec.ServerSummary, codec.SummaryPayload(sessionID, sum))
		t.logger.Info("[Table] Session ended", "session", sessionID, "hands", sum.HandsPlayed, "accuracy", sum.Accuracy)

		if t.store != nil {
			sess, score := practice.Records(t.UserID, sum)
			sess.ID = sessionID
			t.pendMu.Lock()
			t.pending = append(t.pending, pendingSave{session: sess, score: score})
			t.pendMu.Unlock()
		}
	}
	t.flushPending()
}

// flushPending writes every queued session in the background. Records the store
// rejects go back on the queue and the player gets a warning.
func (t *Table) flushPending() {
	if t.store == nil {
		return
	}
	t.pendMu.Lock()
	batch := t.pending
	t.pending = nil
	t.pendMu.Unlock()
	if len(batch) == 0 {
		return
	}

	t.persist.Add(1)
	go func() {
		defer t.persist.Done()
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		var failed []pendingSave
		var lastErr error
		for _, p := range batch {
			if err := t.save(ctx, &p); err != nil {
				t.logger.Warn("[Table] Persist session failed", "session", p.session.ID, "err", err)
				failed = append(failed, p)
				lastErr = err
			}
		}
		if len(failed) == 0 {
			return
		}
		t.pendMu.Lock()
		t.pending = append(failed, t.pending...)
		t.pendMu.Unlock()
		msg := fmt.Sprintf("%d session(s) could not be saved, send save_retry to try again: %v", len(failed), lastErr)
		t.sendFrame(codec.ServerWarning, codec.ErrorPayload(CodeInternal, msg))
	}()
}

func (t *Table) save(ctx context.Context, p *pendingSave) error {
	if !p.sessionSaved {
		if _, err := t.store.SaveSession(ctx, p.session); err != nil {
			return err
		}
		p.sessionSaved = true
	}
	if p.score == nil {
		return nil
	}
	_, err := t.store.SaveScore(ctx, *p.score)
	return err
}

// PendingSaves counts ended sessions still waiting for the store.
func (t *Table) PendingSaves() int {
	t.pendMu.Lock()
	defer t.pendMu.Unlock()
	return len(t.pending)
}

// SubmitEvent queues an event and waits for the actor to handle it.
func (t *Table) SubmitEvent(e Event) error {
	e.Timestamp = time.Now()
	if e.Response == nil {
		e.Response = make(chan error, 1)
	}

	t.mu.RLock()
	closed := t.closed
	t.mu.RUnlock()
	if closed {
		return ErrTableClosed
	}

	select {
	case t.events <- e:
	case <-t.done:
		return ErrTableClosed
	}

	select {
	case err := <-e.Response:
		return err
	case <-t.done:
		return ErrTableClosed
	}
}

// Close ends the session, persisting it, and stops the actor.
func (t *Table) Close() {
	if err := t.SubmitEvent(Event{Type: EventClose}); err != nil && !errors.Is(err, ErrTableClosed) {
		t.logger.Warn("[Table] Close failed", "err", err)
	}
}

// WaitPersist blocks until queued store writes finish.
func (t *Table) WaitPersist() {
	t.persist.Wait()
}

func (t *Table) stopLocked() {
	t.closed = true
	t.stopOnce.Do(func() {
		close(t.done)
	})
}

func (t *Table) IsClosed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.closed
}

func (t *Table) SessionID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessionID
}

// Snapshot returns current game state (thread-safe)
func (t *Table) Snapshot() blackjack.Snapshot {
	return t.game.Snapshot()
}

func (t *Table) nextSeq() uint64 {
	return atomic.AddUint64(&t.serverSeq, 1)
}

func (t *Table) sendSnapshot() {
	mode := t.game.Config().Mode
	// in counting mode the player keeps the count
	showCount := mode != blackjack.ModeCounting
	t.sendFrame(codec.ServerSnapshot, codec.SnapshotPayload(t.game.Snapshot(), mode, showCount))
}

func (t *Table) sendFrame(typ string, payload map[string]any) {
	data, err := codec.EncodeServer(t.ID, t.nextSeq(), typ, payload)
	if err != nil {
		t.logger.Error("[Table] Failed to encode frame", "type", typ, "err", err)
		return
	}
	if t.send != nil {
		t.send(data)
	}
}

// ErrorFrame encodes err as an error frame for the socket.
func (t *Table) ErrorFrame(err error) []byte {
	data, encErr := codec.EncodeServer(t.ID, t.nextSeq(), codec.ServerError, codec.ErrorPayload(ErrorCode(err), err.Error()))
	if encErr != nil {
		t.logger.Error("[Table] Failed to encode error frame", "err", encErr)
		return nil
	}
	return data
}

// ErrorCode maps engine and table errors to the codes carried by error frames.
func ErrorCode(err error) int {
	var actionErr *blackjack.InvalidActionError
	var countErr *blackjack.CountInputError
	var stateErr blackjack.InvalidStateError
	switch {
	case errors.Is(err, ErrTableClosed):
		return CodeClosed
	case errors.As(err, &actionErr):
		return CodeInvalidMove
	case errors.As(err, &countErr):
		return CodeBadCount
	case errors.Is(err, blackjack.ErrRoundInProgress), errors.Is(err, blackjack.ErrNoActiveRound), errors.As(err, &stateErr):
		return CodeInvalidState
	}
	return CodeInternal
}
