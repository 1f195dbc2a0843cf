package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samterminal/samclient/internal/client/repositories/state"
	"github.com/samterminal/samclient/internal/cryptox"
	"github.com/samterminal/samclient/internal/dbx"
)

const (
	keySession      = "session"
	keyLastUsername = "last_username"
)

var (
	ErrNoSession = errors.New("no saved session")
	// ErrLocked means the saved session is sealed and the store has no
	// passphrase to open it.
	ErrLocked = errors.New("saved session is sealed, passphrase required")
)

// envelope is the stored form: exactly one field is set.
type envelope struct {
	Sealed  *cryptox.Sealed `json:"sealed,omitempty"`
	Session *Session        `json:"session,omitempty"`
}

// Store persists one Session in the local database. With a passphrase the
// session is sealed before it is written.
type Store struct {
	db         *sql.DB
	passphrase []byte
}

func NewStore(db *sql.DB, passphrase string) *Store {
	s := &Store{db: db}
	if passphrase != "" {
		s.passphrase = []byte(passphrase)
	}
	return s
}

func (s *Store) Sealing() bool {
	return len(s.passphrase) > 0
}

// Save replaces the stored session and remembers its username.
func (s *Store) Save(ctx context.Context, sess Session) error {
	var env envelope
	if s.Sealing() {
		sealed, err := cryptox.Seal(sess, s.passphrase)
		if err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
		env.Sealed = sealed
	} else {
		env.Session = &sess
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := state.NewSQLiteRepository(tx)
		if err := repo.Put(ctx, keySession, raw); err != nil {
			return err
		}
		if sess.Username == "" {
			return nil
		}
		return repo.Put(ctx, keyLastUsername, []byte(sess.Username))
	})
}

func (s *Store) Load(ctx context.Context) (*Session, error) {
	raw, err := state.NewSQLiteRepository(s.db).Get(ctx, keySession)
	if errors.Is(err, state.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}

	switch {
	case env.Sealed != nil:
		if !s.Sealing() {
			return nil, ErrLocked
		}
		var sess Session
		if err := env.Sealed.Open(s.passphrase, &sess); err != nil {
			return nil, fmt.Errorf("open stored session: %w", err)
		}
		return &sess, nil
	case env.Session != nil:
		return env.Session, nil
	default:
		return nil, ErrNoSession
	}
}

// Clear forgets the session. The last username is kept for the next
// login prompt.
func (s *Store) Clear(ctx context.Context) error {
	return state.NewSQLiteRepository(s.db).Delete(ctx, keySession)
}

// LastUsername is "" when nobody has logged in yet.
func (s *Store) LastUsername(ctx context.Context) (string, error) {
	raw, err := state.NewSQLiteRepository(s.db).Get(ctx, keyLastUsername)
	if errors.Is(err, state.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) SavedAt(ctx context.Context) (time.Time, error) {
	at, err := state.NewSQLiteRepository(s.db).UpdatedAt(ctx, keySession)
	if errors.Is(err, state.ErrNotFound) {
		return time.Time{}, ErrNoSession
	}
	return at, err
}
