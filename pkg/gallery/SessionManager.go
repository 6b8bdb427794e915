package gallery

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type SessionManagerConfig struct {
	// TTL is how long an untouched session survives before the sweep
	// removes it.
	TTL time.Duration

	// SurfaceFactory builds the rendering surface for each new
	// session's lightbox.
	SurfaceFactory func() Surface

	// ModalConfig is applied to each new session's modal controller.
	ModalConfig ModalControllerConfig
}

/*
SessionManager is the registry of live gallery sessions, keyed by the
visitor's session cookie. Sessions are created lazily per photographer
page and swept once their TTL lapses.
*/
type SessionManager struct {
	config SessionManagerConfig

	mu       sync.RWMutex
	sessions map[string]*Session

	sweepTicker *time.Ticker
	stopSweep   chan struct{}
	wg          *sync.WaitGroup
}

func NewSessionManager(config SessionManagerConfig) *SessionManager {
	if config.TTL <= 0 {
		config.TTL = 30 * time.Minute
	}

	return &SessionManager{
		config:    config,
		sessions:  map[string]*Session{},
		stopSweep: make(chan struct{}),
		wg:        &sync.WaitGroup{},
	}
}

/*
GetOrCreate returns the session for this visitor and photographer. A
session bound to a different photographer is replaced: gallery state is
scoped to one photographer page at a time.
*/
func (m *SessionManager) GetOrCreate(id string, photographerID int) (*Session, error) {
	var (
		err error
	)

	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[id]; ok && existing.PhotographerID == photographerID {
		existing.Touch()
		return existing, nil
	}

	lightbox, err := NewLightbox(LightboxConfig{
		Surface: m.config.SurfaceFactory(),
	})

	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:             id,
		PhotographerID: photographerID,
		Lightbox:       lightbox,
		Modals:         NewModalController(m.config.ModalConfig),
	}

	session.Touch()
	m.sessions[id] = session

	return session, nil
}

// Get returns an existing session without creating one.
func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	return session, ok
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweepRoutine starts a periodic routine that removes sessions
// whose TTL has lapsed.
func (m *SessionManager) StartSweepRoutine(interval time.Duration) {
	m.stopSweep = make(chan struct{})
	m.sweepTicker = time.NewTicker(interval)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		for {
			select {
			case <-m.sweepTicker.C:
				m.sweepExpired()

			case <-m.stopSweep:
				m.sweepTicker.Stop()
				return
			}
		}
	}()

	slog.Info("gallery session sweep started", "interval", interval, "ttl", m.config.TTL)
}

// StopSweepRoutine stops the sweep routine.
func (m *SessionManager) StopSweepRoutine() {
	if m.sweepTicker != nil {
		close(m.stopSweep)
		m.wg.Wait()
		slog.Info("gallery session sweep stopped")
	}
}

func (m *SessionManager) sweepExpired() {
	cutoff := time.Now().Add(-m.config.TTL)
	removed := 0

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, session := range m.sessions {
		if session.LastTouched().Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		slog.Info("swept expired gallery sessions", "removed", removed, "remaining", len(m.sessions))
	}
}
