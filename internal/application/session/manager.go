package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

// Session usuario autenticado con su Store y la vista actual.
type Session struct {
	ID        string
	User      entity.User
	Store     *Store
	CreatedAt time.Time

	mu     sync.Mutex
	view   string
	cancel context.CancelFunc
}

// CurrentView vista actual.
func (s *Session) CurrentView() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Navigate cambia la vista solo si la clave existe. Devuelve la vista vigente y si cambió.
func (s *Session) Navigate(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !view.Exists(key) {
		return s.view, false
	}
	s.view = key
	return s.view, true
}

// Wait espera a que la carga en curso termine.
func (s *Session) Wait(ctx context.Context) (State, error) {
	return s.Store.Wait(ctx)
}

// swapCancel guarda el cancel de la carga nueva y devuelve el anterior.
func (s *Session) swapCancel(cancel context.CancelFunc) context.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.cancel
	s.cancel = cancel
	return prev
}

func (s *Session) close() {
	if cancel := s.swapCancel(nil); cancel != nil {
		cancel()
	}
	s.Store.destroy()
}

// Manager crea y destruye sesiones. Un usuario tiene a lo sumo una sesión: un segundo
// login cierra la anterior y cancela su carga.
type Manager struct {
	auth    repository.Authenticator
	backend repository.Backend
	log     *logger.Logger

	base   context.Context
	stop   context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	byID   map[string]*Session
	byUser map[string]string
}

// NewManager construye el manager. Las cargas corren con un contexto propio, independiente
// de la request que las dispara; Close las cancela.
func NewManager(auth repository.Authenticator, backend repository.Backend, log *logger.Logger) *Manager {
	base, stop := context.WithCancel(context.Background())
	return &Manager{
		auth:    auth,
		backend: backend,
		log:     log,
		base:    base,
		stop:    stop,
		byID:    make(map[string]*Session),
		byUser:  make(map[string]string),
	}
}

// Login autentica, crea la sesión y dispara exactamente una carga en segundo plano.
func (m *Manager) Login(ctx context.Context, creds repository.Credentials) (*Session, error) {
	user, err := m.auth.Authenticate(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		User:      *user,
		Store:     NewStore(m.backend, m.log.Named("store")),
		CreatedAt: time.Now(),
		view:      view.InitialView(user.Role),
	}

	m.mu.Lock()
	var prev *Session
	if prevID, ok := m.byUser[user.ID]; ok {
		prev = m.byID[prevID]
		delete(m.byID, prevID)
	}
	m.byID[sess.ID] = sess
	m.byUser[user.ID] = sess.ID
	m.mu.Unlock()

	if prev != nil {
		prev.close()
		m.log.Info().Str("user_id", user.ID).Str("session_id", prev.ID).Msg("sesión anterior reemplazada")
	}
	if !user.Role.Known() {
		m.log.Warn().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("rol no reconocido, vista por defecto")
	}

	m.startLoad(sess)
	m.log.Info().
		Str("session_id", sess.ID).
		Str("user_id", user.ID).
		Str("role", string(user.Role)).
		Str("view", sess.view).
		Msg("sesión iniciada")
	return sess, nil
}

// startLoad abre una generación nueva antes de cancelar la anterior: la carga vieja
// siempre termina como reemplazada.
func (m *Manager) startLoad(sess *Session) {
	ctx, cancel := context.WithCancel(m.base)
	gen := sess.Store.begin()
	if prev := sess.swapCancel(cancel); prev != nil {
		prev()
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer cancel()
		err := sess.Store.run(ctx, gen)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrSuperseded), errors.Is(err, context.Canceled):
			m.log.Debug().Str("session_id", sess.ID).Uint64("gen", gen).Msg("carga descartada")
		default:
			m.log.Warn().Err(err).Str("session_id", sess.ID).Msg("carga fallida")
		}
	}()
}

// Get sesión por id.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Reload recarga los datos de la sesión (tras corregir el esquema, por ejemplo). m.mu se
// mantiene hasta abrir la generación: un Logout concurrente cierra la sesión después y
// su destroy descarta esta carga.
func (m *Manager) Reload(id string) (*Session, error) {
	m.mu.Lock()
	sess, ok := m.byID[id]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	m.startLoad(sess)
	m.mu.Unlock()
	m.log.Info().Str("session_id", id).Msg("recarga solicitada")
	return sess, nil
}

// Logout cancela la carga y destruye el Store.
func (m *Manager) Logout(id string) error {
	m.mu.Lock()
	sess, ok := m.byID[id]
	if ok {
		delete(m.byID, id)
		if m.byUser[sess.User.ID] == id {
			delete(m.byUser, sess.User.ID)
		}
	}
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}
	sess.close()
	m.log.Info().Str("session_id", id).Str("user_id", sess.User.ID).Msg("sesión cerrada")
	return nil
}

// Close cierra todas las sesiones y espera a que terminen las cargas.
func (m *Manager) Close() {
	m.stop()
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.byID))
	for _, s := range m.byID {
		sessions = append(sessions, s)
	}
	m.byID = make(map[string]*Session)
	m.byUser = make(map[string]string)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	m.wg.Wait()
}
