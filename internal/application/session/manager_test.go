package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/elikia-api/internal/application/session"
	"github.com/jhoicas/elikia-api/internal/application/view"
	"github.com/jhoicas/elikia-api/internal/domain"
	"github.com/jhoicas/elikia-api/internal/domain/entity"
	"github.com/jhoicas/elikia-api/internal/domain/repository"
	"github.com/jhoicas/elikia-api/pkg/logger"
)

func newManager(t *testing.T, fb *fakeBackend) *session.Manager {
	t.Helper()
	auth := fakeAuth{users: map[string]entity.User{
		"admin@elikia.cd":   {ID: "u-1", Email: "admin@elikia.cd", Role: entity.RoleAdmin},
		"caisse@elikia.cd":  {ID: "u-2", Email: "caisse@elikia.cd", Role: entity.RoleCaisse},
		"stock@elikia.cd":   {ID: "u-3", Email: "stock@elikia.cd", Role: entity.RoleGestock},
		"inconnu@elikia.cd": {ID: "u-4", Email: "inconnu@elikia.cd", Role: entity.Role("VISITEUR")},
	}}
	m := session.NewManager(auth, fb, logger.Nop())
	t.Cleanup(m.Close)
	return m
}

func waitReady(t *testing.T, s *session.Session) session.State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := s.Wait(ctx)
	require.NoError(t, err)
	return st
}

func TestManager_LoginVistaInicialPorRol(t *testing.T) {
	m := newManager(t, newFakeBackend())
	cases := map[string]string{
		"admin@elikia.cd":   view.Dashboard,
		"caisse@elikia.cd":  view.POS,
		"stock@elikia.cd":   view.Inventory,
		"inconnu@elikia.cd": view.Dashboard,
	}
	for email, want := range cases {
		sess, err := m.Login(context.Background(), repository.Credentials{Email: email})
		require.NoError(t, err, email)
		assert.Equal(t, want, sess.CurrentView(), email)
		assert.Equal(t, session.PhaseReady, waitReady(t, sess).Phase)
	}
}

func TestManager_LoginInvalido(t *testing.T) {
	m := newManager(t, newFakeBackend())
	_, err := m.Login(context.Background(), repository.Credentials{Email: "nadie@x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_SegundoLoginReemplazaLaSesion(t *testing.T) {
	fb := newFakeBackend()
	gate := make(chan struct{})
	fb.gates = []chan struct{}{gate}
	m := newManager(t, fb)
	ctx := context.Background()

	first, err := m.Login(ctx, repository.Credentials{Email: "admin@elikia.cd"})
	require.NoError(t, err)
	<-fb.entered

	second, err := m.Login(ctx, repository.Credentials{Email: "admin@elikia.cd"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = m.Get(first.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Equal(t, session.PhaseIdle, first.Store.State().Phase)

	got, err := m.Get(second.ID)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseReady, waitReady(t, got).Phase)
}

func TestManager_Navigate(t *testing.T) {
	m := newManager(t, newFakeBackend())
	sess, err := m.Login(context.Background(), repository.Credentials{Email: "caisse@elikia.cd"})
	require.NoError(t, err)

	current, changed := sess.Navigate("unknown")
	assert.False(t, changed)
	assert.Equal(t, view.POS, current)

	current, changed = sess.Navigate(view.Reports)
	assert.True(t, changed)
	assert.Equal(t, view.Reports, current)
	assert.Equal(t, view.Reports, sess.CurrentView())
}

func TestManager_ReloadTrasCorregirElEsquema(t *testing.T) {
	fb := newFakeBackend()
	fb.fetchErr[repository.CollectionStoreSettings] = domain.ErrSchemaMissing
	m := newManager(t, fb)

	sess, err := m.Login(context.Background(), repository.Credentials{Email: "admin@elikia.cd"})
	require.NoError(t, err)
	st := waitReady(t, sess)
	assert.Equal(t, session.PhaseFailed, st.Phase)
	assert.Equal(t, domain.FailureMissingSchema, st.Failure)

	fb.mu.Lock()
	delete(fb.fetchErr, repository.CollectionStoreSettings)
	fb.mu.Unlock()

	_, err = m.Reload(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, session.PhaseReady, waitReady(t, sess).Phase)
}

func TestManager_Logout(t *testing.T) {
	m := newManager(t, newFakeBackend())
	sess, err := m.Login(context.Background(), repository.Credentials{Email: "stock@elikia.cd"})
	require.NoError(t, err)
	waitReady(t, sess)

	require.NoError(t, m.Logout(sess.ID))
	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	assert.Empty(t, sess.Store.Snapshot().Products)
	assert.ErrorIs(t, m.Logout(sess.ID), domain.ErrSessionNotFound)

	_, err = m.Reload(sess.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

// Reload concurrente con Logout: ninguna carga sobrevive a la sesión cerrada.
func TestManager_ReloadConcurrenteConLogout(t *testing.T) {
	m := newManager(t, newFakeBackend())
	sess, err := m.Login(context.Background(), repository.Credentials{Email: "admin@elikia.cd"})
	require.NoError(t, err)
	waitReady(t, sess)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, err := m.Reload(sess.ID); err != nil {
				return
			}
		}
	}()
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, m.Logout(sess.ID))
	<-done

	m.Close()
	snap := sess.Store.Snapshot()
	assert.Equal(t, session.PhaseIdle, snap.State.Phase)
	assert.Empty(t, snap.Products)
}
