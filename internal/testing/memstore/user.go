package memstore

import (
	"context"
	"time"

	"github.com/devaliuz/Epic-Charaktersheet/internal/domain"
)

// CountUsers implements repository.User.
func (s *Store) CountUsers(ctx context.Context) (n int64, err error) {
	s.locked(func(st *state) { n = int64(len(st.users)) })
	return n, nil
}

// CreateUser implements repository.User.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) (err error) {
	s.locked(func(st *state) {
		for _, u := range st.users {
			if u.Username == user.Username {
				err = domain.ErrUsernameTaken
				return
			}
		}
		user.ID = st.nextID()
		user.CreatedAt = s.Now()
		st.users[user.ID] = *user
	})
	return err
}

// GetUserByID implements repository.User.
func (s *Store) GetUserByID(ctx context.Context, id int64) (user *domain.User, err error) {
	s.locked(func(st *state) {
		u, ok := st.users[id]
		if !ok {
			err = domain.ErrUserNotFound
			return
		}
		user = &u
	})
	return user, err
}

// GetUserByUsername implements repository.User.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (user *domain.User, err error) {
	s.locked(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				user = &u
				return
			}
		}
		err = domain.ErrUserNotFound
	})
	return user, err
}

// CreateAuthSession implements repository.AuthSession.
func (s *Store) CreateAuthSession(ctx context.Context, session domain.AuthSession) (err error) {
	s.locked(func(st *state) {
		if _, ok := st.users[session.UserID]; !ok {
			err = domain.ErrUserNotFound
			return
		}
		st.authSessions[session.ID] = session
	})
	return err
}

// GetAuthSession implements repository.AuthSession.
func (s *Store) GetAuthSession(ctx context.Context, id string) (session *domain.AuthSession, err error) {
	s.locked(func(st *state) {
		v, ok := st.authSessions[id]
		if !ok {
			err = domain.ErrAuthSessionNotFound
			return
		}
		session = &v
	})
	return session, err
}

// DeleteAuthSession implements repository.AuthSession.
func (s *Store) DeleteAuthSession(ctx context.Context, id string) error {
	s.locked(func(st *state) { delete(st.authSessions, id) })
	return nil
}

// DeleteExpiredAuthSessions implements repository.AuthSession.
func (s *Store) DeleteExpiredAuthSessions(ctx context.Context, now time.Time) (n int64, err error) {
	s.locked(func(st *state) {
		for id, session := range st.authSessions {
			if session.Expired(now) {
				delete(st.authSessions, id)
				n++
			}
		}
	})
	return n, nil
}

// AuthSessionCount returns the number of stored login sessions.
func (s *Store) AuthSessionCount() (n int) {
	s.locked(func(st *state) { n = len(st.authSessions) })
	return n
}
