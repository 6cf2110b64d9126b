package server

import (
	"context"
	"time"

	"github.com/matzehuels/pagesmith/pkg/editor"
)

// liveSession is a loaded editor session and the time of its last request.
type liveSession struct {
	sess *editor.Session
	used time.Time
}

func (s *Server) newSession() *editor.Session {
	return editor.New(editor.Options{
		Registry:     s.reg,
		Store:        s.store,
		Logger:       s.logger,
		HistoryLimit: s.cfg.HistoryLimit,
		Retry:        s.cfg.Retry,
	})
}

// session returns the live session for id, loading it from the store on
// first use. Concurrent first requests may both load; the first one to
// finish wins and the other result is dropped.
func (s *Server) session(ctx context.Context, id string) (*editor.Session, error) {
	s.mu.Lock()
	now := s.now()
	s.evictIdle(now)
	if live, ok := s.sessions[id]; ok {
		live.used = now
		s.mu.Unlock()
		return live.sess, nil
	}
	s.mu.Unlock()

	loaded := s.newSession()
	if err := loaded.Load(ctx, id); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if live, ok := s.sessions[id]; ok {
		return live.sess, nil
	}
	s.sessions[id] = &liveSession{sess: loaded, used: s.now()}
	return loaded, nil
}

// evictIdle drops clean sessions that have not been used within
// SessionIdle. Callers hold mu.
func (s *Server) evictIdle(now time.Time) {
	for id, live := range s.sessions {
		if now.Sub(live.used) < s.cfg.SessionIdle || live.sess.Dirty() {
			continue
		}
		delete(s.sessions, id)
		s.logger.Debug("evicted idle session", "id", id, "idle", now.Sub(live.used).Round(time.Second))
	}
}

func (s *Server) track(id string, sess *editor.Session) {
	s.mu.Lock()
	now := s.now()
	s.evictIdle(now)
	s.sessions[id] = &liveSession{sess: sess, used: now}
	s.mu.Unlock()
}

func (s *Server) drop(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Sessions returns the number of live sessions.
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
