package mindtile

import (
	"sync"
	"time"

	"github.com/eringen/mindtile/block"
)

// editorSession owns the in-memory canvas document of one post while an
// admin edits it. Handlers run concurrently, so every document mutation goes
// through the session's mutex; within it the drag controller is the single
// writer the document model expects.
type editorSession struct {
	mu       sync.Mutex
	ctrl     *block.Controller
	saving   bool
	lastUsed time.Time
}

// withDoc runs fn while holding the session lock.
func (s *editorSession) withDoc(fn func(ctrl *block.Controller)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUsed = time.Now()
	fn(s.ctrl)
}

// beginSave sets the busy flag. It returns false while a save is already in
// flight, so overlapping saves from the same session are rejected rather
// than interleaved.
func (s *editorSession) beginSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saving {
		return false
	}
	s.saving = true
	s.lastUsed = time.Now()
	return true
}

func (s *editorSession) endSave() {
	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
}

// editorSessions tracks the open builder sessions, one per post. Sessions
// idle longer than the TTL are swept; unsaved edits go with them, which
// mirrors closing the builder tab.
type editorSessions struct {
	mu       sync.Mutex
	sessions map[string]*editorSession
	ttl      time.Duration
	done     chan struct{}
}

func newEditorSessions(ttl time.Duration) *editorSessions {
	s := &editorSessions{
		sessions: make(map[string]*editorSession),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *editorSessions) sweep() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for postID, sess := range s.sessions {
				sess.mu.Lock()
				idle := sess.lastUsed.Before(cutoff) && !sess.saving
				sess.mu.Unlock()
				if idle {
					delete(s.sessions, postID)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

func (s *editorSessions) stop() {
	close(s.done)
}

// get returns the open session for a post, if any.
func (s *editorSessions) get(postID string) (*editorSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[postID]
	return sess, ok
}

// open returns the existing session for a post, or starts one around doc.
// Reusing the live session means a page reload mid-edit does not throw away
// unsaved work.
func (s *editorSessions) open(postID string, doc *block.Document) *editorSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[postID]; ok {
		sess.mu.Lock()
		sess.lastUsed = time.Now()
		sess.mu.Unlock()
		return sess
	}
	sess := &editorSession{
		ctrl:     block.NewController(doc),
		lastUsed: time.Now(),
	}
	s.sessions[postID] = sess
	return sess
}

// drop discards a post's session, e.g. after the post is deleted.
func (s *editorSessions) drop(postID string) {
	s.mu.Lock()
	delete(s.sessions, postID)
	s.mu.Unlock()
}
