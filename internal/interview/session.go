package interview

import "time"

// Turn is one transcript entry in an interview session.
type Turn struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is server-held conversation state for one interview. All mutation
// goes through the Manager, which owns the locking; callers only ever see
// copies.
type Session struct {
	ID              string    `json:"id"`
	Problem         string    `json:"problem"` // trigger phrase already stripped
	Phase           Phase     `json:"phase"`
	Interactions    int       `json:"interactions"`
	MaxInteractions int       `json:"max_interactions"`
	CreatedAt       time.Time `json:"created_at"`
	LastActive      time.Time `json:"last_active"`
	Transcript      []Turn    `json:"transcript"`
}

// clone returns a deep copy safe to hand to callers outside the manager's lock.
func (s *Session) clone() *Session {
	cp := *s
	cp.Transcript = make([]Turn, len(s.Transcript))
	copy(cp.Transcript, s.Transcript)
	return &cp
}
