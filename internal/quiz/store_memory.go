package quiz

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryStore keeps everything in maps behind one RWMutex. It backs unit
// tests and the dependency-free dev mode (DB_DRIVER=memory). Slices track
// insertion order where the contract cares about it.
type memoryStore struct {
	mu            sync.RWMutex
	categories    map[string]Category
	categoryOrder []string
	questions     map[string]Question
	questionOrder []string
	results       []Result
	stats         map[string]map[string]CategoryUserStat
	statOrder     map[string][]string
	users         map[string]User
}

func NewInMemoryStore() Store {
	return &memoryStore{
		categories: map[string]Category{},
		questions:  map[string]Question{},
		stats:      map[string]map[string]CategoryUserStat{},
		statOrder:  map[string][]string{},
		users:      map[string]User{},
	}
}

func (m *memoryStore) GetCategory(_ context.Context, id string) (Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return Category{}, ErrCategoryNotFound
	}
	return c, nil
}

func (m *memoryStore) ListCategories(_ context.Context) ([]Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Category, 0, len(m.categoryOrder))
	for _, id := range m.categoryOrder {
		out = append(out, m.categories[id])
	}
	return out, nil
}

func (m *memoryStore) PutCategory(_ context.Context, c Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[c.ID]; !ok {
		m.categoryOrder = append(m.categoryOrder, c.ID)
	}
	m.categories[c.ID] = c
	return nil
}

func (m *memoryStore) DeleteCategory(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.categories[id]; !ok {
		return ErrCategoryNotFound
	}
	delete(m.categories, id)
	m.categoryOrder = removeString(m.categoryOrder, id)
	for qid, q := range m.questions {
		if q.CategoryID == id {
			delete(m.questions, qid)
			m.questionOrder = removeString(m.questionOrder, qid)
		}
	}
	delete(m.stats, id)
	delete(m.statOrder, id)
	return nil
}

func (m *memoryStore) CountQuestions(_ context.Context, categoryID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, q := range m.questions {
		if q.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) ListByCategory(_ context.Context, categoryID string) ([]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Question
	for _, id := range m.questionOrder {
		if q := m.questions[id]; q.CategoryID == categoryID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (m *memoryStore) Lookup(_ context.Context, categoryID string) (map[string]Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := map[string]Question{}
	for id, q := range m.questions {
		if q.CategoryID == categoryID {
			out[id] = q
		}
	}
	return out, nil
}

func (m *memoryStore) PutQuestions(_ context.Context, qs []Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, q := range qs {
		if _, ok := m.questions[q.ID]; !ok {
			m.questionOrder = append(m.questionOrder, q.ID)
		}
		m.questions[q.ID] = q
	}
	return nil
}

func (m *memoryStore) UpdateQuestion(_ context.Context, q Question) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[q.ID]; !ok {
		return ErrQuestionNotFound
	}
	m.questions[q.ID] = q
	return nil
}

func (m *memoryStore) DeleteQuestion(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(m.questions, id)
	m.questionOrder = removeString(m.questionOrder, id)
	return nil
}

func (m *memoryStore) AppendResult(_ context.Context, r Result) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.SubmittedAt.IsZero() {
		r.SubmittedAt = time.Now()
	}
	m.results = append(m.results, r)
	return r, nil
}

func (m *memoryStore) ListResults(_ context.Context, username, categoryID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Result
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		if username != "" && r.Username != username {
			continue
		}
		if categoryID != "" && r.CategoryID != categoryID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryStore) GetStat(_ context.Context, categoryID, username string) (CategoryUserStat, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stats[categoryID][username]
	return s, ok, nil
}

func (m *memoryStore) PutStat(_ context.Context, categoryID, username string, s CategoryUserStat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stats[categoryID] == nil {
		m.stats[categoryID] = map[string]CategoryUserStat{}
	}
	if _, ok := m.stats[categoryID][username]; !ok {
		m.statOrder[categoryID] = append(m.statOrder[categoryID], username)
	}
	m.stats[categoryID][username] = s
	return nil
}

func (m *memoryStore) ListStats(_ context.Context, categoryID string) ([]CategoryUserStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order := m.statOrder[categoryID]
	out := make([]CategoryUserStat, 0, len(order))
	for _, u := range order {
		out = append(out, m.stats[categoryID][u])
	}
	return out, nil
}

func (m *memoryStore) GetUser(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *memoryStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (m *memoryStore) CreateUser(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memoryStore) ListUsers(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memoryStore) UpdateUserRole(_ context.Context, id, role string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	u.Role = role
	m.users[id] = u
	return u, nil
}

func (m *memoryStore) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

func removeString(s []string, v string) []string {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	return s
}
