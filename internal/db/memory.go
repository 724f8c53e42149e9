package db

import (
	"context"
	"sync"
	"time"
)

// Store is the full record store surface implemented by RecordRepository,
// MemoryStore and BreakerStore.
type Store interface {
	AppendEmployee(ctx context.Context, e *Employee) (int64, error)
	AppendStudent(ctx context.Context, s *Student) (int64, error)
	ListDistinctSubmitters(ctx context.Context) ([]Submitter, error)
	FindByPhone(ctx context.Context, phone string) ([]Employee, []Student, error)
}

var (
	_ Store = (*RecordRepository)(nil)
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BreakerStore)(nil)
)

// MemoryStore keeps records in process memory, for local runs without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	employees []Employee
	students  []Student
	bySubID   map[string]int64
	// phones in order of first submission
	phones []string
	names  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bySubID: make(map[string]int64),
		names:   make(map[string]string),
	}
}

func (m *MemoryStore) AppendEmployee(ctx context.Context, e *Employee) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.bySubID[e.SubmissionID]; ok {
		return id, nil
	}

	rec := *e
	rec.ID = m.assign(rec.SubmissionID, rec.SubmitterPhone, rec.FullName)
	rec.CreatedAt = time.Now()
	m.employees = append(m.employees, rec)

	return rec.ID, nil
}

func (m *MemoryStore) AppendStudent(ctx context.Context, s *Student) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.bySubID[s.SubmissionID]; ok {
		return id, nil
	}

	rec := *s
	rec.ID = m.assign(rec.SubmissionID, rec.SubmitterPhone, rec.FullName)
	rec.CreatedAt = time.Now()
	m.students = append(m.students, rec)

	return rec.ID, nil
}

func (m *MemoryStore) assign(submissionID, phone, name string) int64 {
	m.nextID++
	m.bySubID[submissionID] = m.nextID

	if _, seen := m.names[phone]; !seen {
		m.phones = append(m.phones, phone)
		m.names[phone] = name
	}

	return m.nextID
}

func (m *MemoryStore) ListDistinctSubmitters(ctx context.Context) ([]Submitter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	submitters := make([]Submitter, 0, len(m.phones))
	for _, phone := range m.phones {
		submitters = append(submitters, Submitter{Phone: phone, DisplayName: m.names[phone]})
	}

	return submitters, nil
}

func (m *MemoryStore) FindByPhone(ctx context.Context, phone string) ([]Employee, []Student, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var employees []Employee
	for _, e := range m.employees {
		if e.SubmitterPhone == phone {
			employees = append(employees, e)
		}
	}

	var students []Student
	for _, s := range m.students {
		if s.SubmitterPhone == phone {
			students = append(students, s)
		}
	}

	return employees, students, nil
}
