package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// NewCircuitBreaker opens after three consecutive store failures and probes again
// after ten seconds.
func NewCircuitBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Error("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
}

// BreakerStore fails fast with a StoreError while the database keeps failing.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerStore(next Store, cb *gobreaker.CircuitBreaker) *BreakerStore {
	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) AppendEmployee(ctx context.Context, e *Employee) (int64, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.AppendEmployee(ctx, e)
	})
	if err != nil {
		return 0, b.wrap("BreakerStore.AppendEmployee", err)
	}

	return out.(int64), nil
}

func (b *BreakerStore) AppendStudent(ctx context.Context, s *Student) (int64, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.AppendStudent(ctx, s)
	})
	if err != nil {
		return 0, b.wrap("BreakerStore.AppendStudent", err)
	}

	return out.(int64), nil
}

func (b *BreakerStore) ListDistinctSubmitters(ctx context.Context) ([]Submitter, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.ListDistinctSubmitters(ctx)
	})
	if err != nil {
		return nil, b.wrap("BreakerStore.ListDistinctSubmitters", err)
	}

	return out.([]Submitter), nil
}

type phoneRecords struct {
	employees []Employee
	students  []Student
}

func (b *BreakerStore) FindByPhone(ctx context.Context, phone string) ([]Employee, []Student, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		employees, students, err := b.next.FindByPhone(ctx, phone)
		return phoneRecords{employees: employees, students: students}, err
	})
	if err != nil {
		return nil, nil, b.wrap("BreakerStore.FindByPhone", err)
	}

	recs := out.(phoneRecords)

	return recs.employees, recs.students, nil
}

// wrap passes StoreErrors from the wrapped store through and converts breaker
// rejections into StoreErrors.
func (b *BreakerStore) wrap(op string, err error) error {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return err
	}

	return &StoreError{Op: op, Err: err}
}
