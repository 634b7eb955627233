package repository

import (
	"context"

	"github.com/sandiprv9898/salon-flow-pos/internal/model"
)

// ── Customers ─────────────────────────────────────────────────────────────────

type CustomerRepository interface {
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id string) (*model.Customer, error)
}

type customerRepo struct{ t *table[model.Customer] }

func NewCustomerRepository(seed []model.Customer) CustomerRepository {
	return &customerRepo{t: newTable("customer", func(c model.Customer) string { return c.ID }, seed)}
}

func (r *customerRepo) List(_ context.Context) ([]model.Customer, error) { return r.t.list(), nil }

func (r *customerRepo) FindByID(_ context.Context, id string) (*model.Customer, error) {
	c, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ── Employees ─────────────────────────────────────────────────────────────────

type EmployeeRepository interface {
	List(ctx context.Context) ([]model.Employee, error)
	FindByID(ctx context.Context, id string) (*model.Employee, error)
	Update(ctx context.Context, id string, fn func(*model.Employee) error) (*model.Employee, error)
}

type employeeRepo struct{ t *table[model.Employee] }

func NewEmployeeRepository(seed []model.Employee) EmployeeRepository {
	return &employeeRepo{t: newTable("employee", func(e model.Employee) string { return e.ID }, seed)}
}

func (r *employeeRepo) List(_ context.Context) ([]model.Employee, error) { return r.t.list(), nil }

func (r *employeeRepo) FindByID(_ context.Context, id string) (*model.Employee, error) {
	e, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepo) Update(_ context.Context, id string, fn func(*model.Employee) error) (*model.Employee, error) {
	e, err := r.t.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ── Appointments ──────────────────────────────────────────────────────────────

type AppointmentRepository interface {
	List(ctx context.Context) ([]model.Appointment, error)
	FindByID(ctx context.Context, id string) (*model.Appointment, error)
	Update(ctx context.Context, id string, fn func(*model.Appointment) error) (*model.Appointment, error)
	Create(ctx context.Context, a model.Appointment) error
}

type appointmentRepo struct{ t *table[model.Appointment] }

func NewAppointmentRepository(seed []model.Appointment) AppointmentRepository {
	return &appointmentRepo{t: newTable("appointment", func(a model.Appointment) string { return a.ID }, seed)}
}

func (r *appointmentRepo) List(_ context.Context) ([]model.Appointment, error) { return r.t.list(), nil }

func (r *appointmentRepo) FindByID(_ context.Context, id string) (*model.Appointment, error) {
	a, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) Update(_ context.Context, id string, fn func(*model.Appointment) error) (*model.Appointment, error) {
	a, err := r.t.mutate(id, fn)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepo) Create(_ context.Context, a model.Appointment) error { return r.t.insert(a) }

// ── Waitlist ──────────────────────────────────────────────────────────────────

type WaitlistRepository interface {
	List(ctx context.Context) ([]model.WaitlistEntry, error)
	FindByID(ctx context.Context, id string) (*model.WaitlistEntry, error)
	Create(ctx context.Context, e model.WaitlistEntry) error
	// Take removes the entry and returns it, so only one caller can claim it.
	Take(ctx context.Context, id string) (*model.WaitlistEntry, error)
}

type waitlistRepo struct{ t *table[model.WaitlistEntry] }

func NewWaitlistRepository(seed []model.WaitlistEntry) WaitlistRepository {
	return &waitlistRepo{t: newTable("waitlist entry", func(e model.WaitlistEntry) string { return e.ID }, seed)}
}

func (r *waitlistRepo) List(_ context.Context) ([]model.WaitlistEntry, error) { return r.t.list(), nil }

func (r *waitlistRepo) FindByID(_ context.Context, id string) (*model.WaitlistEntry, error) {
	e, err := r.t.get(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *waitlistRepo) Create(_ context.Context, e model.WaitlistEntry) error { return r.t.insert(e) }

func (r *waitlistRepo) Take(_ context.Context, id string) (*model.WaitlistEntry, error) {
	e, err := r.t.remove(id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
