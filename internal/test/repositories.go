package test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/freightdesk/internal/domain/errors"
	"github.com/polkiloo/freightdesk/internal/domain/model"
	"github.com/polkiloo/freightdesk/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// LoadRepositoryStub keeps loads in memory with the same compare-and-set
// semantics as the real storage. Fn overrides take precedence.
type LoadRepositoryStub struct {
	mu    sync.Mutex
	loads map[int64]*model.Load
	next  int64

	Err                 error
	SelectUnquotedFn    func(context.Context, int) ([]model.Load, error)
	SetSuggestedPriceFn func(context.Context, int64, decimal.Decimal) error
}

func NewLoadRepositoryStub() *LoadRepositoryStub {
	return &LoadRepositoryStub{loads: make(map[int64]*model.Load), next: 1}
}

// Put seeds a load. A zero id gets the next free one.
func (s *LoadRepositoryStub) Put(l model.Load) model.Load {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.next
	}
	if l.ID >= s.next {
		s.next = l.ID + 1
	}
	s.loads[l.ID] = &l
	return l
}

// Snapshot returns the stored load or a zero value.
func (s *LoadRepositoryStub) Snapshot(id int64) model.Load {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.loads[id]; ok {
		return *l
	}
	return model.Load{}
}

func (s *LoadRepositoryStub) Create(ctx context.Context, l model.Load) (*model.Load, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	stored := s.Put(model.Load{
		ShipperID:    l.ShipperID,
		Pickup:       l.Pickup,
		Dropoff:      l.Dropoff,
		WeightTons:   l.WeightTons,
		TruckType:    l.TruckType,
		RateType:     l.RateType,
		ShipperPrice: l.ShipperPrice,
		Status:       l.Status,
	})
	return &stored, nil
}

func (s *LoadRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Load, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loads[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *LoadRepositoryStub) ListByShipper(ctx context.Context, shipperID int64) ([]model.Load, error) {
	return s.filter(func(l *model.Load) bool { return l.ShipperID == shipperID })
}

func (s *LoadRepositoryStub) ListByStatus(ctx context.Context, statuses ...model.LoadStatus) ([]model.Load, error) {
	return s.filter(func(l *model.Load) bool {
		if len(statuses) == 0 {
			return true
		}
		for _, st := range statuses {
			if l.Status == st {
				return true
			}
		}
		return false
	})
}

func (s *LoadRepositoryStub) filter(keep func(*model.Load) bool) ([]model.Load, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Load
	for id := int64(1); id < s.next; id++ {
		if l, ok := s.loads[id]; ok && keep(l) {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *LoadRepositoryStub) UpdateStatus(ctx context.Context, id int64, from, to model.LoadStatus) error {
	if s.Err != nil {
		return s.Err
	}
	return s.CompareAndSet(id, from, func(l *model.Load) { l.Status = to })
}

func (s *LoadRepositoryStub) SetAdminPrice(ctx context.Context, id int64, price decimal.Decimal, from, to model.LoadStatus) error {
	if s.Err != nil {
		return s.Err
	}
	return s.CompareAndSet(id, from, func(l *model.Load) {
		l.AdminPrice = decimal.NewNullDecimal(price)
		l.Status = to
	})
}

func (s *LoadRepositoryStub) SetSuggestedPrice(ctx context.Context, id int64, price decimal.Decimal) error {
	if s.SetSuggestedPriceFn != nil {
		return s.SetSuggestedPriceFn(ctx, id, price)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loads[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	l.SuggestedPrice = decimal.NewNullDecimal(price)
	return nil
}

func (s *LoadRepositoryStub) SelectUnquoted(ctx context.Context, limit int) ([]model.Load, error) {
	if s.SelectUnquotedFn != nil {
		return s.SelectUnquotedFn(ctx, limit)
	}
	loads, err := s.filter(func(l *model.Load) bool {
		return l.Status == model.LoadStatusPending && !l.SuggestedPrice.Valid
	})
	if len(loads) > limit {
		loads = loads[:limit]
	}
	return loads, err
}

// CompareAndSet applies mutate when the load is still in status from.
func (s *LoadRepositoryStub) CompareAndSet(id int64, from model.LoadStatus, mutate func(*model.Load)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loads[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if l.Status != from {
		return domainErrors.ErrConflict
	}
	mutate(l)
	return nil
}

// BidRepositoryStub keeps bids in memory and moves loads of the attached
// LoadRepositoryStub the way the real storage does.
type BidRepositoryStub struct {
	mu    sync.Mutex
	bids  map[int64]*model.Bid
	next  int64
	Loads *LoadRepositoryStub

	Err      error
	AcceptFn func(context.Context, int64, decimal.Decimal, model.LoadStatus) error
}

func NewBidRepositoryStub(loads *LoadRepositoryStub) *BidRepositoryStub {
	return &BidRepositoryStub{bids: make(map[int64]*model.Bid), next: 1, Loads: loads}
}

func (s *BidRepositoryStub) Create(ctx context.Context, b model.Bid) (*model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Loads != nil {
		if _, err := s.Loads.GetByID(ctx, b.LoadID); err != nil {
			return nil, err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.next
	s.next++
	if b.Status == "" {
		b.Status = model.BidStatusActive
	}
	s.bids[b.ID] = &b
	cp := b
	return &cp, nil
}

func (s *BidRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *BidRepositoryStub) ListByLoad(ctx context.Context, loadID int64) ([]model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Bid
	for id := int64(1); id < s.next; id++ {
		if b, ok := s.bids[id]; ok && b.LoadID == loadID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *BidRepositoryStub) SetCounter(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[bidID]
	if !ok || b.Status != model.BidStatusActive {
		return domainErrors.ErrConflict
	}
	if err := s.moveLoad(b.LoadID, loadFrom, model.LoadStatusCounterReceived, nil); err != nil {
		return err
	}
	b.CounterAmount = decimal.NewNullDecimal(amount)
	return nil
}

func (s *BidRepositoryStub) Reject(ctx context.Context, bidID int64) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[bidID]
	if !ok || b.Status != model.BidStatusActive {
		return domainErrors.ErrConflict
	}
	b.Status = model.BidStatusRejected
	return nil
}

func (s *BidRepositoryStub) Accept(ctx context.Context, bidID int64, amount decimal.Decimal, loadFrom model.LoadStatus) error {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, bidID, amount, loadFrom)
	}
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bids[bidID]
	if !ok || b.Status != model.BidStatusActive {
		return domainErrors.ErrConflict
	}
	for _, other := range s.bids {
		if other.LoadID == b.LoadID && other.Status == model.BidStatusAccepted {
			return domainErrors.ErrConflict
		}
	}
	err := s.moveLoad(b.LoadID, loadFrom, model.LoadStatusAwarded, func(l *model.Load) {
		l.AcceptedBidAmount = decimal.NewNullDecimal(amount)
	})
	if err != nil {
		return err
	}
	for _, other := range s.bids {
		if other.LoadID == b.LoadID && other.ID != b.ID && other.Status == model.BidStatusActive {
			other.Status = model.BidStatusRejected
		}
	}
	b.Status = model.BidStatusAccepted
	return nil
}

func (s *BidRepositoryStub) CreateAccepted(ctx context.Context, b model.Bid, loadFrom model.LoadStatus) (*model.Bid, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.bids {
		if other.LoadID == b.LoadID && other.Status == model.BidStatusAccepted {
			return nil, domainErrors.ErrConflict
		}
	}
	err := s.moveLoad(b.LoadID, loadFrom, model.LoadStatusAwarded, func(l *model.Load) {
		l.AcceptedBidAmount = decimal.NewNullDecimal(b.Amount)
	})
	if err != nil {
		return nil, err
	}
	for _, other := range s.bids {
		if other.LoadID == b.LoadID && other.Status == model.BidStatusActive {
			other.Status = model.BidStatusRejected
		}
	}
	b.ID = s.next
	s.next++
	b.Status = model.BidStatusAccepted
	s.bids[b.ID] = &b
	cp := b
	return &cp, nil
}

func (s *BidRepositoryStub) moveLoad(id int64, from, to model.LoadStatus, extra func(*model.Load)) error {
	if s.Loads == nil {
		return nil
	}
	return s.Loads.CompareAndSet(id, from, func(l *model.Load) {
		l.Status = to
		if extra != nil {
			extra(l)
		}
	})
}

// InvoiceRepositoryStub keeps one invoice per load and honours idempotency keys.
type InvoiceRepositoryStub struct {
	mu     sync.Mutex
	byLoad map[int64]*model.Invoice
	keys   map[string]int64
	next   int64
	Loads  *LoadRepositoryStub

	SaveErr   error
	SendErr   error
	SendCalls int
}

func NewInvoiceRepositoryStub(loads *LoadRepositoryStub) *InvoiceRepositoryStub {
	return &InvoiceRepositoryStub{
		byLoad: make(map[int64]*model.Invoice),
		keys:   make(map[string]int64),
		next:   1,
		Loads:  loads,
	}
}

func (s *InvoiceRepositoryStub) Save(ctx context.Context, inv model.Invoice) (*model.Invoice, error) {
	if s.SaveErr != nil {
		return nil, s.SaveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prior, ok := s.byLoad[inv.LoadID]; ok && prior.Status != model.InvoiceStatusDraft {
		return nil, domainErrors.ErrConflict
	}
	inv.Status = model.InvoiceStatusDraft
	return s.store(inv), nil
}

func (s *InvoiceRepositoryStub) GetByLoad(ctx context.Context, loadID int64) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byLoad[loadID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (s *InvoiceRepositoryStub) Send(ctx context.Context, inv model.Invoice, key string) (*model.Invoice, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SendCalls++
	if s.SendErr != nil {
		return nil, false, s.SendErr
	}
	if loadID, ok := s.keys[key]; ok && key != "" {
		if loadID != inv.LoadID {
			return nil, false, domainErrors.ErrConflict
		}
		cp := *s.byLoad[loadID]
		return &cp, true, nil
	}
	if s.Loads != nil {
		err := s.Loads.CompareAndSet(inv.LoadID, model.LoadStatusAwarded, func(l *model.Load) {
			l.Status = model.LoadStatusInvoiceSent
		})
		if err != nil {
			return nil, false, err
		}
	}
	inv.Status = model.InvoiceStatusSent
	inv.IdempotencyKey = key
	stored := s.store(inv)
	if key != "" {
		s.keys[key] = inv.LoadID
	}
	return stored, false, nil
}

func (s *InvoiceRepositoryStub) Approve(ctx context.Context, loadID int64) (*model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.byLoad[loadID]
	if !ok || inv.Status != model.InvoiceStatusSent {
		return nil, domainErrors.ErrConflict
	}
	if s.Loads != nil {
		err := s.Loads.CompareAndSet(loadID, model.LoadStatusInvoiceSent, func(l *model.Load) {
			l.Status = model.LoadStatusInvoiceApproved
		})
		if err != nil {
			return nil, err
		}
	}
	inv.Status = model.InvoiceStatusApproved
	cp := *inv
	return &cp, nil
}

func (s *InvoiceRepositoryStub) store(inv model.Invoice) *model.Invoice {
	if prior, ok := s.byLoad[inv.LoadID]; ok {
		inv.ID = prior.ID
	} else {
		inv.ID = s.next
		s.next++
	}
	s.byLoad[inv.LoadID] = &inv
	cp := inv
	return &cp
}

// DistanceCacheStub keys entries by "origin_destination".
type DistanceCacheStub struct {
	mu      sync.Mutex
	Entries map[string]int
	GetErr  error
	PutErr  error
}

func NewDistanceCacheStub() *DistanceCacheStub {
	return &DistanceCacheStub{Entries: make(map[string]int)}
}

func (s *DistanceCacheStub) Get(ctx context.Context, origin, destination string) (int, bool, error) {
	if s.GetErr != nil {
		return 0, false, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	km, ok := s.Entries[origin+"_"+destination]
	return km, ok, nil
}

func (s *DistanceCacheStub) Put(ctx context.Context, origin, destination string, km int) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Entries[origin+"_"+destination] = km
	return nil
}

var (
	_ repository.UserRepository    = (*UserRepositoryStub)(nil)
	_ repository.LoadRepository    = (*LoadRepositoryStub)(nil)
	_ repository.BidRepository     = (*BidRepositoryStub)(nil)
	_ repository.InvoiceRepository = (*InvoiceRepositoryStub)(nil)
	_ repository.DistanceCache     = (*DistanceCacheStub)(nil)
)
