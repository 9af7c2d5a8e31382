package sale

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-pos/internal/model"
)

// memStore is an in-memory Store with real transaction semantics:
// writes are staged per transaction and applied on commit, and the
// (session, seat) uniqueness constraint is enforced at insert time.
// Transactions are serialized by a mutex, which models the database
// arbitrating between racing operators.
type memStore struct {
	mu        sync.Mutex
	sessions  map[uint64]model.Session
	customers map[string]model.Customer // phone -> customer
	tickets   map[[2]uint64]model.Ticket
	payments  map[uint64]model.Payment // ticket id -> payment
	nextID    uint64

	failPaymentFor uint64 // seat id whose payment insert fails
	lieOnSeatSold  bool   // simulate a stale sold-status read
}

func newMemStore() *memStore {
	return &memStore{
		sessions:  make(map[uint64]model.Session),
		customers: make(map[string]model.Customer),
		tickets:   make(map[[2]uint64]model.Ticket),
		payments:  make(map[uint64]model.Payment),
	}
}

type memTx struct {
	s *memStore

	newCustomers map[string]model.Customer
	renames      map[uint64]string
	newTickets   []model.Ticket
	newPayments  []model.Payment
}

func (s *memStore) InTx(_ context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memTx{
		s:            s,
		newCustomers: make(map[string]model.Customer),
		renames:      make(map[uint64]string),
	}
	if err := fn(tx); err != nil {
		return err // staged writes are discarded
	}
	for phone, c := range tx.newCustomers {
		s.customers[phone] = c
	}
	for id, name := range tx.renames {
		for phone, c := range s.customers {
			if c.ID == id {
				c.FullName = name
				s.customers[phone] = c
			}
		}
	}
	for _, t := range tx.newTickets {
		s.tickets[[2]uint64{t.SessionID, t.SeatID}] = t
	}
	for _, p := range tx.newPayments {
		s.payments[p.TicketID] = p
	}
	return nil
}

func (tx *memTx) SessionByID(_ context.Context, id uint64) (*model.Session, error) {
	sess, ok := tx.s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (tx *memTx) CustomerByPhone(_ context.Context, phone string) (*model.Customer, error) {
	if c, ok := tx.newCustomers[phone]; ok {
		return &c, nil
	}
	if c, ok := tx.s.customers[phone]; ok {
		return &c, nil
	}
	return nil, ErrCustomerNotFound
}

func (tx *memTx) CreateCustomer(_ context.Context, c *model.Customer) error {
	tx.s.nextID++
	c.ID = tx.s.nextID
	tx.newCustomers[c.Phone] = *c
	return nil
}

func (tx *memTx) RenameCustomer(_ context.Context, id uint64, fullName string) error {
	tx.renames[id] = fullName
	return nil
}

func (tx *memTx) SeatSold(_ context.Context, sessionID, seatID uint64) (bool, error) {
	if tx.s.lieOnSeatSold {
		return false, nil
	}
	if _, ok := tx.s.tickets[[2]uint64{sessionID, seatID}]; ok {
		return true, nil
	}
	for _, t := range tx.newTickets {
		if t.SessionID == sessionID && t.SeatID == seatID {
			return true, nil
		}
	}
	return false, nil
}

func (tx *memTx) CreateTicket(_ context.Context, t *model.Ticket) error {
	if _, ok := tx.s.tickets[[2]uint64{t.SessionID, t.SeatID}]; ok {
		return ErrTicketExists
	}
	for _, staged := range tx.newTickets {
		if staged.SessionID == t.SessionID && staged.SeatID == t.SeatID {
			return ErrTicketExists
		}
	}
	tx.s.nextID++
	t.ID = tx.s.nextID
	tx.newTickets = append(tx.newTickets, *t)
	return nil
}

func (tx *memTx) CreatePayment(_ context.Context, p *model.Payment) error {
	for _, t := range tx.newTickets {
		if t.ID == p.TicketID && tx.s.failPaymentFor != 0 && t.SeatID == tx.s.failPaymentFor {
			return errors.New("payment gateway write failed")
		}
	}
	tx.s.nextID++
	p.ID = tx.s.nextID
	tx.newPayments = append(tx.newPayments, *p)
	return nil
}

func sellReq(seats ...uint64) Request {
	return Request{
		SessionID:     1,
		SeatIDs:       seats,
		CustomerName:  "Anna Smirnova",
		CustomerPhone: "79001234567",
		EmployeeID:    3,
		PaymentMethod: "CARD",
	}
}

func storeWithSession() *memStore {
	s := newMemStore()
	s.sessions[1] = model.Session{ID: 1, MovieID: 1, HallID: 1, StartTime: time.Now().UTC(), BasePriceCents: 50000}
	return s
}

func TestSellCreatesTicketsAndPayments(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	res, err := c.Sell(context.Background(), sellReq(10, 11))
	require.NoError(t, err)

	assert.Equal(t, 2, res.SoldCount)
	assert.Len(t, res.TicketIDs, 2)
	assert.Empty(t, res.SkippedSeatIDs)

	ticket := store.tickets[[2]uint64{1, 10}]
	assert.Equal(t, model.TicketSold, ticket.Status)
	assert.Equal(t, uint32(50000), ticket.PriceCents)
	assert.Equal(t, uint64(3), ticket.EmployeeID)

	pay, ok := store.payments[ticket.ID]
	require.True(t, ok, "every sold ticket has its payment")
	assert.Equal(t, ticket.PriceCents, pay.AmountCents)
	assert.Equal(t, "CARD", pay.Method)

	cust, ok := store.customers["79001234567"]
	require.True(t, ok)
	assert.Equal(t, cust.ID, ticket.CustomerID)
}

func TestSellSkipsAlreadySoldSeat(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	_, err := c.Sell(context.Background(), sellReq(10))
	require.NoError(t, err)

	res, err := c.Sell(context.Background(), sellReq(10, 11))
	require.NoError(t, err)

	assert.Equal(t, 1, res.SoldCount)
	assert.Equal(t, []uint64{10}, res.SkippedSeatIDs)
	assert.Len(t, store.tickets, 2)
}

func TestSellSkipsSeatOnInsertRace(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	_, err := c.Sell(context.Background(), sellReq(10))
	require.NoError(t, err)

	// the sold re-check reads stale state; only the insert catches it
	store.lieOnSeatSold = true
	res, err := c.Sell(context.Background(), sellReq(10))
	require.NoError(t, err)

	assert.Equal(t, 0, res.SoldCount)
	assert.Equal(t, []uint64{10}, res.SkippedSeatIDs)
	assert.Len(t, store.tickets, 1, "never two sold tickets for one seat")
}

func TestSellConcurrentRaceSellsSeatOnce(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	const callers = 8
	results := make([]*Result, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := c.Sell(context.Background(), sellReq(42))
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	total := 0
	for _, res := range results {
		total += res.SoldCount
	}
	assert.Equal(t, 1, total, "combined sold count across racers is exactly 1")
	assert.Len(t, store.tickets, 1)
}

func TestSellRollsBackWhollyOnPaymentFailure(t *testing.T) {
	store := storeWithSession()
	store.failPaymentFor = 11
	c := NewCoordinator(store)

	_, err := c.Sell(context.Background(), sellReq(10, 11, 12))
	require.Error(t, err)

	assert.Empty(t, store.tickets, "no partial tickets survive the rollback")
	assert.Empty(t, store.payments)
}

func TestSellUpsertsCustomerByPhone(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	_, err := c.Sell(context.Background(), sellReq(10))
	require.NoError(t, err)
	first := store.customers["79001234567"]

	req := sellReq(11)
	req.CustomerName = "Anna Petrova"
	_, err = c.Sell(context.Background(), req)
	require.NoError(t, err)

	second := store.customers["79001234567"]
	assert.Equal(t, first.ID, second.ID, "same phone resolves to the same customer")
	assert.Equal(t, "Anna Petrova", second.FullName, "last writer wins on the name")

	// a case-only difference is not a rename
	req = sellReq(12)
	req.CustomerName = strings.ToUpper("Anna Petrova")
	_, err = c.Sell(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", store.customers["79001234567"].FullName)
}

func TestSellValidation(t *testing.T) {
	c := NewCoordinator(storeWithSession())

	cases := []struct {
		name string
		mut  func(*Request)
	}{
		{"missing session", func(r *Request) { r.SessionID = 0 }},
		{"no seats", func(r *Request) { r.SeatIDs = nil }},
		{"only zero seat ids", func(r *Request) { r.SeatIDs = []uint64{0, 0} }},
		{"empty name", func(r *Request) { r.CustomerName = "   " }},
		{"non-digit phone", func(r *Request) { r.CustomerPhone = "8-900-123" }},
		{"missing employee", func(r *Request) { r.EmployeeID = 0 }},
		{"missing method", func(r *Request) { r.PaymentMethod = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := sellReq(10)
			tc.mut(&req)
			_, err := c.Sell(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSellUnknownSessionAborts(t *testing.T) {
	store := newMemStore() // no sessions at all
	c := NewCoordinator(store)

	_, err := c.Sell(context.Background(), sellReq(10))
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, store.customers, "customer upsert rolled back too")
}

func TestSellDeduplicatesSeatIDs(t *testing.T) {
	store := storeWithSession()
	c := NewCoordinator(store)

	res, err := c.Sell(context.Background(), sellReq(10, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, res.SoldCount)
	assert.Len(t, store.tickets, 1)
}
