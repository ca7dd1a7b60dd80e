// Package testutil holds in-memory stand-ins for the Mongo repositories and
// the payment gateway.
package testutil

import (
	"context"
	"errors"
	"reflect"
	"sync"

	"worktrack/internal/model"
	"worktrack/internal/paymentclient"
	"worktrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrStore is what a failing fake returns.
var ErrStore = errors.New("store unavailable")

// Collection is a goroutine-safe slice of documents in insertion order.
type Collection struct {
	mu   sync.Mutex
	docs []model.Document
}

// Insert stores a copy of doc, assigning an _id when missing.
func (c *Collection) Insert(doc model.Document) primitive.ObjectID {
	c.mu.Lock()
	defer c.mu.Unlock()
	stored := doc.Clone()
	if stored == nil {
		stored = model.Document{}
	}
	oid, ok := stored.ID()
	if !ok {
		oid = primitive.NewObjectID()
		stored[model.FieldID] = oid
	}
	c.docs = append(c.docs, stored)
	return oid
}

// All returns copies of every document.
func (c *Collection) All() []model.Document {
	return c.Filter(func(model.Document) bool { return true })
}

// Filter returns copies of the documents matching fn.
func (c *Collection) Filter(fn func(model.Document) bool) []model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := []model.Document{}
	for _, d := range c.docs {
		if fn(d) {
			out = append(out, d.Clone())
		}
	}
	return out
}

// First returns a copy of the first match, or nil.
func (c *Collection) First(fn func(model.Document) bool) model.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if fn(d) {
			return d.Clone()
		}
	}
	return nil
}

// Update applies mutate to the first match. It reports whether a document
// matched and whether mutate changed it.
func (c *Collection) Update(match func(model.Document) bool, mutate func(model.Document) bool) (matched, modified bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range c.docs {
		if match(d) {
			return true, mutate(d)
		}
	}
	return false, false
}

// Len returns the number of stored documents.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

func fieldEquals(key string, value interface{}) func(model.Document) bool {
	return func(d model.Document) bool {
		v, ok := d[key]
		return ok && v == value
	}
}

func setFields(fields model.Document) func(model.Document) bool {
	return func(d model.Document) bool {
		changed := false
		for k, v := range fields {
			if cur, ok := d[k]; !ok || !reflect.DeepEqual(cur, v) {
				changed = true
			}
			d[k] = v
		}
		return changed
	}
}

func updateResult(matched, modified bool) *model.UpdateResult {
	res := &model.UpdateResult{Acknowledged: true}
	if matched {
		res.MatchedCount = 1
	}
	if modified {
		res.ModifiedCount = 1
	}
	return res
}

// UserStore is an in-memory repository.IUserRepository. Setting Err makes
// every call fail; FailUpdateByID fails only UpdateByID.
type UserStore struct {
	Collection
	Err            error
	FailUpdateByID error
}

var _ repository.IUserRepository = (*UserStore)(nil)

func (s *UserStore) FindAll(ctx context.Context) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.All(), nil
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.First(fieldEquals(model.FieldID, id)), nil
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.First(fieldEquals(model.FieldEmail, email)), nil
}

func (s *UserStore) FindByUID(ctx context.Context, uid string) (model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.First(fieldEquals(model.FieldUID, uid)), nil
}

func (s *UserStore) Create(ctx context.Context, user model.Document) (*model.InsertResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: s.Insert(user)}, nil
}

func (s *UserStore) UpdateByEmail(ctx context.Context, email string, fields model.Document) (*model.UpdateResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return updateResult(s.Update(fieldEquals(model.FieldEmail, email), setFields(fields))), nil
}

func (s *UserStore) UpdateByID(ctx context.Context, id primitive.ObjectID, fields model.Document) (*model.UpdateResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.FailUpdateByID != nil {
		return nil, s.FailUpdateByID
	}
	return updateResult(s.Update(fieldEquals(model.FieldID, id), setFields(fields))), nil
}

func (s *UserStore) ToggleVerified(ctx context.Context, id primitive.ObjectID) (model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	matched, _ := s.Update(fieldEquals(model.FieldID, id), func(d model.Document) bool {
		d[model.FieldIsVerified] = !d.Bool(model.FieldIsVerified)
		return true
	})
	if !matched {
		return nil, nil
	}
	return s.First(fieldEquals(model.FieldID, id)), nil
}

// PaymentStore is an in-memory repository.IPaymentRepository.
type PaymentStore struct {
	Collection
	Err       error
	LookupErr error
}

var _ repository.IPaymentRepository = (*PaymentStore)(nil)

func (s *PaymentStore) FindByEmail(ctx context.Context, email string) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Filter(fieldEquals(model.FieldEmail, email)), nil
}

func (s *PaymentStore) FindByEmployeeMonth(ctx context.Context, employeeID, month string) (model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.LookupErr != nil {
		return nil, s.LookupErr
	}
	return s.First(func(d model.Document) bool {
		return d.String(model.FieldEmployeeID) == employeeID && d.String(model.FieldMonth) == month
	}), nil
}

func (s *PaymentStore) Create(ctx context.Context, payment model.Document) (*model.InsertResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: s.Insert(payment)}, nil
}

// WorkStore is an in-memory repository.IWorkRecordRepository.
type WorkStore struct {
	Collection
	Err error
}

var _ repository.IWorkRecordRepository = (*WorkStore)(nil)

func (s *WorkStore) FindAll(ctx context.Context) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.All(), nil
}

func (s *WorkStore) FindByEmail(ctx context.Context, email string) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Filter(fieldEquals(model.FieldEmail, email)), nil
}

func (s *WorkStore) Create(ctx context.Context, record model.Document) (*model.InsertResult, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return &model.InsertResult{Acknowledged: true, InsertedID: s.Insert(record)}, nil
}

// MessageStore is an in-memory repository.IMessageRepository.
type MessageStore struct {
	Collection
	Err error
}

var _ repository.IMessageRepository = (*MessageStore)(nil)

func (s *MessageStore) FindAll(ctx context.Context) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.All(), nil
}

// Gateway is a recording paymentclient.Gateway.
type Gateway struct {
	mu     sync.Mutex
	Err    error
	Secret string
	Calls  []GatewayCall
}

// GatewayCall is one CreateIntent invocation.
type GatewayCall struct {
	Amount   int64
	Currency string
}

var _ paymentclient.Gateway = (*Gateway)(nil)

func (g *Gateway) CreateIntent(ctx context.Context, amount int64, currency string) (*paymentclient.Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, GatewayCall{Amount: amount, Currency: currency})
	if g.Err != nil {
		return nil, g.Err
	}
	secret := g.Secret
	if secret == "" {
		secret = "pi_test_secret"
	}
	return &paymentclient.Intent{ID: "pi_test", ClientSecret: secret}, nil
}

// CallCount returns how many intents were requested.
func (g *Gateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}

// LastCall returns the most recent invocation.
func (g *Gateway) LastCall() GatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Calls) == 0 {
		return GatewayCall{}
	}
	return g.Calls[len(g.Calls)-1]
}
