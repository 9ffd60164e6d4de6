package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
	"github.com/japb1998/wacrm/internal/database"
	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/model"
	"github.com/japb1998/wacrm/pkg/sms"
)

const owner = "owner@example.com"

var errStore = errors.New("store unavailable")

type templateStore struct {
	items map[string]*model.TemplateItem
	err   error
}

func newTemplateStore(items ...*model.TemplateItem) *templateStore {
	s := &templateStore{items: map[string]*model.TemplateItem{}}
	for _, i := range items {
		s.items[i.Id] = i
	}
	return s
}

func (s *templateStore) Create(ctx context.Context, t *model.TemplateItem) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.items[t.Id]; ok {
		return database.ErrItemExists
	}
	s.items[t.Id] = t
	return nil
}

func (s *templateStore) SetVariableMapping(ctx context.Context, creator, id string, m mapping.Mapping) (*model.TemplateItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.items[id]
	if !ok || t.CreatedBy != creator {
		return nil, database.ErrItemNotFound
	}
	cp := *t
	cp.VariableMapping = m
	s.items[id] = &cp
	return &cp, nil
}

func (s *templateStore) GetByKey(ctx context.Context, creator, id string) (*model.TemplateItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	t, ok := s.items[id]
	if !ok || t.CreatedBy != creator {
		return nil, nil
	}
	return t, nil
}

func (s *templateStore) GetByCreator(ctx context.Context, creator string, p *database.PaginationOps) ([]*model.TemplateItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*model.TemplateItem, 0)
	for _, t := range s.items {
		if t.CreatedBy == creator {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	if p.Skip >= len(out) {
		return []*model.TemplateItem{}, nil
	}
	end := p.Skip + p.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[p.Skip:end], nil
}

func (s *templateStore) Delete(ctx context.Context, creator, id string) error {
	delete(s.items, id)
	return s.err
}

func (s *templateStore) GetTotalCount(ctx context.Context, creator string) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var n int64
	for _, t := range s.items {
		if t.CreatedBy == creator {
			n++
		}
	}
	return n, nil
}

type contactStore struct {
	mu      sync.Mutex
	items   map[string]model.ContactItem
	keys    []string
	err     error
	created int
}

func newContactStore(items ...model.ContactItem) *contactStore {
	s := &contactStore{items: map[string]model.ContactItem{}}
	for _, i := range items {
		s.items[i.Id] = i
	}
	return s
}

func (s *contactStore) CreateContact(ctx context.Context, c model.ContactItem) (model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return model.ContactItem{}, s.err
	}
	s.items[c.Id] = c
	s.created++
	return c, nil
}

func (s *contactStore) GetContactById(ctx context.Context, creator, id string) (*model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.items[id]
	if !ok || c.CreatedBy != creator {
		return nil, nil
	}
	return &c, nil
}

func (s *contactStore) GetContactByPhone(ctx context.Context, creator, phone string) (*model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.items {
		if c.CreatedBy == creator && c.PhoneNumber == phone {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (s *contactStore) GetContacts(ctx context.Context, creator string, p *database.PaginationOps) ([]model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]model.ContactItem, 0)
	for _, c := range s.items {
		if c.CreatedBy == creator {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PhoneNumber < out[j].PhoneNumber })
	return out, nil
}

func (s *contactStore) ContactCount(ctx context.Context, creator string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(s.items)), nil
}

func (s *contactStore) CustomFieldKeys(ctx context.Context, creator string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.keys, nil
}

func (s *contactStore) UpdateContact(ctx context.Context, creator, id string, patch database.PatchContactItem) (*model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return nil, database.ErrItemNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Tags != nil {
		c.Tags = patch.Tags
	}
	if patch.CustomData != nil {
		c.CustomData = patch.CustomData
	}
	s.items[id] = c
	return &c, nil
}

func (s *contactStore) RecordInbound(ctx context.Context, creator, id, messageId string, at time.Time) (*model.ContactItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.items[id]
	if !ok {
		return nil, database.ErrItemNotFound
	}
	if c.LastMessageId == messageId {
		return &c, database.ErrAlreadyRecorded
	}
	c.UnreadCount++
	c.LastMessageAt = &at
	c.LastMessageId = messageId
	s.items[id] = c
	return &c, nil
}

func (s *contactStore) DeleteContact(ctx context.Context, creator, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type fakeSender struct {
	sent []*sms.Msg
	err  error
}

func (f *fakeSender) SendMessage(msg *sms.Msg) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type connectionStore struct {
	mu      sync.Mutex
	conns   []model.Connection
	deleted []string
}

func (s *connectionStore) GetConnectionIds(ctx context.Context, email string) ([]model.Connection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Connection, 0)
	for _, c := range s.conns {
		if c.Email == email {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *connectionStore) DeleteConnection(ctx context.Context, conn model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, conn.ConnectionId)
	return nil
}

func (s *connectionStore) SaveConnection(ctx context.Context, conn model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns = append(s.conns, conn)
	return nil
}

func (s *connectionStore) UpdateNavigation(ctx context.Context, conn model.Connection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.conns {
		if c.Email == conn.Email && c.ConnectionId == conn.ConnectionId {
			s.conns[i].ViewPath = conn.ViewPath
			s.conns[i].ActiveContactId = conn.ActiveContactId
			return nil
		}
	}
	return database.ErrItemNotFound
}

type fakeGateway struct {
	mu    sync.Mutex
	posts map[string][]byte
	fail  map[string]error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{posts: map[string][]byte{}, fail: map[string]error{}}
}

func (g *fakeGateway) PostToConnectionWithContext(ctx context.Context, input *apigatewaymanagementapi.PostToConnectionInput, opts ...request.Option) (*apigatewaymanagementapi.PostToConnectionOutput, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err, ok := g.fail[*input.ConnectionId]; ok {
		return nil, err
	}
	g.posts[*input.ConnectionId] = input.Data
	return &apigatewaymanagementapi.PostToConnectionOutput{}, nil
}

func goneErr() error {
	return awserr.New(apigatewaymanagementapi.ErrCodeGoneException, "gone", nil)
}

type fakeBroadcaster struct {
	events []dto.NewMessageEvent
	// failures are returned, one per call, before any event is accepted.
	failures []error
}

func (b *fakeBroadcaster) BroadcastNewMessage(ctx context.Context, email string, event dto.NewMessageEvent) (int, error) {
	if len(b.failures) > 0 {
		err := b.failures[0]
		b.failures = b.failures[1:]
		return 0, err
	}
	b.events = append(b.events, event)
	return 1, nil
}
