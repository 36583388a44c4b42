package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	clientDomain "smartlenderup-backend/internal/domain/client"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const clientKeyPrefix = "cache:client:"

// ClientRepository is a read-through cache over the authoritative store.
// Redis failures are logged and the store is used directly.
type ClientRepository struct {
	next clientDomain.Repository
	rdb  *redis.Client
	ttl  time.Duration
	log  *logrus.Logger
}

func NewClientRepository(next clientDomain.Repository, rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *ClientRepository {
	return &ClientRepository{next: next, rdb: rdb, ttl: ttl, log: log}
}

// entry carries the primary key, which the public JSON form omits, so a
// cached client can be saved back without turning into an insert.
type entry struct {
	PK     uint64               `json:"pk"`
	Client *clientDomain.Client `json:"client"`
}

func clientKey(clientID string) string { return clientKeyPrefix + clientID }

func (r *ClientRepository) GetByClientID(ctx context.Context, clientID string) (*clientDomain.Client, error) {
	raw, err := r.rdb.Get(ctx, clientKey(clientID)).Bytes()
	switch {
	case err == nil:
		var e entry
		if uerr := json.Unmarshal(raw, &e); uerr == nil && e.Client != nil {
			e.Client.ID = e.PK
			return e.Client, nil
		}
		r.log.WithField("client_id", clientID).Warn("client cache: dropping undecodable entry")
		r.invalidate(ctx, clientID)
	case !errors.Is(err, redis.Nil):
		r.log.WithError(err).WithField("client_id", clientID).Warn("client cache: read failed")
	}

	c, err := r.next.GetByClientID(ctx, clientID)
	if err != nil {
		return c, err
	}
	r.store(ctx, c)
	return c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *clientDomain.Client) error {
	if err := r.next.Create(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.ClientID)
	return nil
}

func (r *ClientRepository) Save(ctx context.Context, c *clientDomain.Client) error {
	if err := r.next.Save(ctx, c); err != nil {
		return err
	}
	r.invalidate(ctx, c.ClientID)
	return nil
}

// List always goes to the store.
func (r *ClientRepository) List(ctx context.Context) ([]clientDomain.Client, error) {
	return r.next.List(ctx)
}

func (r *ClientRepository) store(ctx context.Context, c *clientDomain.Client) {
	payload, err := json.Marshal(entry{PK: c.ID, Client: c})
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, clientKey(c.ClientID), payload, r.ttl).Err(); err != nil {
		r.log.WithError(err).WithField("client_id", c.ClientID).Warn("client cache: write failed")
	}
}

func (r *ClientRepository) invalidate(ctx context.Context, clientID string) {
	if err := r.rdb.Del(ctx, clientKey(clientID)).Err(); err != nil {
		r.log.WithError(err).WithField("client_id", clientID).Warn("client cache: invalidate failed")
	}
}
