package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

const (
	collectionPendingUsers  = "pending_users"
	collectionApprovedUsers = "approved_users"
)

// AccountRepository implements ports.AccountRepository using MongoDB.
// Pending ids are UUIDv7, so sorting by _id keeps insertion order.
type AccountRepository struct {
	pending  *mongo.Collection
	approved *mongo.Collection
	now      func() time.Time
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		pending:  db.Collection(collectionPendingUsers),
		approved: db.Collection(collectionApprovedUsers),
		now:      time.Now,
	}
}

type mongoPendingUser struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Email           string    `bson:"email"`
	ApartmentNumber string    `bson:"apartment_number,omitempty"`
	Role            string    `bson:"role"`
	PasswordHash    string    `bson:"password_hash"`
	RequestedAt     time.Time `bson:"requested_at"`
}

type mongoUser struct {
	ID              string    `bson:"_id"`
	Name            string    `bson:"name"`
	Email           string    `bson:"email"`
	ApartmentNumber string    `bson:"apartment_number,omitempty"`
	Role            string    `bson:"role"`
	PasswordHash    string    `bson:"password_hash"`
	ApprovedAt      time.Time `bson:"approved_at"`
}

var insertionOrder = bson.D{{Key: "_id", Value: 1}}

func (r *AccountRepository) AddPending(ctx context.Context, p *domain.PendingUser) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pending.InsertOne(ctx, mongoPendingUser{
		ID:              p.ID,
		Name:            p.Name,
		Email:           p.Email,
		ApartmentNumber: p.ApartmentNumber,
		Role:            string(p.Role),
		PasswordHash:    p.PasswordHash,
		RequestedAt:     p.RequestedAt,
	})
	if err != nil {
		return fmt.Errorf("insert pending user: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindPendingByEmail(ctx context.Context, email string) (*domain.PendingUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPendingUser
	opts := options.FindOne().SetSort(insertionOrder)
	if err := r.pending.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find pending user: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *AccountRepository) TakePending(ctx context.Context, id string) (*domain.PendingUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPendingUser
	if err := r.pending.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("take pending user: %w", err)
	}
	p := doc.toDomain()
	return &p, nil
}

func (r *AccountRepository) ListPending(ctx context.Context) ([]domain.PendingUser, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.pending.Find(ctx, bson.M{}, options.Find().SetSort(insertionOrder))
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}
	var docs []mongoPendingUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode pending users: %w", err)
	}

	out := make([]domain.PendingUser, len(docs))
	for i, d := range docs {
		out[i] = d.toDomain()
	}
	return out, nil
}

func (r *AccountRepository) AddApproved(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.approved.InsertOne(ctx, mongoUser{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ApartmentNumber: u.ApartmentNumber,
		Role:            string(u.Role),
		PasswordHash:    u.PasswordHash,
		ApprovedAt:      r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("insert approved user: %w", err)
	}
	return nil
}

func (r *AccountRepository) FindApproved(ctx context.Context, email string) ([]domain.User, error) {
	return r.findApproved(ctx, bson.M{"email": email})
}

func (r *AccountRepository) ListApproved(ctx context.Context) ([]domain.User, error) {
	return r.findApproved(ctx, bson.M{})
}

func (r *AccountRepository) findApproved(ctx context.Context, filter bson.M) ([]domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "approved_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.approved.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find approved users: %w", err)
	}
	var docs []mongoUser
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode approved users: %w", err)
	}

	out := make([]domain.User, len(docs))
	for i, d := range docs {
		out[i] = domain.User{
			ID:              d.ID,
			Name:            d.Name,
			Email:           d.Email,
			ApartmentNumber: d.ApartmentNumber,
			Role:            domain.Role(d.Role),
			PasswordHash:    d.PasswordHash,
		}
	}
	return out, nil
}

// EnsureIndexes creates the email lookup indexes. Emails are deliberately not unique.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := r.pending.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}}); err != nil {
		return fmt.Errorf("pending_users index: %w", err)
	}
	_, err := r.approved.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "approved_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("approved_users index: %w", err)
	}
	return nil
}

func (d mongoPendingUser) toDomain() domain.PendingUser {
	return domain.PendingUser{
		ID:              d.ID,
		Name:            d.Name,
		Email:           d.Email,
		ApartmentNumber: d.ApartmentNumber,
		Role:            domain.Role(d.Role),
		PasswordHash:    d.PasswordHash,
		RequestedAt:     d.RequestedAt,
	}
}
