package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bookhaven/bookstore-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository on MongoDB. Uniqueness of
// emails is enforced by a unique index; the resulting duplicate-key error
// is mapped to domain.ErrUserExists.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type bookSnapshot struct {
	BookID string  `bson:"book_id"`
	Title  string  `bson:"title"`
	Rating float64 `bson:"rating"`
	Price  float64 `bson:"price"`
	Cover  string  `bson:"cover"`
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Firstname      string             `bson:"firstname"`
	Lastname       string             `bson:"lastname"`
	Email          string             `bson:"email"`
	Password       string             `bson:"password"`
	Role           string             `bson:"role"`
	Cart           []bookSnapshot     `bson:"cart"`
	PurchasedBooks []bookSnapshot     `bson:"purchased_books"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Firstname:      user.Firstname,
		Lastname:       user.Lastname,
		Email:          user.Email,
		Password:       user.PasswordHash,
		Role:           user.Role,
		Cart:           toSnapshots(user.Cart),
		PurchasedBooks: toSnapshots(user.PurchasedBooks),
		CreatedAt:      user.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromUserDoc(doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(doc), nil
}

func (r *UserRepository) UpdateCart(ctx context.Context, userID string, cart []domain.Book) error {
	return r.setField(ctx, userID, "cart", toSnapshots(cart))
}

func (r *UserRepository) UpdatePurchasedBooks(ctx context.Context, userID string, books []domain.Book) error {
	return r.setField(ctx, userID, "purchased_books", toSnapshots(books))
}

func (r *UserRepository) setField(ctx context.Context, userID, field string, value interface{}) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{field: value}})
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index backing duplicate-email
// detection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toSnapshots(books []domain.Book) []bookSnapshot {
	out := make([]bookSnapshot, 0, len(books))
	for _, b := range books {
		out = append(out, bookSnapshot{
			BookID: b.ID,
			Title:  b.Title,
			Rating: b.Rating,
			Price:  b.Price,
			Cover:  b.Cover,
		})
	}
	return out
}

func fromSnapshots(snaps []bookSnapshot) []domain.Book {
	out := make([]domain.Book, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, domain.Book{
			ID:     s.BookID,
			Title:  s.Title,
			Rating: s.Rating,
			Price:  s.Price,
			Cover:  s.Cover,
		})
	}
	return out
}

func fromUserDoc(doc userDoc) *domain.User {
	return &domain.User{
		ID:             doc.ID.Hex(),
		Firstname:      doc.Firstname,
		Lastname:       doc.Lastname,
		Email:          doc.Email,
		PasswordHash:   doc.Password,
		Role:           doc.Role,
		Cart:           fromSnapshots(doc.Cart),
		PurchasedBooks: fromSnapshots(doc.PurchasedBooks),
		CreatedAt:      doc.CreatedAt,
	}
}
