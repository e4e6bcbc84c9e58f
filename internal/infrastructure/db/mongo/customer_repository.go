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

	"github.com/banco/cliente-api/internal/core/domain"
)

const collectionCustomers = "customers"

// CustomerRepository persists customers together with their product
// associations in a single document, so a create is atomic: either the
// customer and all its associations land, or nothing does. The unique index
// on national_id arbitrates concurrent duplicate creates.
type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

type customerDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	NationalID   string             `bson:"national_id"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Street       string             `bson:"street,omitempty"`
	Number       *int               `bson:"number,omitempty"`
	PostalCode   string             `bson:"postal_code,omitempty"`
	Phone        string             `bson:"phone,omitempty"`
	Mobile       string             `bson:"mobile,omitempty"`
	ProductCodes []string           `bson:"product_codes"`
}

func toDoc(c *domain.Customer) customerDoc {
	return customerDoc{
		NationalID:   c.NationalID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Street:       c.Street,
		Number:       c.Number,
		PostalCode:   c.PostalCode,
		Phone:        c.Phone,
		Mobile:       c.Mobile,
		ProductCodes: c.ProductCodes,
	}
}

func (d customerDoc) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:           d.ID.Hex(),
		NationalID:   d.NationalID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Street:       d.Street,
		Number:       d.Number,
		PostalCode:   d.PostalCode,
		Phone:        d.Phone,
		Mobile:       d.Mobile,
		ProductCodes: d.ProductCodes,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toDoc(customer)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCustomerExists
		}
		return nil, fmt.Errorf("insert customer: %w", err)
	}

	created := *customer
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) ([]*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}
	return decodeCustomers(ctx, cur)
}

func (r *CustomerRepository) FindByNationalID(ctx context.Context, nationalID string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	if err := r.col.FindOne(ctx, bson.M{"national_id": nationalID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CustomerRepository) FindByProductCode(ctx context.Context, code string) ([]*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"product_codes": code})
	if err != nil {
		return nil, fmt.Errorf("find customers by product: %w", err)
	}
	return decodeCustomers(ctx, cur)
}

// UpdatePhone mutates only the phone field and returns the updated document.
func (r *CustomerRepository) UpdatePhone(ctx context.Context, nationalID, phone string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc customerDoc
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"national_id": nationalID},
		bson.M{"$set": bson.M{"phone": phone}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("update customer phone: %w", err)
	}
	return doc.toDomain(), nil
}

// Delete removes the customer document, taking its product associations with
// it. Product rows are untouched.
func (r *CustomerRepository) Delete(ctx context.Context, nationalID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"national_id": nationalID})
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// EnsureIndexes creates the unique national_id index and the product lookup index.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "national_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "product_codes", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeCustomers(ctx context.Context, cur *mongo.Cursor) ([]*domain.Customer, error) {
	defer cur.Close(ctx)

	var customers []*domain.Customer
	for cur.Next(ctx) {
		var doc customerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode customer: %w", err)
		}
		customers = append(customers, doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}
