package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wardlink/hospital-system/internal/core/domain"
)

const collectionWards = "wards"

// WardRepository persists ward records. The owning hospital summary is
// embedded on the document; hospital management lives outside this service.
type WardRepository struct {
	col *mongo.Collection
}

func NewWardRepository(db *mongo.Database) *WardRepository {
	return &WardRepository{col: db.Collection(collectionWards)}
}

type hospitalDoc struct {
	ID   string `bson:"hospital_id"`
	Name string `bson:"name"`
	Pic  string `bson:"pic,omitempty"`
}

type wardDoc struct {
	ID         string       `bson:"_id"`
	Name       string       `bson:"name"`
	Type       string       `bson:"type,omitempty"`
	HospitalID string       `bson:"hospital_id"`
	Hospital   *hospitalDoc `bson:"hospital,omitempty"`
	CreatedAt  int64        `bson:"created_at"`
	UpdatedAt  int64        `bson:"updated_at"`
}

func toWardDoc(w *domain.Ward) wardDoc {
	doc := wardDoc{
		ID:         w.ID,
		Name:       w.Name,
		Type:       w.Type,
		HospitalID: w.HospitalID,
		CreatedAt:  w.CreatedAt.Unix(),
		UpdatedAt:  w.UpdatedAt.Unix(),
	}
	if w.Hospital != nil {
		doc.Hospital = &hospitalDoc{ID: w.Hospital.ID, Name: w.Hospital.Name, Pic: w.Hospital.Pic}
	}
	return doc
}

func (d wardDoc) toDomain() domain.Ward {
	ward := domain.Ward{
		ID:         d.ID,
		Name:       d.Name,
		Type:       d.Type,
		HospitalID: d.HospitalID,
		CreatedAt:  unixToTime(d.CreatedAt),
		UpdatedAt:  unixToTime(d.UpdatedAt),
	}
	if d.Hospital != nil {
		ward.Hospital = &domain.Hospital{ID: d.Hospital.ID, Name: d.Hospital.Name, Pic: d.Hospital.Pic}
	}
	return ward
}

func (r *WardRepository) Create(ctx context.Context, ward *domain.Ward) (*domain.Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toWardDoc(ward)); err != nil {
		return nil, fmt.Errorf("insert ward: %w", err)
	}
	return ward, nil
}

func (r *WardRepository) FindAll(ctx context.Context) ([]domain.Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find wards: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []wardDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode wards: %w", err)
	}

	wards := make([]domain.Ward, len(docs))
	for i, d := range docs {
		wards[i] = d.toDomain()
	}
	return wards, nil
}

func (r *WardRepository) FindByID(ctx context.Context, id string) (*domain.Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc wardDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWardNotFound
		}
		return nil, fmt.Errorf("find ward: %w", err)
	}
	ward := doc.toDomain()
	return &ward, nil
}

func (r *WardRepository) Update(ctx context.Context, ward *domain.Ward) (*domain.Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": ward.ID}, toWardDoc(ward))
	if err != nil {
		return nil, fmt.Errorf("update ward: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrWardNotFound
	}
	return ward, nil
}

func (r *WardRepository) Delete(ctx context.Context, id string) (*domain.Ward, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc wardDoc
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWardNotFound
		}
		return nil, fmt.Errorf("delete ward: %w", err)
	}
	ward := doc.toDomain()
	return &ward, nil
}
