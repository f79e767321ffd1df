package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dhruv/estate-hub/backend/internal/models"
)

// PropertyStore handles listing CRUD in the properties collection.
// Every mutating operation filters on both _id and seller, so a missing
// listing and someone else's listing are indistinguishable to callers.
type PropertyStore struct {
	col *mongo.Collection
}

func NewPropertyStore(c *Client) *PropertyStore {
	return &PropertyStore{col: c.Collection("properties")}
}

// sellerLookup resolves the seller reference into a seller_doc
// subdocument carrying name, email and phone.
func sellerLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "seller"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "seller_doc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$seller_doc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

// ListAvailable returns available listings, newest first, with seller
// identity resolved.
func (s *PropertyStore) ListAvailable(ctx context.Context) ([]models.Property, error) {
	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.StatusAvailable}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}, sellerLookup()...)

	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer cur.Close(ctx)

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return props, nil
}

// GetByID returns one listing of any status with seller identity
// resolved. A malformed id behaves like a missing one.
func (s *PropertyStore) GetByID(ctx context.Context, id string) (*models.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPropertyNotFound
	}

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
	}, sellerLookup()...)

	cur, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("get property: %w", err)
	}
	defer cur.Close(ctx)

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("decode property: %w", err)
	}
	if len(props) == 0 {
		return nil, models.ErrPropertyNotFound
	}
	return &props[0], nil
}

// ListBySeller returns all of a seller's listings regardless of status,
// newest first.
func (s *PropertyStore) ListBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.col.Find(ctx, bson.M{"seller": sellerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list seller properties: %w", err)
	}
	defer cur.Close(ctx)

	var props []models.Property
	if err := cur.All(ctx, &props); err != nil {
		return nil, fmt.Errorf("decode seller properties: %w", err)
	}
	return props, nil
}

// Create validates the input and persists a new listing owned by
// sellerID with status defaulted to available.
func (s *PropertyStore) Create(ctx context.Context, sellerID primitive.ObjectID, input models.PropertyInput) (*models.Property, error) {
	if verr := input.Validate(); verr != nil {
		return nil, verr
	}

	prop := models.Property{
		Title:        input.Title,
		Description:  input.Description,
		Price:        *input.Price,
		Location:     input.Location,
		PropertyType: input.PropertyType,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         *input.Area,
		Images:       input.Images,
		Amenities:    input.Amenities,
		SellerID:     sellerID,
		Status:       models.StatusAvailable,
		Featured:     input.Featured,
		CreatedAt:    time.Now(),
	}
	if prop.Images == nil {
		prop.Images = []string{}
	}
	if prop.Amenities == nil {
		prop.Amenities = []string{}
	}

	res, err := s.col.InsertOne(ctx, prop)
	if err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	prop.ID = res.InsertedID.(primitive.ObjectID)
	return &prop, nil
}

// patchDocument builds the $set document from the fields the patch
// actually carries. Updating this way means two concurrent patches with
// disjoint fields both land (field-level merge, not record replace).
func patchDocument(patch models.PropertyPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.PropertyType != nil {
		set["property_type"] = *patch.PropertyType
	}
	if patch.Bedrooms != nil {
		set["bedrooms"] = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		set["bathrooms"] = *patch.Bathrooms
	}
	if patch.Area != nil {
		set["area"] = *patch.Area
	}
	if patch.Images != nil {
		set["images"] = *patch.Images
	}
	if patch.Amenities != nil {
		set["amenities"] = *patch.Amenities
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	return set
}

// Update applies a partial update to a listing owned by sellerID. Zero
// matches collapse into ErrPropertyNotFound whether the listing is
// absent or owned by someone else.
func (s *PropertyStore) Update(ctx context.Context, id string, sellerID primitive.ObjectID, patch models.PropertyPatch) (*models.Property, error) {
	if verr := patch.Validate(); verr != nil {
		return nil, verr
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPropertyNotFound
	}

	filter := bson.M{"_id": oid, "seller": sellerID}

	// An empty patch is a no-op, but the ownership check still applies.
	set := patchDocument(patch)
	var updated models.Property
	if len(set) == 0 {
		err = s.col.FindOne(ctx, filter).Decode(&updated)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = s.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update property: %w", err)
	}
	return &updated, nil
}

// Delete removes a listing owned by sellerID, with the same collapsed
// existence/ownership check as Update.
func (s *PropertyStore) Delete(ctx context.Context, id string, sellerID primitive.ObjectID) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrPropertyNotFound
	}

	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid, "seller": sellerID})
	if err != nil {
		return fmt.Errorf("delete property: %w", err)
	}
	if res.DeletedCount == 0 {
		return models.ErrPropertyNotFound
	}
	return nil
}

// AppendImages pushes urls onto the existing image list in order. It
// never replaces the list; that path is the general update.
func (s *PropertyStore) AppendImages(ctx context.Context, id string, sellerID primitive.ObjectID, urls []string) (*models.Property, error) {
	if len(urls) == 0 {
		return nil, models.ErrNoImages
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPropertyNotFound
	}

	filter := bson.M{"_id": oid, "seller": sellerID}
	update := bson.M{"$push": bson.M{"images": bson.M{"$each": urls}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Property
	err = s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("append images: %w", err)
	}
	return &updated, nil
}
