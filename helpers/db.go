package helpers

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/glog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names within the document store
const (
	ArtistsCollection   = "artists"
	AlbumsCollection    = "albums"
	CompaniesCollection = "recordcompanies"
	SongsCollection     = "songs"
)

// ErrNoDocument is returned by FindOne and FindOneAndDelete when nothing
// matched the filter
var ErrNoDocument = errors.New("no matching document")

// Collection is the set of operations the catalogue performs against a
// single collection. The engine is written against this rather than the
// driver so that tests can substitute an in-memory implementation and count
// store accesses.
type Collection interface {
	// FindOne decodes the first document matching filter into out, or
	// returns ErrNoDocument.
	FindOne(ctx context.Context, filter bson.M, out interface{}) error
	// FindMany decodes every document matching filter into out, which must
	// be a pointer to a slice.
	FindMany(ctx context.Context, filter bson.M, out interface{}) error
	// InsertOne writes a new document and errors if the write was not
	// acknowledged.
	InsertOne(ctx context.Context, doc interface{}) error
	// UpdateOne applies update to the first document matching filter.
	UpdateOne(ctx context.Context, filter bson.M, update bson.M) error
	// UpdateMany applies update (field overlay or array pull) to every
	// document matching filter.
	UpdateMany(ctx context.Context, filter bson.M, update bson.M) error
	// FindOneAndDelete removes the first document matching filter and
	// decodes what was removed into out, or returns ErrNoDocument.
	FindOneAndDelete(ctx context.Context, filter bson.M, out interface{}) error
	// DeleteMany removes every document matching filter.
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
	// DistinctIDs returns the ids of every document matching filter. Used
	// to locate documents whose embedded copies must be invalidated on a
	// cascading delete.
	DistinctIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error)
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, filter bson.M) (int64, error)
}

// DBConfig stores the connection information used by ConnectStore to
// establish a connection to the document store
type DBConfig struct {
	Host     string
	Port     int64
	Database string
	Username string
	Password string
}

// Store holds one handle per collection. It owns no caching logic.
type Store struct {
	Artists   Collection
	Albums    Collection
	Companies Collection
	Songs     Collection

	client *mongo.Client
}

// ConnectStore will establish the connection to the document store or return
// the error that prevented it
func ConnectStore(ctx context.Context, c DBConfig) (*Store, error) {
	var uri string
	if c.Username != "" {
		uri = fmt.Sprintf(
			"mongodb://%s:%s@%s:%d",
			c.Username,
			c.Password,
			c.Host,
			c.Port,
		)
	} else {
		uri = fmt.Sprintf("mongodb://%s:%d", c.Host, c.Port)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("store connection failed: %v", err.Error())
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("store ping failed: %v", err.Error())
	}

	db := client.Database(c.Database)

	return &Store{
		Artists:   mongoCollection{db.Collection(ArtistsCollection)},
		Albums:    mongoCollection{db.Collection(AlbumsCollection)},
		Companies: mongoCollection{db.Collection(CompaniesCollection)},
		Songs:     mongoCollection{db.Collection(SongsCollection)},
		client:    client,
	}, nil
}

// Close disconnects from the document store
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	col *mongo.Collection
}

func (m mongoCollection) FindOne(
	ctx context.Context,
	filter bson.M,
	out interface{},
) error {
	err := m.col.FindOne(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNoDocument
	}
	return err
}

func (m mongoCollection) FindMany(
	ctx context.Context,
	filter bson.M,
	out interface{},
) error {
	cur, err := m.col.Find(ctx, filter)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}

func (m mongoCollection) InsertOne(ctx context.Context, doc interface{}) error {
	res, err := m.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if res.InsertedID == nil {
		return fmt.Errorf("insert was not acknowledged")
	}
	return nil
}

func (m mongoCollection) UpdateOne(
	ctx context.Context,
	filter bson.M,
	update bson.M,
) error {
	_, err := m.col.UpdateOne(ctx, filter, update)
	return err
}

func (m mongoCollection) UpdateMany(
	ctx context.Context,
	filter bson.M,
	update bson.M,
) error {
	_, err := m.col.UpdateMany(ctx, filter, update)
	return err
}

func (m mongoCollection) FindOneAndDelete(
	ctx context.Context,
	filter bson.M,
	out interface{},
) error {
	err := m.col.FindOneAndDelete(ctx, filter).Decode(out)
	if err == mongo.ErrNoDocuments {
		return ErrNoDocument
	}
	return err
}

func (m mongoCollection) DeleteMany(
	ctx context.Context,
	filter bson.M,
) (int64, error) {
	res, err := m.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (m mongoCollection) DistinctIDs(
	ctx context.Context,
	filter bson.M,
) ([]primitive.ObjectID, error) {
	vals, err := m.col.Distinct(ctx, "_id", filter)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(vals))
	for _, v := range vals {
		id, ok := v.(primitive.ObjectID)
		if !ok {
			glog.Warningf("distinct _id is not an ObjectID: %+v", v)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (m mongoCollection) Count(
	ctx context.Context,
	filter bson.M,
) (int64, error) {
	return m.col.CountDocuments(ctx, filter)
}
