package docstore

import (
	"context"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps every document in a single collection, keyed by its
// full path. The parent field carries the collection path so List is a
// plain Find.
type MongoStore struct {
	client *mongo.Client
	col    *mongo.Collection
}

func NewMongoStore(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{
		client: client,
		col:    db.Collection("documents"),
	}
}

type mongoDoc struct {
	Data bson.Raw `bson:"data"`
}

func (s *MongoStore) Get(ctx context.Context, path string, dest any) (bool, error) {
	if err := ValidateDocPath(path); err != nil {
		return false, err
	}
	var raw mongoDoc
	err := s.col.FindOne(ctx, bson.M{"_id": path}).Decode(&raw)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, bson.Unmarshal(raw.Data, dest)
}

func (s *MongoStore) Set(ctx context.Context, path string, doc any) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": path},
		bson.M{"$set": bson.M{
			"parent": Parent(path),
			"data":   doc,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Delete(ctx context.Context, path string) error {
	if err := ValidateDocPath(path); err != nil {
		return err
	}
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": path})
	return err
}

func (s *MongoStore) List(ctx context.Context, collection string, dest any) error {
	if err := ValidateCollectionPath(collection); err != nil {
		return err
	}
	cur, err := s.col.Find(ctx, bson.M{"parent": collection})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	slicev := reflect.ValueOf(dest).Elem()
	elemType := slicev.Type().Elem()
	for cur.Next(ctx) {
		var raw mongoDoc
		if err := cur.Decode(&raw); err != nil {
			return err
		}
		elem := reflect.New(elemType)
		if err := bson.Unmarshal(raw.Data, elem.Interface()); err != nil {
			return err
		}
		slicev = reflect.Append(slicev, elem.Elem())
	}
	if err := cur.Err(); err != nil {
		return err
	}
	reflect.ValueOf(dest).Elem().Set(slicev)
	return nil
}

// RunTx runs fn inside a Mongo multi-document transaction, so a review
// dual-write either lands on both paths or on neither.
func (s *MongoStore) RunTx(ctx context.Context, fn func(tx Store) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(&mongoTx{s: s, sc: sc})
	})
	return err
}

// mongoTx pins every operation to the session context of the enclosing
// transaction, whatever context the caller hands in.
type mongoTx struct {
	s  *MongoStore
	sc mongo.SessionContext
}

func (t *mongoTx) Get(_ context.Context, path string, dest any) (bool, error) {
	return t.s.Get(t.sc, path, dest)
}

func (t *mongoTx) Set(_ context.Context, path string, doc any) error {
	return t.s.Set(t.sc, path, doc)
}

func (t *mongoTx) Delete(_ context.Context, path string) error {
	return t.s.Delete(t.sc, path)
}

func (t *mongoTx) List(_ context.Context, collection string, dest any) error {
	return t.s.List(t.sc, collection, dest)
}
