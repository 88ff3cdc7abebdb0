package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore keeps uploaded vendor documents (contracts, quotes) in a
// GridFS bucket. Upload returns a generated filename handle; the event
// aggregate tracks handles, never bytes.
type DocumentStore struct {
	bucket *gridfs.Bucket
}

// NewDocumentStore opens the vendor_documents bucket on db.
func NewDocumentStore(db *mongo.Database) (*DocumentStore, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("vendor_documents"))
	if err != nil {
		return nil, fmt.Errorf("open gridfs bucket: %w", err)
	}
	return &DocumentStore{bucket: bucket}, nil
}

// Upload stores the stream and returns the filename handle. The original
// name contributes only its extension; the handle itself is generated so
// uploads can never collide or traverse paths.
func (s *DocumentStore) Upload(originalName, contentType string, r io.Reader) (string, error) {
	filename := uuid.NewString() + filepath.Ext(originalName)
	opts := options.GridFSUpload().SetMetadata(bson.M{"contentType": contentType})
	if _, err := s.bucket.UploadFromStream(filename, r, opts); err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}
	return filename, nil
}

// Delete removes the named document from the bucket. Callers use it to back
// out an upload whose handle never made it onto a vendor. Deleting a name
// with no stored file is a no-op.
func (s *DocumentStore) Delete(filename string) error {
	cursor, err := s.bucket.Find(bson.M{"filename": filename})
	if err != nil {
		return fmt.Errorf("find document %s: %w", filename, err)
	}
	defer cursor.Close(context.Background())

	for cursor.Next(context.Background()) {
		var file struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&file); err != nil {
			return fmt.Errorf("decode document %s: %w", filename, err)
		}
		if err := s.bucket.Delete(file.ID); err != nil {
			return fmt.Errorf("delete document %s: %w", filename, err)
		}
	}
	return cursor.Err()
}

// Open returns a read stream for the named document along with its content
// type and length. The caller must close the stream.
func (s *DocumentStore) Open(filename string) (io.ReadCloser, string, int64, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(filename)
	if err != nil {
		return nil, "", 0, fmt.Errorf("open document %s: %w", filename, err)
	}

	contentType := "application/octet-stream"
	var length int64
	if file := stream.GetFile(); file != nil {
		length = file.Length
		if file.Metadata != nil {
			if ct, ok := file.Metadata.Lookup("contentType").StringValueOK(); ok && ct != "" {
				contentType = ct
			}
		}
	}
	return stream, contentType, length, nil
}
