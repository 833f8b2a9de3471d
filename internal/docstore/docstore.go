// Package docstore exposes the hierarchical document database the rest of
// the application writes through. Documents live at Firestore-style paths
// like users/{uid}/watchlist/{movieId}; a document path has an even number
// of segments, a collection path an odd number.
package docstore

import (
	"context"
	"fmt"
	"strings"
)

type Store interface {
	// Get decodes the document at path into dest. The boolean reports
	// whether the document exists; an absent document is not an error.
	Get(ctx context.Context, path string, dest any) (bool, error)

	// Set upserts the document at path.
	Set(ctx context.Context, path string, doc any) error

	// Delete removes the document at path. Deleting an absent document
	// is a no-op success.
	Delete(ctx context.Context, path string) error

	// List decodes every document in the collection into dest, which
	// must be a pointer to a slice.
	List(ctx context.Context, collection string, dest any) error
}

// TxRunner is implemented by stores that can apply a batch of writes
// atomically. fn runs against a transactional view of the store.
type TxRunner interface {
	RunTx(ctx context.Context, fn func(tx Store) error) error
}

// ValidateDocPath checks that path names a document: a non-empty even
// number of non-empty slash-separated segments.
func ValidateDocPath(path string) error {
	segs, err := split(path)
	if err != nil {
		return err
	}
	if len(segs)%2 != 0 {
		return fmt.Errorf("docstore: %q is not a document path", path)
	}
	return nil
}

// ValidateCollectionPath checks that path names a collection: an odd
// number of non-empty segments.
func ValidateCollectionPath(path string) error {
	segs, err := split(path)
	if err != nil {
		return err
	}
	if len(segs)%2 != 1 {
		return fmt.Errorf("docstore: %q is not a collection path", path)
	}
	return nil
}

// Parent returns the collection a document path belongs to.
func Parent(docPath string) string {
	i := strings.LastIndex(docPath, "/")
	if i < 0 {
		return ""
	}
	return docPath[:i]
}

func split(path string) ([]string, error) {
	if path == "" {
		return nil, fmt.Errorf("docstore: empty path")
	}
	segs := strings.Split(path, "/")
	for _, s := range segs {
		if s == "" {
			return nil, fmt.Errorf("docstore: path %q has an empty segment", path)
		}
	}
	return segs, nil
}
