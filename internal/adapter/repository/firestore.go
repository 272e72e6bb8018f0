package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"campusmarket/pkg/errors"
)

const (
	productsCollection    = "products"
	usersCollection       = "users"
	credentialsCollection = "credentials"
	cartsCollection       = "carts"
	ordersCollection      = "orders"
	feedbackCollection    = "feedback"
)

// storeError maps a Firestore failure to NotFound for resource or to Internal with action.
func storeError(err error, resource, action string) error {
	if status.Code(err) == codes.NotFound {
		return errors.NotFound(resource, err)
	}
	return errors.Internal(action, err)
}

// getAll fetches the documents named by ids from collection in one round trip. Duplicate and
// empty ids are ignored; missing documents are left out of the result.
func getAll(ctx context.Context, client *firestore.Client, collection string, ids []string) ([]*firestore.DocumentSnapshot, error) {
	seen := make(map[string]bool, len(ids))
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		refs = append(refs, client.Collection(collection).Doc(id))
	}
	if len(refs) == 0 {
		return nil, nil
	}

	docs, err := client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	found := docs[:0]
	for _, doc := range docs {
		if doc.Exists() {
			found = append(found, doc)
		}
	}
	return found, nil
}
