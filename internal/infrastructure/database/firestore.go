package database

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"ecofinds/pkg/logger"
)

// ConnectFirestore opens a Firestore client. Credentials come from the service
// account file when one is configured, otherwise from the environment's default
// Google credentials.
func ConnectFirestore(ctx context.Context, projectID, serviceAccountPath string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if serviceAccountPath != "" {
		if _, err := os.Stat(serviceAccountPath); err != nil {
			return nil, fmt.Errorf("service account file %s: %w", serviceAccountPath, err)
		}
		logger.Info("Using Firebase service account from file: %s", serviceAccountPath)
		opts = append(opts, option.WithCredentialsFile(serviceAccountPath))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}

	logger.Info("Connected to Firestore project %s", projectID)
	return client, nil
}

// PingFirestore reads at most one document. Firestore has no ping RPC.
func PingFirestore(ctx context.Context, client *firestore.Client) error {
	_, err := client.Collection("categories").Limit(1).Documents(ctx).Next()
	if err != nil && err != iterator.Done {
		return err
	}
	return nil
}
