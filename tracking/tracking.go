// Package tracking records the status of document runs.
package tracking

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
)

// Status is the lifecycle state of a run.
type Status string

// Run statuses.
const (
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// Run is the record kept for one document run.
type Run struct {
	ID               string    `firestore:"runId"`
	Document         string    `firestore:"originalFilename,omitempty"`
	Status           Status    `firestore:"status"`
	ErrorDetails     string    `firestore:"errorDetails,omitempty"`
	PageCount        int       `firestore:"pageCount"`
	ParagraphCount   int       `firestore:"paragraphCount"`
	ObservationCount int       `firestore:"observationCount"`
	ReconciledCount  int       `firestore:"reconciledCount"`
	Categories       []string  `firestore:"categories,omitempty"`
	CreatedAt        time.Time `firestore:"createdAt"`
	UpdatedAt        time.Time `firestore:"updatedAt"`
}

// Tracker persists run records.
type Tracker interface {
	// Start records a new run.
	Start(ctx context.Context, run Run) error

	// Finish records the final status and counts of a run.
	Finish(ctx context.Context, run Run) error
}

// Nop discards run records.
type Nop struct{}

// Start implements Tracker.
func (Nop) Start(context.Context, Run) error { return nil }

// Finish implements Tracker.
func (Nop) Finish(context.Context, Run) error { return nil }

// DefaultCollection is the Firestore collection for run records.
const DefaultCollection = "obsmatrix-runs"

// Firestore stores run records as documents keyed by run id.
type Firestore struct {
	client     *firestore.Client
	collection string
}

// NewFirestoreClient creates a Firestore client for projectID.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}

// NewFirestore creates a tracker writing to collection.
func NewFirestore(client *firestore.Client, collection string) *Firestore {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Firestore{client: client, collection: collection}
}

// Start implements Tracker.
func (f *Firestore) Start(ctx context.Context, run Run) error {
	if _, err := f.client.Collection(f.collection).Doc(run.ID).Set(ctx, run); err != nil {
		return fmt.Errorf("failed to create run document: %w", err)
	}
	return nil
}

// Finish implements Tracker.
func (f *Firestore) Finish(ctx context.Context, run Run) error {
	if _, err := f.client.Collection(f.collection).Doc(run.ID).Update(ctx, finishUpdates(run)); err != nil {
		return fmt.Errorf("failed to update run status to %s: %w", run.Status, err)
	}
	return nil
}

func finishUpdates(run Run) []firestore.Update {
	updates := []firestore.Update{
		{Path: "status", Value: string(run.Status)},
		{Path: "pageCount", Value: run.PageCount},
		{Path: "paragraphCount", Value: run.ParagraphCount},
		{Path: "observationCount", Value: run.ObservationCount},
		{Path: "reconciledCount", Value: run.ReconciledCount},
		{Path: "updatedAt", Value: run.UpdatedAt},
	}
	if len(run.Categories) > 0 {
		updates = append(updates, firestore.Update{Path: "categories", Value: run.Categories})
	}
	if run.ErrorDetails != "" {
		updates = append(updates, firestore.Update{Path: "errorDetails", Value: run.ErrorDetails})
	}
	return updates
}
