package controllers

import (
	"bytes"
	"context"
	"log"
	"os"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// A cascade failure must surface in the logs; orphaned comments are
// otherwise invisible. A disconnected client makes DeleteMany fail
// without a running mongod.
func TestDeleteCommentsLogsFailure(t *testing.T) {
	client, err := mongo.Connect(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if err := client.Disconnect(context.Background()); err != nil {
		t.Fatal(err)
	}
	comments := client.Database("civicconnect").Collection("comments")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	ic := NewIssueController(nil, comments, nil, nil, nil, 0)
	ic.deleteComments(context.Background(), primitive.NewObjectID())

	if !strings.Contains(buf.String(), "Failed to delete comments") {
		t.Errorf("cascade failure was not logged, log output: %q", buf.String())
	}
}
