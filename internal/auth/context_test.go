package auth

import (
	"context"
	"testing"
)

func TestUserIDContext(t *testing.T) {
	ctx := WithUserID(context.Background(), 42)

	id, ok := UserIDFromContext(ctx)
	if !ok {
		t.Fatal("expected user id in context")
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
}

func TestUserIDContextMissing(t *testing.T) {
	if _, ok := UserIDFromContext(context.Background()); ok {
		t.Error("expected no user id in empty context")
	}
}
