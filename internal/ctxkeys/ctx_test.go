package ctxkeys

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/templui/taskflow/internal/model"
)

func TestUser(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, User(ctx))

	user := &model.User{ID: "u1"}
	assert.Same(t, user, User(WithUser(ctx, user)))
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Equal(t, "abc", RequestID(WithRequestID(ctx, "abc")))
}
