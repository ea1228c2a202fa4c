package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valeshop/access-intake/internal/model"
)

func TestNewPayload_FreshValuePerCall(t *testing.T) {
	witness := &model.AccessRequest{RequesterName: "template"}

	a := newPayload(witness)
	b := newPayload(witness)

	assert.NotSame(t, witness, a)
	assert.NotSame(t, a, b)
	assert.Empty(t, a.RequesterName)
}
