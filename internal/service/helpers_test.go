package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	assert.True(t, apperrors.IsCode(err, code), "expected %s, got %v", code, err)
}
