package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("access to this organization is not allowed")

	converted := ToDomainError(fmt.Errorf("handler: %w", original))
	require.NotNil(t, converted)
	assert.Equal(t, "FORBIDDEN", converted.Code)
	assert.Equal(t, http.StatusForbidden, converted.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	converted := ToDomainError(fmt.Errorf("query: %w", pgx.ErrNoRows))
	require.NotNil(t, converted)
	assert.Equal(t, "NOT_FOUND", converted.Code)
	assert.Equal(t, http.StatusNotFound, converted.HTTPStatus)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	converted := ToDomainError(errors.New("boom"))
	require.NotNil(t, converted)
	assert.Equal(t, "INTERNAL_ERROR", converted.Code)
	assert.Equal(t, http.StatusInternalServerError, converted.HTTPStatus)
	assert.Equal(t, "internal server error", converted.Message)

	assert.Nil(t, ToDomainError(nil))
}

func TestAlreadyApprovedShape(t *testing.T) {
	err := NewAlreadyApproved("form-1")

	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "FORM_ALREADY_APPROVED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.Equal(t, "form-1", de.Details["form_id"])
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("smtp relay down")
	err := NewDependencyError("email delivery failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "email delivery failed")
	assert.Contains(t, err.Error(), "smtp relay down")
}
