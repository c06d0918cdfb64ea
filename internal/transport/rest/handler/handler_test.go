package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Yomero3500/RegistroMicroServicio-sub000/internal/model"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"token": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc", body["token"])
}

func TestWriteServiceErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{model.NewValidationError("year", "must be a 4-digit year"), http.StatusBadRequest},
		{model.NewNotFoundError("student", "s1"), http.StatusNotFound},
		{model.NewComputationError("risk dashboard", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain failure"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		writeServiceError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.NotEmpty(t, body["error"])
	}
}

func TestWriteServiceErrorUnwrapsWrappedValidation(t *testing.T) {
	wrapped := model.NewComputationError("submission", model.NewValidationError("token", "is required"))

	rec := httptest.NewRecorder()
	writeServiceError(rec, wrapped)

	// errors.As walks the chain, so the inner validation error decides.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
