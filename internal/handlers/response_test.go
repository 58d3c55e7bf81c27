package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/lumilearn/lumilearn-backend/internal/pkg/errors"
)

func TestRespondTaxonomy(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not_found",
			err:        &pkgerrors.NotFoundError{Kind: "goal", ID: "g1"},
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "activation_limit",
			err:        &pkgerrors.ActivationLimitError{Limit: 3, Active: 3},
			wantStatus: http.StatusConflict,
			wantCode:   "activation_limit",
		},
		{
			name: "validation",
			err: &pkgerrors.ValidationError{Kind: "goal", Fields: []pkgerrors.FieldError{
				{Field: "title", Code: "required", Message: "title is required"},
			}},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "validation_failed",
		},
		{
			name:       "storage",
			err:        &pkgerrors.StorageError{Op: "set", Key: "coreData", Cause: errors.New("down")},
			wantStatus: http.StatusBadGateway,
			wantCode:   "storage_failure",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			RespondTaxonomy(c, tc.err)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d", rec.Code, tc.wantStatus)
			}
			var envelope ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if envelope.Error.Code != tc.wantCode {
				t.Fatalf("code=%q, want %q", envelope.Error.Code, tc.wantCode)
			}
			if envelope.Error.Message == "" {
				t.Fatalf("empty error message")
			}
		})
	}
}

func TestRespondTaxonomyValidationFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondTaxonomy(c, &pkgerrors.ValidationError{Kind: "goal", Fields: []pkgerrors.FieldError{
		{Field: "title", Code: "required", Message: "title is required"},
		{Field: "priority", Code: "out_of_range", Message: "priority must be between 1 and 5"},
	}})

	var envelope ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(envelope.Error.Fields) != 2 {
		t.Fatalf("fields=%d, want 2", len(envelope.Error.Fields))
	}
	if envelope.Error.Fields[0].Field != "title" {
		t.Fatalf("fields[0]=%+v, want title violation first", envelope.Error.Fields[0])
	}
}
