package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homeharbor/harbor-api/internal/core/domain"
)

func TestAdminHandler_ListPending(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{pending: []domain.PendingUser{
		{ID: "p-1", Email: "a@example.com", Role: domain.RoleResident},
		{ID: "p-2", Email: "b@example.com", Role: domain.RoleStaff},
	}}
	handler := NewAdminHandler(stub)

	rec := httptest.NewRecorder()
	if err := handler.ListPending(e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/admin/pending-users", nil), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp pendingUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 2 || resp.Items[0].ID != "p-1" || resp.Items[1].ID != "p-2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAdminHandler_ApproveAndReject(t *testing.T) {
	var approved, rejected string
	stub := &stubAuthService{
		approveFn: func(_ context.Context, id string) error { approved = id; return nil },
		rejectFn:  func(_ context.Context, id string) error { rejected = id; return nil },
	}
	handler := NewAdminHandler(stub)
	e := newEcho()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("p-1")
	if err := handler.Approve(c); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if rec.Code != http.StatusNoContent || approved != "p-1" {
		t.Fatalf("expected 204 approving p-1, got %d %q", rec.Code, approved)
	}

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("unknown")
	if err := handler.Reject(c); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rec.Code != http.StatusNoContent || rejected != "unknown" {
		t.Fatalf("expected 204 rejecting unknown, got %d %q", rec.Code, rejected)
	}
}
