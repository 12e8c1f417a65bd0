package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/billwise/internal/auth"
)

func TestGetSubject(t *testing.T) {
	if got := GetSubject(context.Background()); got != "" {
		t.Errorf("expected empty subject, got %q", got)
	}
	ctx := context.WithValue(context.Background(), SubjectKey, "owner")
	if got := GetSubject(ctx); got != "owner" {
		t.Errorf("expected owner, got %q", got)
	}
}

func TestAuthenticate(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	token, _, err := jwtManager.Generate("owner")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	interceptor := RequireAuth(jwtManager, "/billwise.v1.AuthService/Login").(*authInterceptor)

	tests := []struct {
		name      string
		procedure string
		header    string
		wantErr   bool
		subject   string
	}{
		{name: "public procedure", procedure: "/billwise.v1.AuthService/Login"},
		{name: "missing header", procedure: "/billwise.v1.BillService/SaveBill", wantErr: true},
		{name: "not bearer", procedure: "/billwise.v1.BillService/SaveBill", header: "Basic abc", wantErr: true},
		{name: "bad token", procedure: "/billwise.v1.BillService/SaveBill", header: "Bearer nope", wantErr: true},
		{name: "valid token", procedure: "/billwise.v1.BillService/SaveBill", header: "Bearer " + token, subject: "owner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.header != "" {
				header.Set("Authorization", tt.header)
			}
			ctx, err := interceptor.authenticate(context.Background(), tt.procedure, header)
			if tt.wantErr {
				if connect.CodeOf(err) != connect.CodeUnauthenticated {
					t.Fatalf("expected unauthenticated, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := GetSubject(ctx); got != tt.subject {
				t.Errorf("expected subject %q, got %q", tt.subject, got)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if called {
		t.Error("preflight must not reach the next handler")
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected wildcard origin, got %q", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if !called {
		t.Error("expected POST to reach the next handler")
	}
}
