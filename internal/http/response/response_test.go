package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestBuildPagination(t *testing.T) {
	p := BuildPagination(0, 0, 45)
	if p.Page != 1 || p.PageSize != 20 {
		t.Fatalf("defaults want page 1 size 20 got %d %d", p.Page, p.PageSize)
	}
	if p.TotalPage != 3 {
		t.Fatalf("total page want 3 got %d", p.TotalPage)
	}

	p = BuildPagination(2, 10, 30)
	if p.TotalPage != 3 {
		t.Fatalf("exact division total page want 3 got %d", p.TotalPage)
	}
}

func TestSuccessEnvelopesCarryPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/api/v1/posts", func(c *gin.Context) {
		SuccessWithPage(c, []string{}, BuildPagination(1, 20, 0))
	})
	engine.GET("/api/v1/posts/1", func(c *gin.Context) {
		Success(c, gin.H{"id": 1})
	})
	engine.POST("/api/v1/posts", func(c *gin.Context) {
		Created(c, gin.H{"id": 2})
	})
	engine.POST("/api/v1/auth/logout", func(c *gin.Context) {
		SuccessWithMsg(c, "logged out", nil)
	})

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/posts", http.StatusOK},
		{http.MethodGet, "/api/v1/posts/1", http.StatusOK},
		{http.MethodPost, "/api/v1/posts", http.StatusCreated},
		{http.MethodPost, "/api/v1/auth/logout", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s want %d got %d", tc.method, tc.path, tc.want, rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body failed: %v", err)
		}
		if body["path"] != tc.path {
			t.Fatalf("%s %s path want %s got %v", tc.method, tc.path, tc.path, body["path"])
		}
		if body["timestamp"] == "" {
			t.Fatalf("%s %s should carry a timestamp", tc.method, tc.path)
		}
	}
}
