package router

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddlewarePassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	rule := RateLimitRule{Prefix: "test:rate", WindowSeconds: 60, MaxRequests: 1}
	// Redis 未启用时不限流
	engine.POST("/limited", RateLimitMiddleware(nil, rule, KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/limited", nil)
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d want 200 got %d", i, rec.Code)
		}
	}
}

func TestKeyByIPAndJSONFieldRestoresBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyFunc := KeyByIPAndJSONField("email")

	body := `{"email":"  User@Example.com  ","password":"x"}`
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBufferString(body))

	key := keyFunc(c)
	if key != "user@example.com|"+c.ClientIP() {
		t.Fatalf("unexpected key: %s", key)
	}

	// 读取后请求体必须可再次读取
	restored, err := io.ReadAll(c.Request.Body)
	if err != nil {
		t.Fatalf("re-read body failed: %v", err)
	}
	if string(restored) != body {
		t.Fatalf("body should be restored, got %s", restored)
	}
}

func TestKeyByIPAndJSONFieldFallsBackToIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	keyFunc := KeyByIPAndJSONField("email")

	cases := []string{
		"",
		"not-json",
		`{"password":"x"}`,
		`{"email":42}`,
		`{"email":"   "}`,
	}
	for _, body := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodPost, "/auth/signin", bytes.NewBufferString(body))
		if key := keyFunc(c); key != c.ClientIP() {
			t.Fatalf("body %q should fall back to ip, got %s", body, key)
		}
	}
}

func TestToInt64(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int64
		ok   bool
	}{
		{int64(7), 7, true},
		{int(7), 7, true},
		{int32(7), 7, true},
		{uint8(7), 7, true},
		{float64(7.9), 7, true},
		{"7", 0, false},
		{nil, 0, false},
	}
	for _, tc := range cases {
		got, ok := toInt64(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("toInt64(%v) = (%d, %v), want (%d, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
