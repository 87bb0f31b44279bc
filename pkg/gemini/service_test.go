package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateContent(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{
			name:   "first candidate text",
			status: http.StatusOK,
			body:   `{"candidates":[{"content":{"parts":[{"text":"{\"title\":\"Live\"}"}]}}]}`,
			want:   `{"title":"Live"}`,
		},
		{name: "no candidates", status: http.StatusOK, body: `{"candidates":[]}`, wantErr: true},
		{name: "quota", status: http.StatusTooManyRequests, body: `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, wantErr: true},
		{name: "garbage", status: http.StatusOK, body: `not json`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotKey, gotPrompt string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotKey = r.URL.Query().Get("key")
				var req struct {
					Contents []struct {
						Parts []struct {
							Text string `json:"text"`
						} `json:"parts"`
					} `json:"contents"`
				}
				_ = json.NewDecoder(r.Body).Decode(&req)
				if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
					gotPrompt = req.Contents[0].Parts[0].Text
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			svc := NewGeminiService("secret", "")
			svc.BaseURL = srv.URL

			got, err := svc.GenerateContent(context.Background(), "hello")
			if (err != nil) != tt.wantErr {
				t.Fatalf("GenerateContent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if tt.status == http.StatusTooManyRequests && !strings.Contains(err.Error(), "429") {
					t.Errorf("error %q does not carry status code", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("GenerateContent() = %q, want %q", got, tt.want)
			}
			if gotPath != "/models/"+DefaultModel+":generateContent" || gotKey != "secret" || gotPrompt != "hello" {
				t.Errorf("request path=%q key=%q prompt=%q", gotPath, gotKey, gotPrompt)
			}
		})
	}
}
