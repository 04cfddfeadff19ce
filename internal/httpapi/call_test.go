package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/asdp-project/asdp-cli/internal/model"
	"github.com/google/go-cmp/cmp"
)

func Test_joinURLPath(t *testing.T) {
	tests := []struct {
		name         string
		urlPath      string
		resourcePath string
		want         string
	}{{
		name:         "whole path inside urlPath and empty resourcePath",
		urlPath:      "/upload",
		resourcePath: "",
		want:         "/upload",
	}, {
		name:         "empty urlPath and slash-prefixed resourcePath",
		urlPath:      "",
		resourcePath: "/clean",
		want:         "/clean",
	}, {
		name:         "slash urlPath and slash-prefixed resourcePath",
		urlPath:      "/",
		resourcePath: "/clean",
		want:         "/clean",
	}, {
		name:         "empty urlPath and empty resourcePath",
		urlPath:      "",
		resourcePath: "",
		want:         "/",
	}, {
		name:         "non-slash-terminated urlPath and slash-prefixed resourcePath",
		urlPath:      "/api",
		resourcePath: "/report",
		want:         "/api/report",
	}, {
		name:         "slash-terminated urlPath and slash-prefixed resourcePath",
		urlPath:      "/api/",
		resourcePath: "/report",
		want:         "/api/report",
	}, {
		name:         "slash-terminated urlPath and non-slash-prefixed resourcePath",
		urlPath:      "/api",
		resourcePath: "export",
		want:         "/api/export",
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := joinURLPath(tt.urlPath, tt.resourcePath)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func Test_newRequest(t *testing.T) {
	t.Run("with invalid base URL", func(t *testing.T) {
		endpoint := &Endpoint{BaseURL: "\t", Logger: model.DiscardLogger}
		desc := &Descriptor{Method: http.MethodGet, URLPath: "/"}
		req, err := newRequest(context.Background(), endpoint, desc)
		if err == nil || req != nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("with invalid method", func(t *testing.T) {
		endpoint := &Endpoint{BaseURL: "https://example.com", Logger: model.DiscardLogger}
		desc := &Descriptor{Method: "\t", URLPath: "/"}
		req, err := newRequest(context.Background(), endpoint, desc)
		if err == nil || req != nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("with all the headers set", func(t *testing.T) {
		endpoint := &Endpoint{
			Authorization: "Bearer xyz",
			BaseURL:       "https://example.com/api?foo=bar",
			Host:          "backend.example.com",
			Logger:        model.DiscardLogger,
			UserAgent:     "asdp/0.1.0",
		}
		desc := &Descriptor{
			Accept:      ApplicationJSON,
			ContentType: ApplicationJSON,
			LogBody:     true,
			Method:      http.MethodPost,
			RequestBody: []byte(`{}`),
			URLPath:     "/clean",
		}
		req, err := newRequest(context.Background(), endpoint, desc)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff("https://example.com/api/clean", req.URL.String()); diff != "" {
			t.Fatal(diff)
		}
		if req.Host != "backend.example.com" {
			t.Fatal("unexpected host", req.Host)
		}
		expect := map[string]string{
			"Accept":        ApplicationJSON,
			"Authorization": "Bearer xyz",
			"Content-Type":  ApplicationJSON,
			"User-Agent":    "asdp/0.1.0",
		}
		got := map[string]string{}
		for key := range expect {
			got[key] = req.Header.Get(key)
		}
		if diff := cmp.Diff(expect, got); diff != "" {
			t.Fatal(diff)
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			t.Fatal(err)
		}
		if string(body) != `{}` {
			t.Fatal("unexpected body", string(body))
		}
	})

	t.Run("without body", func(t *testing.T) {
		endpoint := &Endpoint{BaseURL: "https://example.com", Logger: model.DiscardLogger}
		desc := &Descriptor{Method: http.MethodGet, URLPath: "/"}
		req, err := newRequest(context.Background(), endpoint, desc)
		if err != nil {
			t.Fatal(err)
		}
		if req.Body != nil {
			t.Fatal("expected no body")
		}
		if req.Header.Get("Authorization") != "" {
			t.Fatal("expected no authorization")
		}
	})
}

func TestCall(t *testing.T) {
	type testcase struct {
		name       string
		status     int
		ctype      string
		body       string
		maxBody    int64
		wantErr    bool
		wantStatus int
		wantBody   string
	}
	tests := []testcase{{
		name:       "with 200 and JSON",
		status:     200,
		ctype:      ApplicationJSON,
		body:       `{"success":true}`,
		wantStatus: 200,
		wantBody:   `{"success":true}`,
	}, {
		name:       "with 201 and empty body",
		status:     201,
		wantStatus: 201,
		wantBody:   "",
	}, {
		name:    "with 300",
		status:  300,
		body:    "redirect",
		wantErr: true,
	}, {
		name:    "with 422",
		status:  422,
		body:    `{"detail":"bad config"}`,
		wantErr: true,
	}, {
		name:    "with 500",
		status:  500,
		body:    "Internal Server Error",
		wantErr: true,
	}, {
		name:    "with body exceeding the maximum size",
		status:  200,
		body:    "0123456789",
		maxBody: 4,
		wantErr: true,
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.ctype != "" {
					w.Header().Set("Content-Type", tt.ctype)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()
			endpoint := &Endpoint{
				BaseURL:    server.URL,
				HTTPClient: http.DefaultClient,
				Logger:     model.DiscardLogger,
			}
			desc := &Descriptor{Method: http.MethodGet, URLPath: "/", MaxBodySize: tt.maxBody}
			resp, err := Call(context.Background(), desc, endpoint)
			if tt.wantErr {
				if err == nil || resp != nil {
					t.Fatal("expected an error")
				}
				if tt.maxBody > 0 {
					if !errors.Is(err, ErrBodyTooLarge) {
						t.Fatal("unexpected error", err)
					}
					return
				}
				failure, found := AsErrHTTPRequestFailed(err)
				if !found {
					t.Fatal("expected ErrHTTPRequestFailed, got", err)
				}
				if failure.StatusCode != tt.status || string(failure.Body) != tt.body {
					t.Fatal("unexpected failure", failure.StatusCode, string(failure.Body))
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Fatal("unexpected status", resp.StatusCode)
			}
			if diff := cmp.Diff(tt.wantBody, string(resp.Body)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestCallWithTimeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(done)
	endpoint := &Endpoint{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
		Logger:     model.DiscardLogger,
	}
	desc := (&Descriptor{Method: http.MethodGet, URLPath: "/"}).WithTimeout(10 * time.Millisecond)
	_, err := Call(context.Background(), desc, endpoint)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected a deadline error, got", err)
	}
}

func TestNewPOSTJSONDescriptor(t *testing.T) {
	t.Run("with a serializable value", func(t *testing.T) {
		desc, err := NewPOSTJSONDescriptor("/clean", map[string]any{"columns": []string{"age"}})
		if err != nil {
			t.Fatal(err)
		}
		if desc.Method != http.MethodPost || desc.ContentType != ApplicationJSON || desc.Accept != "" {
			t.Fatal("unexpected descriptor", desc)
		}
		if string(desc.RequestBody) != `{"columns":["age"]}` {
			t.Fatal("unexpected body", string(desc.RequestBody))
		}
	})

	t.Run("with a non serializable value", func(t *testing.T) {
		desc, err := NewPOSTJSONDescriptor("/clean", make(chan int))
		if err == nil || desc != nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("Must panics on error", func(t *testing.T) {
		defer func() {
			if recover() == nil {
				t.Fatal("expected a panic")
			}
		}()
		MustNewPOSTJSONDescriptor("/clean", make(chan int))
	})
}

func TestNewPOSTMultipartFileDescriptor(t *testing.T) {
	desc, err := NewPOSTMultipartFileDescriptor("/upload", "file", "survey.csv", []byte("a,b\n1,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(400)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		w.Header().Set("Content-Type", ApplicationJSON)
		w.Write([]byte(`{"name":"` + header.Filename + `","size":` + strconv.Itoa(len(data)) + `}`))
	}))
	defer server.Close()
	endpoint := &Endpoint{
		BaseURL:    server.URL,
		HTTPClient: http.DefaultClient,
		Logger:     model.DiscardLogger,
	}
	var response struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	resp, err := Call(context.Background(), desc, endpoint)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(resp.Body, &response); err != nil {
		t.Fatal(err)
	}
	if response.Name != "survey.csv" || response.Size != 8 {
		t.Fatal("unexpected response", response)
	}
	if !strings.HasPrefix(desc.ContentType, "multipart/form-data; boundary=") {
		t.Fatal("unexpected content type", desc.ContentType)
	}
	if _, err := multipart.NewReader(strings.NewReader(string(desc.RequestBody)), boundaryOf(t, desc.ContentType)).NextPart(); err != nil {
		t.Fatal(err)
	}
}

func TestResponseContentType(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"application/pdf", ApplicationPDF},
		{"application/json; charset=utf-8", ApplicationJSON},
		{"", ""},
		{";;;", ""},
	}
	for _, tt := range tests {
		resp := &Response{Header: http.Header{}}
		resp.Header.Set("Content-Type", tt.header)
		if got := resp.ContentType(); got != tt.want {
			t.Fatal("for", tt.header, "expected", tt.want, "got", got)
		}
	}
}

func boundaryOf(t *testing.T, ctype string) string {
	_, boundary, found := strings.Cut(ctype, "boundary=")
	if !found {
		t.Fatal("no boundary in", ctype)
	}
	return boundary
}
