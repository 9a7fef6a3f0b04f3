package response

import "testing"

func TestParseBasicResponse(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello")
	resp, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if resp.StatusText != "OK" {
		t.Fatalf("StatusText = %q, want OK", resp.StatusText)
	}
	if string(resp.GetBody().Raw) != "hello" {
		t.Fatalf("body = %q, want hello", resp.GetBody().Raw)
	}
	if !resp.IsSuccessful() {
		t.Fatalf("IsSuccessful() = false, want true")
	}
}

func TestParseDefaultsStatusTextWhenMissing(t *testing.T) {
	raw := []byte("HTTP/1.1 404\r\n\r\n")
	resp, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusText != "Not Found" {
		t.Fatalf("StatusText = %q, want Not Found", resp.StatusText)
	}
}

func TestParseInvalidStatusCode(t *testing.T) {
	raw := []byte("HTTP/1.1 notanumber OK\r\n\r\n")
	if _, err := Parse(raw); err == nil {
		t.Fatalf("expected an error for a non-numeric status code")
	}
}

func TestBuildRoundTrip(t *testing.T) {
	raw := []byte("HTTP/1.1 200 OK\r\nContent-Length: 4\r\n\r\ndata")
	resp, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rebuilt := resp.Build()
	if string(rebuilt) != string(raw) {
		t.Fatalf("Build() = %q, want %q", rebuilt, raw)
	}
}

func TestRedirectLocation(t *testing.T) {
	raw := []byte("HTTP/1.1 302 Found\r\nLocation: https://example.com/new\r\n\r\n")
	resp, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsRedirect() {
		t.Fatalf("IsRedirect() = false, want true")
	}
	if got := resp.GetRedirectLocation(); got != "https://example.com/new" {
		t.Fatalf("GetRedirectLocation() = %q, want https://example.com/new", got)
	}
}
