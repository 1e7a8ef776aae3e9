package tracking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matst80/slask-property/pkg/types"
)

func TestClientIp(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	if ip := clientIp(r); ip != "10.0.0.1:1234" {
		t.Errorf("Expected remote address, got %s", ip)
	}
	r.Header.Set("X-Forwarded-For", "192.168.1.2")
	if ip := clientIp(r); ip != "192.168.1.2" {
		t.Errorf("Expected forwarded address, got %s", ip)
	}
	r.Header.Set("X-Real-Ip", "172.16.0.3")
	if ip := clientIp(r); ip != "172.16.0.3" {
		t.Errorf("Expected real ip, got %s", ip)
	}
}

func TestSelectEventJson(t *testing.T) {
	data, err := json.Marshal(&SelectEvent{
		BaseEvent:  newBaseEvent("s1", EventSelect),
		PropertyId: "p2",
		Source:     types.SelectedFromMap,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	s := string(data)
	for _, part := range []string{`"session_id":"s1"`, `"event":2`, `"property":"p2"`, `"source":"map"`} {
		if !strings.Contains(s, part) {
			t.Errorf("Expected %s in %s", part, s)
		}
	}
}
