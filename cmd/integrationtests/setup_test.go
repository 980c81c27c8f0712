package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	auction "auction-tracker/internal/auctionService"
	"auction-tracker/internal/notifier"
	"auction-tracker/internal/repository"
	"auction-tracker/internal/server"

	"github.com/gin-gonic/gin"
)

// testClock is a manually advanced clock shared by the router and the test
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// testEnv bundles the wired application for one test
type testEnv struct {
	router   *gin.Engine
	clock    *testClock
	manager  *auction.AuctionManager
	notifier *notifier.EmailNotifier
}

// SetupTestEnv initializes the router with an in-memory repository and a test-mode notifier.
func SetupTestEnv(t *testing.T, start time.Time) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	n, err := notifier.NewEmailNotifier(notifier.Config{Mode: notifier.ModeTest})
	if err != nil {
		t.Fatalf("failed to create notifier: %v", err)
	}
	clock := &testClock{now: start}
	manager := auction.NewAuctionManager(repository.NewMemoryRepo(), n)
	return &testEnv{
		router:   server.SetupRouter(manager, n, clock.Now),
		clock:    clock,
		manager:  manager,
		notifier: n,
	}
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// data extracts the envelope's data object
func data(resp map[string]any) map[string]any {
	d, _ := resp["data"].(map[string]any)
	return d
}
