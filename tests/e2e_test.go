package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite runs against a live server (API + database). Point
// E2E_BASE_URL at it, e.g. http://localhost:8080.
type E2ETestSuite struct {
	suite.Suite
	baseURL    string
	ownerEmail string
	ownerToken string
	otherToken string

	createdProjectID int
	createdTaskID    int
}

func TestE2ETestSuite(t *testing.T) {
	if os.Getenv("E2E_BASE_URL") == "" {
		t.Skip("E2E_BASE_URL not set; skipping e2e tests")
	}
	suite.Run(t, new(E2ETestSuite))
}

func (s *E2ETestSuite) SetupSuite() {
	s.baseURL = os.Getenv("E2E_BASE_URL")
}

func (s *E2ETestSuite) request(method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		buf = bytes.NewBuffer(b)
	}
	req, err := http.NewRequest(method, s.baseURL+path, buf)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func (s *E2ETestSuite) dialWS(token string) *gws.Conn {
	wsURL := "ws" + strings.TrimPrefix(s.baseURL, "http") + "/api/ws?token=" + token
	conn, _, err := gws.DefaultDialer.Dial(wsURL, nil)
	s.Require().NoError(err)
	return conn
}

func (s *E2ETestSuite) readEvent(conn *gws.Conn) (string, map[string]interface{}) {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, msg, err := conn.ReadMessage()
	s.Require().NoError(err)
	var frame struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	s.Require().NoError(json.Unmarshal(msg, &frame))
	return frame.Event, frame.Payload
}

func (s *E2ETestSuite) Test01_RegisterAndLogin() {
	stamp := time.Now().UnixNano()
	ownerEmail := fmt.Sprintf("owner%d@example.com", stamp)
	s.ownerEmail = ownerEmail
	otherEmail := fmt.Sprintf("other%d@example.com", stamp)

	resp, _ := s.request("POST", "/api/auth/register", "", map[string]string{
		"email": ownerEmail, "name": "Owner", "password": "ownerpass1",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp, _ = s.request("POST", "/api/auth/register", "", map[string]string{
		"email": otherEmail, "name": "Other", "password": "otherpass1",
	})
	s.Equal(http.StatusCreated, resp.StatusCode)

	resp, body := s.request("POST", "/api/auth/login", "", map[string]string{
		"email": ownerEmail, "password": "ownerpass1",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.ownerToken, _ = body["token"].(string)
	s.Require().NotEmpty(s.ownerToken)

	resp, body = s.request("POST", "/api/auth/login", "", map[string]string{
		"email": otherEmail, "password": "otherpass1",
	})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.otherToken, _ = body["token"].(string)
	s.Require().NotEmpty(s.otherToken)
}

func (s *E2ETestSuite) Test02_RegisterDuplicateEmailConflicts() {
	resp, _ := s.request("POST", "/api/auth/register", "", map[string]string{
		"email": s.ownerEmail, "name": "Owner Again", "password": "ownerpass1",
	})
	s.Equal(http.StatusConflict, resp.StatusCode)

	resp, _ = s.request("GET", "/api/auth/me", "", nil)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

// A project create must reach every open connection of the acting user with
// the same payload the HTTP response carried, and no one else's connection.
func (s *E2ETestSuite) Test03_ProjectCreateFansOutToBothConnections() {
	ownerConnA := s.dialWS(s.ownerToken)
	defer ownerConnA.Close()
	ownerConnB := s.dialWS(s.ownerToken)
	defer ownerConnB.Close()
	otherConn := s.dialWS(s.otherToken)
	defer otherConn.Close()

	resp, created := s.request("POST", "/api/projects", s.ownerToken, map[string]string{
		"name": "Ravn", "description": "e2e", "color": "#336699",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.createdProjectID = int(created["id"].(float64))

	for _, conn := range []*gws.Conn{ownerConnA, ownerConnB} {
		event, payload := s.readEvent(conn)
		s.Equal("project:created", event)
		s.Equal(created["id"], payload["id"])
		s.Equal(created["name"], payload["name"])
	}

	// The other user's connection stays silent.
	s.Require().NoError(otherConn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)))
	_, _, err := otherConn.ReadMessage()
	s.Error(err)
}

func (s *E2ETestSuite) Test04_TaskLifecycleEvents() {
	conn := s.dialWS(s.ownerToken)
	defer conn.Close()

	resp, created := s.request("POST", "/api/tasks", s.ownerToken, map[string]interface{}{
		"title": "write tests", "priority": "high", "project_id": s.createdProjectID,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.createdTaskID = int(created["id"].(float64))
	s.Equal("pending", created["status"])

	event, payload := s.readEvent(conn)
	s.Equal("task:created", event)
	s.Equal(created["id"], payload["id"])

	resp, updated := s.request("PUT", fmt.Sprintf("/api/tasks/%d", s.createdTaskID), s.ownerToken,
		map[string]interface{}{"title": "write tests", "status": "done", "priority": "high"})
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("done", updated["status"])

	event, payload = s.readEvent(conn)
	s.Equal("task:updated", event)
	s.Equal("done", payload["status"])

	resp, _ = s.request("DELETE", fmt.Sprintf("/api/tasks/%d", s.createdTaskID), s.ownerToken, nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	event, payload = s.readEvent(conn)
	s.Equal("task:deleted", event)
	s.Equal(float64(s.createdTaskID), payload["id"])
	s.Len(payload, 1)
}

// Mutating someone else's row is a collapsed 404 and publishes nothing.
func (s *E2ETestSuite) Test05_CrossUserMutationIsNotFoundAndSilent() {
	ownerConn := s.dialWS(s.ownerToken)
	defer ownerConn.Close()
	otherConn := s.dialWS(s.otherToken)
	defer otherConn.Close()

	resp, body := s.request("PUT", fmt.Sprintf("/api/projects/%d", s.createdProjectID), s.otherToken,
		map[string]string{"name": "hijack"})
	s.Equal(http.StatusNotFound, resp.StatusCode)
	if errObj, ok := body["error"].(map[string]interface{}); ok {
		s.Equal("NOT_FOUND", errObj["code"])
	}

	for _, conn := range []*gws.Conn{ownerConn, otherConn} {
		s.Require().NoError(conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)))
		_, _, err := conn.ReadMessage()
		s.Error(err)
	}
}

func (s *E2ETestSuite) Test06_WSHandshakeRejectsBadCredentials() {
	wsURL := "ws" + strings.TrimPrefix(s.baseURL, "http") + "/api/ws"

	_, resp, err := gws.DefaultDialer.Dial(wsURL, nil)
	s.ErrorIs(err, gws.ErrBadHandshake)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = gws.DefaultDialer.Dial(wsURL+"?token=garbage", nil)
	s.ErrorIs(err, gws.ErrBadHandshake)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *E2ETestSuite) Test07_PlainCRUDResourcesEmitNothing() {
	conn := s.dialWS(s.ownerToken)
	defer conn.Close()

	resp, doc := s.request("POST", "/api/documents", s.ownerToken, map[string]string{
		"title": "notes",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("General", doc["folder"])

	resp, member := s.request("POST", "/api/team", s.ownerToken, map[string]string{
		"name": "Kari", "email": "kari@example.com", "role": "designer",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	s.Equal("👤", member["avatar"])

	// Documents and team members are outside the relay: nothing arrives.
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond)))
	_, _, err := conn.ReadMessage()
	s.Error(err)
}
