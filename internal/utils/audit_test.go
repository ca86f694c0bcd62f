package utils

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAuditStore struct {
	mu      sync.Mutex
	entries []AuditLog
	err     error
}

func (s *recordingAuditStore) InsertBatch(_ context.Context, batch []AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, batch...)
	return s.err
}

func (s *recordingAuditStore) all() []AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]AuditLog(nil), s.entries...)
}

func TestAuditWorker_WritesEntriesOnStop(t *testing.T) {
	store := &recordingAuditStore{}
	worker := NewAuditWorker(store, 2, 10)

	auditCtx := AuditContext{ActorID: "7", ActorCPF: "52998224725", RequestID: "req-1"}
	worker.Log(auditCtx, AuditActionCreate, AuditResourceProducer, "15",
		map[string]interface{}{"name": "Raimunda", "cpf": "12345678909"}, nil)
	worker.Log(auditCtx, AuditActionDelete, AuditResourceFamilyMember, "2", nil, errors.New("boom"))

	worker.Stop()

	entries := store.all()
	require.Len(t, entries, 2)

	byAction := map[string]AuditLog{}
	for _, e := range entries {
		byAction[e.Action] = e
	}

	created := byAction[AuditActionCreate]
	assert.Equal(t, AuditStatusSuccess, created.Status)
	assert.Equal(t, "529.***.247-**", created.ActorCPF)
	assert.Equal(t, "req-1", created.RequestID)
	payload, ok := created.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "123.***.789-**", payload["cpf"])
	assert.Equal(t, "Raimunda", payload["name"])

	deleted := byAction[AuditActionDelete]
	assert.Equal(t, AuditStatusFailure, deleted.Status)
	assert.Equal(t, "boom", deleted.Error)
}

func TestAuditWorker_DropsWhenBufferFull(t *testing.T) {
	worker := &AuditWorker{auditChan: make(chan AuditLog, 1)}

	worker.Log(AuditContext{}, AuditActionUpdate, AuditResourceDomain, "1", nil, nil)
	worker.Log(AuditContext{}, AuditActionUpdate, AuditResourceDomain, "2", nil, nil)

	assert.Len(t, worker.auditChan, 1)
}

func TestAuditWorker_NilIsNoop(t *testing.T) {
	var worker *AuditWorker
	worker.Log(AuditContext{}, AuditActionLogin, AuditResourceSession, "", nil, nil)
	worker.Stop()
}

func TestAuditWorker_StopTwice(t *testing.T) {
	worker := NewAuditWorker(&recordingAuditStore{}, 1, 1)
	worker.Stop()
	worker.Stop()
}

func TestSanitizeAuditData(t *testing.T) {
	type body struct {
		Name        string `json:"name"`
		NewPassword string `json:"newPassword"`
		Members     []map[string]string
	}

	got := SanitizeAuditData(body{
		Name:        "Admin",
		NewPassword: "segredo123",
		Members:     []map[string]string{{"contact": "88999998888", "name": "Ana"}},
	})

	m, ok := got.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Admin", m["name"])
	assert.Equal(t, "********", m["newPassword"])

	members := m["Members"].([]interface{})
	first := members[0].(map[string]interface{})
	assert.Equal(t, "********", first["contact"])
	assert.Equal(t, "Ana", first["name"])

	assert.Nil(t, SanitizeAuditData(nil))
}

func TestGetAuditContextFromGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/dashboard/produtores/novo", nil)
	c.Request.Header.Set("User-Agent", "Mozilla/5.0")
	c.Request.Header.Set("X-Request-ID", "abc")

	auditCtx := GetAuditContextFromGin(c, "7", "52998224725")

	assert.Equal(t, "7", auditCtx.ActorID)
	assert.Equal(t, "52998224725", auditCtx.ActorCPF)
	assert.Equal(t, "Mozilla/5.0", auditCtx.UserAgent)
	assert.Equal(t, "abc", auditCtx.RequestID)
}
