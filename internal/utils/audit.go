package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditLog represents an audit log entry for one panel mutation
type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActorID    string             `bson:"actor_id" json:"actor_id"`
	ActorCPF   string             `bson:"actor_cpf" json:"actor_cpf"`
	Action     string             `bson:"action" json:"action"`
	Resource   string             `bson:"resource" json:"resource"`
	ResourceID string             `bson:"resource_id,omitempty" json:"resource_id,omitempty"`
	Status     string             `bson:"status" json:"status"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	Payload    interface{}        `bson:"payload,omitempty" json:"payload,omitempty"`
	IPAddress  string             `bson:"ip_address,omitempty" json:"ip_address,omitempty"`
	UserAgent  string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	RequestID  string             `bson:"request_id,omitempty" json:"request_id,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// Audit constants
const (
	AuditActionCreate         = "CREATE"
	AuditActionUpdate         = "UPDATE"
	AuditActionDelete         = "DELETE"
	AuditActionLogin          = "LOGIN"
	AuditActionLogout         = "LOGOUT"
	AuditActionChangePassword = "CHANGE_PASSWORD"

	AuditResourceSession      = "session"
	AuditResourceProducer     = "producer"
	AuditResourceFamilyMember = "family_member"
	AuditResourceProperty     = "property"
	AuditResourcePropertyItem = "property_item"
	AuditResourceDomain       = "domain"
	AuditResourceAdmin        = "admin"

	AuditStatusSuccess = "success"
	AuditStatusFailure = "failure"
)

// AuditContext contains context information for audit logging
type AuditContext struct {
	ActorID   string
	ActorCPF  string
	IPAddress string
	UserAgent string
	RequestID string
}

// GetAuditContextFromGin extracts audit context from a gin request
func GetAuditContextFromGin(c *gin.Context, actorID, actorCPF string) AuditContext {
	requestID := c.GetString("request_id")
	if requestID == "" {
		requestID = c.GetHeader("X-Request-ID")
	}
	return AuditContext{
		ActorID:   actorID,
		ActorCPF:  actorCPF,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: requestID,
	}
}

// AuditStore persists batches of audit entries
type AuditStore interface {
	InsertBatch(ctx context.Context, batch []AuditLog) error
}

// MongoAuditStore writes audit entries to a MongoDB collection
type MongoAuditStore struct {
	collection *mongo.Collection
}

// NewMongoAuditStore creates a store over the given collection
func NewMongoAuditStore(collection *mongo.Collection) *MongoAuditStore {
	return &MongoAuditStore{collection: collection}
}

// InsertBatch bulk-inserts the batch, unordered
func (s *MongoAuditStore) InsertBatch(ctx context.Context, batch []AuditLog) error {
	operations := make([]mongo.WriteModel, 0, len(batch))
	for _, entry := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(entry))
	}

	_, err := s.collection.BulkWrite(ctx, operations, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to insert audit batch: %w", err)
	}
	return nil
}

// AuditWorker writes audit entries asynchronously in batches. A nil worker
// discards everything, which is how a panel without MongoDB runs.
type AuditWorker struct {
	store      AuditStore
	auditChan  chan AuditLog
	batchSize  int
	flushEvery time.Duration
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// NewAuditWorker starts workers goroutines draining a buffer of bufferSize
func NewAuditWorker(store AuditStore, workers, bufferSize int) *AuditWorker {
	if workers < 1 {
		workers = 1
	}
	aw := &AuditWorker{
		store:      store,
		auditChan:  make(chan AuditLog, bufferSize),
		batchSize:  50,
		flushEvery: 200 * time.Millisecond,
	}

	aw.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", workers),
		zap.Int("buffer_size", bufferSize))
	return aw
}

// Log records the outcome of one mutation. It never blocks the request: a
// full buffer drops the entry with a warning.
func (aw *AuditWorker) Log(auditCtx AuditContext, action, resource, resourceID string, payload interface{}, opErr error) {
	if aw == nil {
		return
	}

	entry := AuditLog{
		ActorID:    auditCtx.ActorID,
		ActorCPF:   observability.MaskCPF(auditCtx.ActorCPF),
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Status:     AuditStatusSuccess,
		Payload:    SanitizeAuditData(payload),
		IPAddress:  auditCtx.IPAddress,
		UserAgent:  auditCtx.UserAgent,
		RequestID:  auditCtx.RequestID,
		Timestamp:  time.Now().UTC(),
	}
	if opErr != nil {
		entry.Status = AuditStatusFailure
		entry.Error = opErr.Error()
	}

	select {
	case aw.auditChan <- entry:
		observability.AuditEvents.WithLabelValues("queued").Inc()
	default:
		observability.AuditEvents.WithLabelValues("dropped").Inc()
		logging.Logger.Warn("audit buffer full, dropping entry",
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("resource_id", resourceID))
	}
}

func (aw *AuditWorker) processAuditLogs() {
	ticker := time.NewTicker(aw.flushEvery)
	defer ticker.Stop()

	batch := make([]AuditLog, 0, aw.batchSize)
	for {
		select {
		case entry, ok := <-aw.auditChan:
			if !ok {
				aw.flushBatch(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) >= aw.batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (aw *AuditWorker) flushBatch(batch []AuditLog) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := aw.store.InsertBatch(ctx, append([]AuditLog(nil), batch...)); err != nil {
		observability.AuditEvents.WithLabelValues("failed").Add(float64(len(batch)))
		logging.Logger.Error("failed to write audit batch",
			zap.Error(err),
			zap.Int("batch_size", len(batch)))
		return
	}
	observability.AuditEvents.WithLabelValues("written").Add(float64(len(batch)))
}

// Stop drains the buffer and waits for the workers to flush
func (aw *AuditWorker) Stop() {
	if aw == nil {
		return
	}
	aw.stopOnce.Do(func() {
		close(aw.auditChan)
		aw.wg.Wait()
	})
}

// SanitizeAuditData returns a JSON-shaped copy of data with secrets redacted
// and personal fields masked
func SanitizeAuditData(data interface{}) interface{} {
	if data == nil {
		return nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}

	var sanitized interface{}
	if err := json.Unmarshal(raw, &sanitized); err != nil {
		return nil
	}
	return sanitizeValue(sanitized)
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		masked := observability.MaskSensitiveData(val)
		for k, nested := range masked {
			masked[k] = sanitizeValue(nested)
		}
		return masked
	case []interface{}:
		for i, item := range val {
			val[i] = sanitizeValue(item)
		}
		return val
	default:
		return v
	}
}
