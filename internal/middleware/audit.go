package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

const auditWorkerKey = "audit.worker"

// AuditTrail makes the audit worker available to handlers. A nil worker
// turns Audit into a no-op.
func AuditTrail(worker *utils.AuditWorker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if worker != nil {
			c.Set(auditWorkerKey, worker)
		}
		c.Next()
	}
}

// Audit records the outcome of a mutation performed on behalf of the
// current session
func Audit(c *gin.Context, action, resource, resourceID string, payload interface{}, opErr error) {
	v, ok := c.Get(auditWorkerKey)
	if !ok {
		return
	}
	worker, ok := v.(*utils.AuditWorker)
	if !ok {
		return
	}

	var actorID, actorCPF string
	if user := session.FromContext(c).User(); user != nil {
		actorID = user.UserID
		actorCPF = user.CPF
	}
	worker.Log(utils.GetAuditContextFromGin(c, actorID, actorCPF), action, resource, resourceID, payload, opErr)
}
