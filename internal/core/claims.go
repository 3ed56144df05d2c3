package core

import (
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Principal 從 claims 還原呼叫端身份；Subject 必須是 ObjectID hex
func (c *Claims) Principal() (*Principal, error) {
	id, err := primitive.ObjectIDFromHex(c.Subject)
	if err != nil {
		return nil, err
	}
	return &Principal{ID: id, Role: c.Role}, nil
}

// Principal 經驗證後的呼叫端身份，放入 gin.Context 供下游使用
type Principal struct {
	ID   primitive.ObjectID
	Role Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

const (
	// gin.Context keys
	ContextPrincipalKey = "principal"
	ContextTraceKey     = "traceContext"
)
