package mock

import (
	"fmt"
	"time"

	"github.com/studiowebux/usercrud/internal/types"
)

// Config represents the mock directory configuration
type Config struct {
	Port    int                `json:"port" yaml:"port"`                     // Server port (default: 8080)
	Host    string             `json:"host" yaml:"host"`                     // Server host (default: localhost)
	Path    string             `json:"path,omitempty" yaml:"path,omitempty"` // Users endpoint (default: /users)
	Status  int                `json:"status,omitempty" yaml:"status,omitempty"`
	Delay   int                `json:"delay,omitempty" yaml:"delay,omitempty"` // Response delay in milliseconds
	Logging bool               `json:"logging" yaml:"logging"`                 // Enable request logging
	Users   []types.RemoteUser `json:"users" yaml:"users"`
}

// RequestLog represents a logged request
type RequestLog struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Status    int           `json:"status"`
	Duration  time.Duration `json:"duration"`
}

// String formats the entry as one access log line
func (l RequestLog) String() string {
	return fmt.Sprintf("%s %s %s %d %s",
		l.Timestamp.Format("15:04:05"), l.Method, l.Path, l.Status, l.Duration.Round(time.Microsecond))
}

// usersPayload mirrors the directory list response
type usersPayload struct {
	Users []types.RemoteUser `json:"users"`
	Total int                `json:"total"`
	Skip  int                `json:"skip"`
	Limit int                `json:"limit"`
}
