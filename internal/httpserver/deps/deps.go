package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/index"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	"github.com/MrSnakeDoc/qrhist/internal/settings"
	redisstore "github.com/MrSnakeDoc/qrhist/internal/store/redis"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time               // for testing, defaults to time.Now
	AllowedHosts  []string                       // Host headers allowed to access admin routes
	AllowedCIDRS  []string                       // IPs allowed to access admin routes
	TrustProxy    bool                           // true if running behind a trusted reverse proxy (e.g., cloudflared)
	ImportFile    string                         // Path to the history import file (empty = disabled)
	Store         *redisstore.Store              // Redis mirror, nil when unavailable
	MemoryIndex   *index.MemoryIndex             // In-memory history index
	Settings      *settings.Manager              // Shared user preferences
	ReloadTrigger chan struct{}                  // Channel to trigger manual import reload (nil if import disabled)
	WriteLimiter  func(http.Handler) http.Handler // Per-IP limiter shared by all write routes
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
