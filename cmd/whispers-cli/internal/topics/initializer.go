package topics

import (
	"github.com/nfrund/examwhispers/internal/topicmgr"

	// Events register their topics when their packages load.
	_ "github.com/nfrund/examwhispers/internal/authview"
	_ "github.com/nfrund/examwhispers/internal/identity"
	_ "github.com/nfrund/examwhispers/internal/study"
	_ "github.com/nfrund/examwhispers/internal/websocket"
)

// Catalogue returns the process-wide topic manager with every topic the
// server publishes on.
func Catalogue() *topicmgr.Manager {
	return topicmgr.Default()
}
