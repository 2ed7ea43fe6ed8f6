// broadcast/broadcast.go
package broadcast

import (
	"github.com/tabuparty/gameserver/logger"
	"github.com/tabuparty/gameserver/session"
)

// RoomBroadcaster fans one serialized snapshot out to a room's sessions
// in join order. Delivery is best-effort: a failed send never blocks or
// fails delivery to the rest. Dead sessions are handed back to the
// caller, which treats each as an implicit disconnect.
type RoomBroadcaster struct{}

func NewRoomBroadcaster() *RoomBroadcaster {
	return &RoomBroadcaster{}
}

func (b *RoomBroadcaster) Broadcast(sessions []*session.Session, data []byte) []*session.Session {
	var failed []*session.Session
	for _, s := range sessions {
		if err := s.Send(data); err != nil {
			logger.Log.Warnf("Broadcast to session %s failed: %v", s.GetID(), err)
			failed = append(failed, s)
		}
	}
	return failed
}
