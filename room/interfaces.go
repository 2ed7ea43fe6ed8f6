package room

import (
	"github.com/tabuparty/gameserver/session"
)

// Broadcaster delivers one serialized snapshot to a set of sessions and
// reports the ones it could not reach, so the room can clean them up as
// disconnects. Defined here to break the import cycle between room and
// broadcast.
type Broadcaster interface {
	Broadcast(sessions []*session.Session, data []byte) (failed []*session.Session)
}
