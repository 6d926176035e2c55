package websocket

import (
	"fmt"
	"strconv"

	"github.com/lorrc/erp-backend/internal/core/domain"
)

// RoomKind is the closed enumeration of addressable room scopes.
type RoomKind string

const (
	RoomUser   RoomKind = "user"
	RoomOrg    RoomKind = "org"
	RoomRole   RoomKind = "role"
	RoomModule RoomKind = "module"
	RoomGlobal RoomKind = "global"
)

// Valid reports whether the kind is part of the enumeration.
func (k RoomKind) Valid() bool {
	switch k {
	case RoomUser, RoomOrg, RoomRole, RoomModule, RoomGlobal:
		return true
	}
	return false
}

// ParseRoomKind validates a client-supplied room kind string.
func ParseRoomKind(s string) (RoomKind, error) {
	kind := RoomKind(s)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown room kind %q", s)
	}
	return kind, nil
}

// Room is a named multicast group identified by a (kind, id) pair. It has
// no existence beyond the set of connections currently joined to it.
type Room struct {
	Kind RoomKind
	ID   string
}

// Name formats the room's addressable name. The mapping is deterministic
// and injective: kinds never contain a colon, so the prefix before the
// first ":" always identifies the kind, and equal names imply equal ids.
// The global room is the single fixed name "global".
func (r Room) Name() string {
	if r.Kind == RoomGlobal {
		return "global"
	}
	return string(r.Kind) + ":" + r.ID
}

// UserRoom addresses all connections belonging to one user.
func UserRoom(userID int64) Room {
	return Room{Kind: RoomUser, ID: strconv.FormatInt(userID, 10)}
}

// OrgRoom addresses all connections belonging to one organization.
func OrgRoom(orgID int64) Room {
	return Room{Kind: RoomOrg, ID: strconv.FormatInt(orgID, 10)}
}

// RoleRoom addresses connections that explicitly joined a role scope.
func RoleRoom(role string) Room {
	return Room{Kind: RoomRole, ID: role}
}

// ModuleRoom addresses listeners interested in every event of one ERP
// module, regardless of event type.
func ModuleRoom(category domain.EventCategory) Room {
	return Room{Kind: RoomModule, ID: string(category)}
}

// GlobalRoom addresses every registered connection.
func GlobalRoom() Room {
	return Room{Kind: RoomGlobal}
}
