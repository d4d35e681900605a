// Package serverbound defines the packets a client sends to a server during
// play.
package serverbound

import (
	"github.com/Versifine/mcwire/internal/packet"
)

// Listener receives decoded serverbound packets, one method per packet kind.
type Listener interface {
	HandleChat(p Chat)
	HandleCommandSuggestion(p CommandSuggestion)
	HandleInteract(p Interact)
	HandleKeepAlive(p KeepAlive)
	HandleMovePlayer(p MovePlayer)
	HandlePlayerAction(p PlayerAction)
	HandleSignUpdate(p SignUpdate)
}

type Packet = packet.Packet[Listener]

func typ(name string) packet.Type {
	return packet.Type{Flow: packet.Serverbound, Name: name}
}

var (
	TypeChat                 = typ("chat")
	TypeCommandSuggestion    = typ("command_suggestion")
	TypeInteract             = typ("interact")
	TypeKeepAlive            = typ("keep_alive")
	TypeMovePlayerPos        = typ("move_player_pos")
	TypeMovePlayerPosRot     = typ("move_player_pos_rot")
	TypeMovePlayerRot        = typ("move_player_rot")
	TypeMovePlayerStatusOnly = typ("move_player_status_only")
	TypePlayerAction         = typ("player_action")
	TypeSignUpdate           = typ("sign_update")
)

// Protocol builds the serverbound id table.
func Protocol() *packet.Protocol[Listener] {
	p := packet.NewProtocol[Listener](packet.Serverbound)
	packet.Add(p, TypeChat, chatCodec)
	packet.Add(p, TypeCommandSuggestion, commandSuggestionCodec)
	packet.Add(p, TypeInteract, interactCodec)
	packet.Add(p, TypeKeepAlive, keepAliveCodec)
	packet.Add(p, TypeMovePlayerPos, movePlayerPosCodec)
	packet.Add(p, TypeMovePlayerPosRot, movePlayerPosRotCodec)
	packet.Add(p, TypeMovePlayerRot, movePlayerRotCodec)
	packet.Add(p, TypeMovePlayerStatusOnly, movePlayerStatusOnlyCodec)
	packet.Add(p, TypePlayerAction, playerActionCodec)
	packet.Add(p, TypeSignUpdate, signUpdateCodec)
	return p
}
