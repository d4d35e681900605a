// Package clientbound defines the packets a server sends to a client during
// play, and the id table that frames them.
package clientbound

import (
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/registry"
)

// Listener receives decoded clientbound packets, one method per packet kind.
type Listener interface {
	HandleAddEntity(p AddEntity)
	HandleBlockUpdate(p BlockUpdate)
	HandleBossEvent(p BossEvent)
	HandleCommandSuggestions(p CommandSuggestions)
	HandleContainerSetSlot(p ContainerSetSlot)
	HandleKeepAlive(p KeepAlive)
	HandleLightUpdate(p LightUpdate)
	HandleMoveEntity(p MoveEntity)
	HandleRemoveEntities(p RemoveEntities)
	HandleSetTime(p SetTime)
	HandleSound(p Sound)
	HandleSystemChat(p SystemChat)
	HandleTeleportEntity(p TeleportEntity)
}

type Packet = packet.Packet[Listener]

func typ(name string) packet.Type {
	return packet.Type{Flow: packet.Clientbound, Name: name}
}

var (
	TypeAddEntity          = typ("add_entity")
	TypeBlockUpdate        = typ("block_update")
	TypeBossEvent          = typ("boss_event")
	TypeCommandSuggestions = typ("command_suggestions")
	TypeContainerSetSlot   = typ("container_set_slot")
	TypeKeepAlive          = typ("keep_alive")
	TypeLightUpdate        = typ("light_update")
	TypeMoveEntityPos      = typ("move_entity_pos")
	TypeMoveEntityPosRot   = typ("move_entity_pos_rot")
	TypeMoveEntityRot      = typ("move_entity_rot")
	TypeRemoveEntities     = typ("remove_entities")
	TypeSetTime            = typ("set_time")
	TypeSound              = typ("sound")
	TypeSystemChat         = typ("system_chat")
	TypeTeleportEntity     = typ("teleport_entity")
)

// Protocol builds the clientbound id table. Registry-backed fields resolve
// against set, which both endpoints must share.
func Protocol(set *registry.Set) *packet.Protocol[Listener] {
	p := packet.NewProtocol[Listener](packet.Clientbound)
	packet.Add(p, TypeAddEntity, addEntityCodec(set.EntityTypes))
	packet.Add(p, TypeBlockUpdate, blockUpdateCodec(set.Blocks))
	packet.Add(p, TypeBossEvent, bossEventCodec)
	packet.Add(p, TypeCommandSuggestions, commandSuggestionsCodec)
	packet.Add(p, TypeContainerSetSlot, containerSetSlotCodec(set.Items))
	packet.Add(p, TypeKeepAlive, keepAliveCodec)
	packet.Add(p, TypeLightUpdate, lightUpdateCodec)
	packet.Add(p, TypeMoveEntityPos, moveEntityPosCodec)
	packet.Add(p, TypeMoveEntityPosRot, moveEntityPosRotCodec)
	packet.Add(p, TypeMoveEntityRot, moveEntityRotCodec)
	packet.Add(p, TypeRemoveEntities, removeEntitiesCodec)
	packet.Add(p, TypeSetTime, setTimeCodec)
	packet.Add(p, TypeSound, soundCodec(set.Sounds))
	packet.Add(p, TypeSystemChat, systemChatCodec)
	packet.Add(p, TypeTeleportEntity, teleportEntityCodec)
	return p
}
