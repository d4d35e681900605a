package serverbound

import (
	"github.com/Versifine/mcwire/internal/codec"
	"github.com/Versifine/mcwire/internal/packet"
	"github.com/Versifine/mcwire/internal/protocol"
)

type KeepAlive struct {
	ID int64
}

func (KeepAlive) Type() packet.Type { return TypeKeepAlive }
func (p KeepAlive) Handle(l Listener) { l.HandleKeepAlive(p) }

var keepAliveCodec = codec.Composite1(
	codec.Get("id", codec.Long, func(p KeepAlive) int64 { return p.ID }),
	func(id int64) KeepAlive { return KeepAlive{ID: id} },
)

// Chat is a player chat message. Timestamp is in epoch milliseconds.
type Chat struct {
	Message   string
	Timestamp int64
	Salt      int64
}

func (Chat) Type() packet.Type { return TypeChat }
func (p Chat) Handle(l Listener) { l.HandleChat(p) }

var chatCodec = codec.Composite3(
	codec.Get("message", codec.String(protocol.MaxChatLength), func(p Chat) string { return p.Message }),
	codec.Get("timestamp", codec.Long, func(p Chat) int64 { return p.Timestamp }),
	codec.Get("salt", codec.Long, func(p Chat) int64 { return p.Salt }),
	func(msg string, ts, salt int64) Chat { return Chat{Message: msg, Timestamp: ts, Salt: salt} },
)

// CommandSuggestion asks for completions of a partial command. The response
// echoes ID.
type CommandSuggestion struct {
	ID      int32
	Command string
}

func (CommandSuggestion) Type() packet.Type { return TypeCommandSuggestion }
func (p CommandSuggestion) Handle(l Listener) { l.HandleCommandSuggestion(p) }

var commandSuggestionCodec = codec.Composite2(
	codec.Get("id", codec.VarInt, func(p CommandSuggestion) int32 { return p.ID }),
	codec.Get("command", codec.String(protocol.MaxCommandSuggestionLength), func(p CommandSuggestion) string { return p.Command }),
	func(id int32, cmd string) CommandSuggestion { return CommandSuggestion{ID: id, Command: cmd} },
)

// SignUpdate submits the edited text of one side of a sign.
type SignUpdate struct {
	Pos         protocol.BlockPos
	IsFrontText bool
	Lines       [4]string
}

func (SignUpdate) Type() packet.Type { return TypeSignUpdate }
func (p SignUpdate) Handle(l Listener) { l.HandleSignUpdate(p) }

func signLine(i int) codec.F[[4]string, string] {
	names := [...]string{"line_0", "line_1", "line_2", "line_3"}
	return codec.Get(names[i], codec.String(protocol.MaxSignLineLength), func(l [4]string) string { return l[i] })
}

var signLinesCodec = codec.Composite4(
	signLine(0), signLine(1), signLine(2), signLine(3),
	func(a, b, c, d string) [4]string { return [4]string{a, b, c, d} },
)

var signUpdateCodec = codec.Composite3(
	codec.Get("pos", codec.BlockPos, func(p SignUpdate) protocol.BlockPos { return p.Pos }),
	codec.Get("is_front_text", codec.Bool, func(p SignUpdate) bool { return p.IsFrontText }),
	codec.Embed(signLinesCodec, func(p SignUpdate) [4]string { return p.Lines }),
	func(pos protocol.BlockPos, front bool, lines [4]string) SignUpdate {
		return SignUpdate{Pos: pos, IsFrontText: front, Lines: lines}
	},
)
