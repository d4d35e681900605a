package session

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/Versifine/mcwire/internal/packet/clientbound"
	"github.com/Versifine/mcwire/internal/registry"
)

var commands = []string{"give", "help", "list"}

func (s *Session) runCommand(line string) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "help":
		s.reply("Commands: /" + strings.Join(commands, ", /"))
	case "list":
		s.reply(fmt.Sprintf("%d player(s) online", s.hub.Len()))
	case "give":
		if err := s.give(args[1:]); err != nil {
			s.reply("give: " + err.Error())
		}
	default:
		s.reply("Unknown command: " + args[0])
	}
}

// give puts an item stack into the first empty slot: /give <item> [count].
func (s *Session) give(args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return fmt.Errorf("usage: /give <item> [count]")
	}
	h := s.hub
	item, ok := h.set.Items.ByName(args[0])
	if !ok {
		return fmt.Errorf("unknown item %s", args[0])
	}
	count := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 || n > registry.MaxStackCount {
			return fmt.Errorf("count must be between 1 and %d", registry.MaxStackCount)
		}
		count = n
	}
	stack := registry.ItemStack{Item: item, Count: int32(count)}

	h.mu.Lock()
	slot := -1
	for i, st := range s.inventory {
		if st.IsEmpty() {
			slot = i
			break
		}
	}
	if slot < 0 {
		h.mu.Unlock()
		return fmt.Errorf("inventory is full")
	}
	s.inventory[slot] = stack
	s.stateID++
	pkt := clientbound.ContainerSetSlot{StateID: s.stateID, Slot: int16(slot), Item: stack}
	inv := slices.Clone(s.inventory)
	ctx := s.playerContext()
	h.mu.Unlock()

	s.send(pkt)
	if h.opts.Triggers != nil {
		h.opts.Triggers.FireInventoryChanged(s.id, ctx, inv, stack)
	}
	return nil
}

// suggestionTarget returns where in command the word being completed starts
// and the word itself.
func suggestionTarget(command string) (int, string) {
	i := strings.LastIndexByte(command, ' ')
	if i < 0 {
		if strings.HasPrefix(command, "/") {
			return 1, command[1:]
		}
		return 0, command
	}
	return i + 1, command[i+1:]
}

// complete lists completions for the last word of command.
func (h *Hub) complete(command string) []string {
	line := strings.TrimPrefix(command, "/")
	_, word := suggestionTarget(command)
	fields := strings.Fields(line)

	var candidates []string
	switch {
	case !strings.Contains(line, " "):
		candidates = commands
	case len(fields) >= 1 && fields[0] == "give" && (len(fields) == 1 || len(fields) == 2 && !strings.HasSuffix(line, " ")):
		candidates = h.set.Items.Keys()
	}

	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, word) || strings.HasPrefix(strings.TrimPrefix(c, "minecraft:"), word) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}
