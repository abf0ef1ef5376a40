// Package shell provides the completion core's read-only views into the
// marlin shell: the command table and the flattened token stream produced by
// the parser.
package shell

// CommandCategory classifies an entry in the command table.
type CommandCategory int

const (
	CategoryBuiltin CommandCategory = iota
	CategoryKeyword
	CategoryAlias
	CategoryCustom
)

// String returns the string representation of the command category.
func (c CommandCategory) String() string {
	switch c {
	case CategoryBuiltin:
		return "builtin"
	case CategoryKeyword:
		return "keyword"
	case CategoryAlias:
		return "alias"
	case CategoryCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Command is one entry in the shell's command table.
type Command struct {
	Name        string
	Description string
	Category    CommandCategory
	Hidden      bool
}

// CommandTable is an immutable snapshot of the shell's known commands.
// It is built once by the host and treated as read-only for the duration
// of a completion query.
type CommandTable struct {
	commands []Command
	byName   map[string]int
}

// NewCommandTable creates a command table from the given commands.
// Later entries shadow earlier ones with the same name for name lookup,
// matching how alias definitions shadow builtins.
func NewCommandTable(commands []Command) *CommandTable {
	byName := make(map[string]int, len(commands))
	for i, cmd := range commands {
		byName[cmd.Name] = i
	}
	return &CommandTable{
		commands: commands,
		byName:   byName,
	}
}

// FindByPredicate returns all commands matching the predicate, in table
// order. Hidden commands are only included when includeHidden is set.
func (t *CommandTable) FindByPredicate(predicate func(Command) bool, includeHidden bool) []Command {
	if t == nil {
		return nil
	}
	var out []Command
	for _, cmd := range t.commands {
		if cmd.Hidden && !includeHidden {
			continue
		}
		if predicate == nil || predicate(cmd) {
			out = append(out, cmd)
		}
	}
	return out
}

// Contains reports whether a command with the given name exists in the table.
func (t *CommandTable) Contains(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.byName[name]
	return ok
}

// Lookup returns the command with the given name.
func (t *CommandTable) Lookup(name string) (Command, bool) {
	if t == nil {
		return Command{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return Command{}, false
	}
	return t.commands[i], true
}
