package shell

// DefaultCommandTable returns the command table of the marlin builtins and
// language keywords, in the order they are registered by the shell.
func DefaultCommandTable() *CommandTable {
	return NewCommandTable([]Command{
		{Name: "alias", Description: "Define or display command aliases", Category: CategoryBuiltin},
		{Name: "cd", Description: "Change the working directory", Category: CategoryBuiltin},
		{Name: "echo", Description: "Write arguments to standard output", Category: CategoryBuiltin},
		{Name: "exit", Description: "Exit the shell", Category: CategoryBuiltin},
		{Name: "export", Description: "Set an environment variable", Category: CategoryBuiltin},
		{Name: "help", Description: "Display help about marlin commands", Category: CategoryBuiltin},
		{Name: "history", Description: "Display the command history", Category: CategoryBuiltin},
		{Name: "jobs", Description: "List active jobs", Category: CategoryBuiltin},
		{Name: "pwd", Description: "Print the working directory", Category: CategoryBuiltin},
		{Name: "source", Description: "Run a module script in the current shell", Category: CategoryBuiltin},
		{Name: "type", Description: "Describe how a command name resolves", Category: CategoryBuiltin},
		{Name: "unalias", Description: "Remove command aliases", Category: CategoryBuiltin},
		{Name: "unset", Description: "Unset an environment variable", Category: CategoryBuiltin},
		{Name: "use", Description: "Import definitions from a module script", Category: CategoryBuiltin},
		{Name: "which", Description: "Locate a command on PATH", Category: CategoryBuiltin},

		{Name: "if", Description: "Conditional execution", Category: CategoryKeyword},
		{Name: "for", Description: "Iterate over a list", Category: CategoryKeyword},
		{Name: "while", Description: "Loop while a condition holds", Category: CategoryKeyword},
		{Name: "case", Description: "Pattern-based branching", Category: CategoryKeyword},

		// Retained for scripts written against older releases.
		{Name: "builtin-run", Description: "Run a builtin, bypassing aliases", Category: CategoryBuiltin, Hidden: true},
	})
}
