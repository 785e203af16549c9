package commands

import (
	"sort"
	"strings"

	"HelpBot/bot"

	"github.com/bwmarrin/discordgo"
)

// CommandFunc defines the signature for command handlers
type CommandFunc func(b *bot.Bot, s *discordgo.Session, m *discordgo.MessageCreate, args []string)

// CommandInfo holds detailed information about a command. A command with
// Subcommands is a group; its subcommands are addressed as "parent child".
type CommandInfo struct {
	Name        string        `json:"name"`
	Aliases     []string      `json:"aliases"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Category    string        `json:"category"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
}

// IsGroup reports whether the command has subcommands.
func (c CommandInfo) IsGroup() bool { return len(c.Subcommands) > 0 }

// Signature returns the usage string shown in help output.
func (c CommandInfo) Signature() string {
	if c.Usage != "" {
		return c.Usage
	}
	return "." + c.Name
}

// ModuleInfo represents a complete module with its commands and metadata
type ModuleInfo struct {
	Name         string                 `json:"name"`
	Description  string                 `json:"description"`
	Version      string                 `json:"version"`
	Author       string                 `json:"author"`
	Category     string                 `json:"category"`
	Commands     []CommandInfo          `json:"commands"`
	Dependencies []string               `json:"dependencies"`
	Config       map[string]interface{} `json:"config"`
}

// CategoryInfo represents a category that contains multiple modules
type CategoryInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Modules     []string `json:"modules"`
}

// Global registries
var (
	RegisteredModules    = make(map[string]*ModuleInfo)
	RegisteredCategories = make(map[string]*CategoryInfo)
	CommandDetails       = make(map[string]CommandInfo) // Auto-compiled from modules
	CommandMap           = make(map[string]CommandFunc)
	CommandAliases       = make(map[string]string)
)

// RegisterCommand registers individual command handlers (used by modules)
func RegisterCommand(name string, handler CommandFunc, aliases ...string) {
	CommandMap[name] = handler
	for _, alias := range aliases {
		CommandAliases[alias] = name
	}
}

// RegisterModule registers a complete module and auto-compiles command info
func RegisterModule(module *ModuleInfo) {
	RegisteredModules[module.Name] = module

	for _, cmd := range module.Commands {
		CommandDetails[cmd.Name] = cmd
	}

	if module.Category == "" {
		return
	}
	category, exists := RegisteredCategories[module.Category]
	if !exists {
		category = &CategoryInfo{
			Name:        module.Category,
			Description: module.Description,
		}
		RegisteredCategories[module.Category] = category
	}
	for _, modName := range category.Modules {
		if modName == module.Name {
			return
		}
	}
	category.Modules = append(category.Modules, module.Name)
}

// FindCommand resolves a user-supplied name to a command: aliases are
// followed, and a second token descends into a group's subcommands.
func FindCommand(tokens []string) (CommandInfo, bool) {
	if len(tokens) == 0 {
		return CommandInfo{}, false
	}
	name := strings.ToLower(tokens[0])
	if actual, isAlias := CommandAliases[name]; isAlias {
		name = actual
	}
	cmd, ok := CommandDetails[name]
	if !ok {
		return CommandInfo{}, false
	}
	if len(tokens) == 1 {
		return cmd, true
	}
	sub := strings.ToLower(tokens[1])
	for _, s := range cmd.Subcommands {
		if s.Name == sub {
			return s, true
		}
	}
	return CommandInfo{}, false
}

// FindCategory resolves a category by name, case-insensitively.
func FindCategory(name string) (*CategoryInfo, bool) {
	for _, cat := range RegisteredCategories {
		if strings.EqualFold(cat.Name, name) {
			return cat, true
		}
	}
	return nil, false
}

// GetCommandsByCategory returns all commands in a specific category using registered modules
func GetCommandsByCategory(category string) []CommandInfo {
	var cmds []CommandInfo
	for _, module := range RegisteredModules {
		if module.Category == category {
			cmds = append(cmds, module.Commands...)
		}
	}
	return cmds
}

// CategoryNames returns the registered category names in sorted order.
func CategoryNames() []string {
	names := make([]string, 0, len(RegisteredCategories))
	for name := range RegisteredCategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetModulesByCategory returns all modules in a specific category
func GetModulesByCategory(categoryName string) []*ModuleInfo {
	var modules []*ModuleInfo
	for _, module := range RegisteredModules {
		if module.Category == categoryName {
			modules = append(modules, module)
		}
	}
	return modules
}
