// Package commands is the registry behind the editor's command prompt.
package commands

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Cmd runs a command with the words that followed its name.
type Cmd func(args []string) error

type Commands struct {
	log      *logrus.Logger
	commands map[string]Cmd
}

func NewCommands(log *logrus.Logger) *Commands {
	return &Commands{log: log, commands: make(map[string]Cmd)}
}

// Exec runs the command named by the first word of line. Abbreviations are
// accepted: a word that is not a registered name picks the longest name it
// is a prefix of, the alphabetically first on a tie.
func (c *Commands) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name, cmd := c.find(fields[0])
	if cmd == nil {
		c.log.WithField("command", fields[0]).Warn("command not found")
		return xerrors.Errorf("unknown command %q", fields[0])
	}

	c.log.WithFields(logrus.Fields{"command": name, "args": fields[1:]}).Info("exec")
	if err := cmd(fields[1:]); err != nil {
		return xerrors.Errorf("%s: %w", name, err)
	}
	return nil
}

func (c *Commands) find(prefix string) (string, Cmd) {
	if cmd, ok := c.commands[prefix]; ok {
		return prefix, cmd
	}

	longest := ""
	var longestCmd Cmd
	for name, cmd := range c.commands {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		// equal lengths go to the alphabetically first name
		if len(name) > len(longest) || (len(name) == len(longest) && name < longest) {
			longest, longestCmd = name, cmd
		}
	}
	return longest, longestCmd
}

func (c *Commands) Register(name string, command Cmd) {
	c.commands[name] = command
}

// Names lists the registered commands in order.
func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
