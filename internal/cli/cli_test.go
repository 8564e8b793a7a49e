package cli

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"describe", "validate", "config"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestDescribeCommandFlags(t *testing.T) {
	cmd := newDescribeCommand()
	for _, name := range []string{"depth", "recursive", "profile"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	assert.NotNil(t, cmd.Flags().Lookup("recursive"))
}

func TestConfigCommandTree(t *testing.T) {
	cmd := newConfigCommand()
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set-contact")
	assert.Contains(t, names, "set-license")

	contact := newConfigSetContactCommand()
	for _, name := range []string{"email", "organization", "individual-name", "position-name"} {
		assert.NotNil(t, contact.Flags().Lookup(name), "missing flag: %s", name)
	}
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	invalid := errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad input")
	assert.Equal(t, 2, exitCodeForError(invalid))

	missing := errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("no such source")
	assert.Equal(t, 3, exitCodeForError(missing))

	precondition := errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("no profile path")
	assert.Equal(t, 4, exitCodeForError(precondition))

	internal := errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("write failed")
	assert.Equal(t, 5, exitCodeForError(internal))

	assert.Equal(t, 1, exitCodeForError(errors.New("unclassified")))
}

func TestErrorMessage(t *testing.T) {
	coded := errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("document not found: x.yml")
	assert.Equal(t, "document not found: x.yml", errorMessage(coded))

	plain := errors.New("something else")
	assert.Equal(t, "something else", errorMessage(plain))
}
