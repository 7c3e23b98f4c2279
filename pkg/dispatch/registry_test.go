package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyland-inc/gofer/pkg/bus"
)

func nopHandler(_ context.Context, _ bus.InboundMessage, _ []string) error { return nil }

func TestListCommands_RegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand(Command{Name: "start", Description: "greet", Handler: nopHandler})
	reg.RegisterCommand(Command{Name: "help", Description: "command menu", Handler: nopHandler})
	reg.RegisterCommand(Command{Name: "read", Description: "read a range", Handler: nopHandler})

	infos := reg.ListCommands()
	require.Equal(t, []CommandInfo{
		{Name: "start", Description: "greet"},
		{Name: "help", Description: "command menu"},
		{Name: "read", Description: "read a range"},
	}, infos)
}

func TestListCommands_Empty(t *testing.T) {
	reg := NewRegistry()
	require.Empty(t, reg.ListCommands())
}

// Duplicate registration keeps the first descriptor; the menu never lists a
// name twice.
func TestRegisterCommand_DuplicateIgnored(t *testing.T) {
	calls := make(chan string, 1)
	reg := NewRegistry()
	reg.RegisterCommand(Command{Name: "read", Description: "first", Handler: tagHandler("first", calls)})
	reg.RegisterCommand(Command{Name: "read", Description: "second", Handler: tagHandler("second", calls)})

	infos := reg.ListCommands()
	require.Len(t, infos, 1)
	require.Equal(t, "first", infos[0].Description)

	router := NewRouter(reg)
	require.True(t, router.Route(context.Background(), msgWithText("/read")))
	require.Equal(t, "first", waitCall(t, calls))
}
