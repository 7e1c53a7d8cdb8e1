package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mohsinsiddi/stakeforms/internal/bridge"
	"github.com/Mohsinsiddi/stakeforms/internal/contract"
)

var owner = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

type stubClient struct {
	release chan struct{}
	callErr error
}

func (s *stubClient) Call(ctx context.Context, method string, args ...any) ([]any, error) {
	if s.release != nil {
		<-s.release
	}
	if s.callErr != nil {
		return nil, s.callErr
	}
	return []any{owner}, nil
}

func (s *stubClient) Send(ctx context.Context, from common.Address, method string, args ...any) (*types.Receipt, error) {
	return &types.Receipt{Status: types.ReceiptStatusSuccessful}, nil
}

type stubSession struct{}

func (stubSession) Accounts() []common.Address { return []common.Address{owner} }

func newConsole(t *testing.T, client bridge.ContractClient) ConsoleModel {
	t.Helper()
	abis := map[string]abi.ABI{}
	for _, id := range []string{contract.BuiltinStaking, contract.BuiltinProxy} {
		parsed, err := contract.ParseBuiltin(id)
		require.NoError(t, err)
		abis[id] = parsed
	}
	table, err := bridge.BuildTable(bridge.DefaultForms(), abis, bridge.HelpText)
	require.NoError(t, err)

	b := bridge.New(stubSession{}, map[string]bridge.ContractClient{
		contract.BuiltinStaking: client,
		contract.BuiltinProxy:   client,
	}, bridge.WithLogger(zerolog.Nop()))
	return NewConsoleModel(context.Background(), b, "bnb testnet", b.Render(table))
}

// focusAction moves the cursor to the action control of key.
func focusAction(t *testing.T, m ConsoleModel, key string) (ConsoleModel, *bridge.FormGroup) {
	t.Helper()
	for i, f := range m.stops {
		if f.group.Descriptor.Key() == key && f.slot == slotAction {
			m.cursor = i
			return m, f.group
		}
	}
	t.Fatalf("no action stop for %s", key)
	return m, nil
}

func press(m ConsoleModel, keys ...tea.KeyMsg) (ConsoleModel, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(ConsoleModel)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

// settle runs the batched command of an activation and returns the
// invocation message it produced.
func settle(t *testing.T, cmd tea.Cmd) invokedMsg {
	t.Helper()
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if c == nil {
			continue
		}
		if msg, ok := c().(invokedMsg); ok {
			return msg
		}
	}
	t.Fatal("activation produced no invokedMsg")
	return invokedMsg{}
}

func TestConsoleStopsCoverEverySlotAndAction(t *testing.T) {
	m := newConsole(t, &stubClient{})

	want := 0
	for _, s := range m.sections {
		for _, g := range s.Groups {
			want += g.Slots() + 1
		}
	}
	assert.Len(t, m.stops, want)
	assert.Equal(t, "write/enterStaking", m.stops[0].group.Descriptor.Key())
	assert.Equal(t, 0, m.stops[0].slot)
}

func TestConsoleViewShowsSectionsAndPlaceholders(t *testing.T) {
	m := newConsole(t, &stubClient{})
	view := m.View()

	for _, title := range []string{"Write Section", "Read Section", "Admin Section", "Proxy Owner Section", "Proxy View Section"} {
		assert.Contains(t, view, title)
	}
	assert.Contains(t, view, "bnb testnet")
	assert.Contains(t, view, "string memory _stakeName")
	assert.Contains(t, view, "[ Transact ]")
	assert.Contains(t, view, "[ Read ]")
}

func TestConsoleNavigation(t *testing.T) {
	m := newConsole(t, &stubClient{})

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.cursor, "cursor does not move above the first stop")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 2, m.cursor)
	assert.Equal(t, slotAction, m.stops[2].slot, "enterStaking has two slots then its action")

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, 1, m.cursor)

	m.cursor = len(m.stops) - 1
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, len(m.stops)-1, m.cursor)
}

func TestConsoleTypingEditsFocusedSlot(t *testing.T) {
	m := newConsole(t, &stubClient{})
	g := m.stops[0].group

	m, _ = press(m, runes("S1x"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "S1", g.Input(0))

	m, _ = press(m, tea.KeyMsg{Type: tea.KeySpace}, runes("q"))
	assert.Equal(t, "S1 q", g.Input(0), "q is text while a slot has focus")
	assert.False(t, m.Quitting)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Empty(t, g.Input(0))
	assert.NotContains(t, m.View(), "S1 q")
}

func TestConsoleActivateRead(t *testing.T) {
	client := &stubClient{release: make(chan struct{})}
	m := newConsole(t, client)
	m, g := focusAction(t, m, "read/owner")

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, g.InFlight(), "marked in flight before the command runs")
	assert.Contains(t, m.View(), "[ Read"+bridge.InFlightMarker+" ]")

	close(client.release)
	msg := settle(t, cmd)
	assert.True(t, msg.result.OK())

	next, _ := m.Update(msg)
	m = next.(ConsoleModel)
	assert.False(t, g.InFlight())
	assert.Equal(t, owner.Hex(), g.Output())
	assert.Contains(t, m.View(), owner.Hex())
	assert.Contains(t, m.status, "owner")
}

func TestConsoleActivateFault(t *testing.T) {
	m := newConsole(t, &stubClient{callErr: errors.New("execution reverted: not owner")})
	m, g := focusAction(t, m, "read/owner")

	m, cmd := press(m, runes(" "))
	msg := settle(t, cmd)
	require.False(t, msg.result.OK())

	next, _ := m.Update(msg)
	m = next.(ConsoleModel)
	assert.Contains(t, g.Output(), "revert")
	assert.Contains(t, m.status, "revert fault")
}

func TestConsoleTickStopsWhenIdle(t *testing.T) {
	m := newConsole(t, &stubClient{})
	_, cmd := m.Update(tickMsg{})
	assert.Nil(t, cmd)
}

func TestConsoleQuit(t *testing.T) {
	m := newConsole(t, &stubClient{})

	m, cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.Quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())

	m = newConsole(t, &stubClient{})
	m, _ = focusAction(t, m, "read/owner")
	m, _ = press(m, runes("q"))
	assert.True(t, m.Quitting)
}

func TestWindow(t *testing.T) {
	lines := []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

	assert.Equal(t, lines, window(lines, 5, 0), "unknown height shows everything")
	assert.Equal(t, lines, window(lines, 5, 20))
	assert.Equal(t, []string{"0", "1", "2", "3"}, window(lines, 1, 4))
	assert.Equal(t, []string{"3", "4", "5", "6"}, window(lines, 5, 4))
	assert.Equal(t, []string{"6", "7", "8", "9"}, window(lines, 9, 4))
}
