package smc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/gosmc/pkg/drive"
)

func TestNewMock(t *testing.T) {
	m := NewMock()
	assert.NotNil(t, m)
	assert.False(t, m.IsConnected())

	snap := m.State()
	assert.Equal(t, [4]int16{0, 0, 0, 0}, snap.Channels)
	assert.False(t, snap.Running)
	assert.Equal(t, drive.DefaultBusID, snap.BusID)
}

func TestMock_Connect_AlreadyConnected(t *testing.T) {
	m := NewMock()

	err := m.Connect()
	assert.NoError(t, err)

	err = m.Connect()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already connected")
}

func TestMock_Close_NotConnected(t *testing.T) {
	m := NewMock()
	assert.NoError(t, m.Close())
}

func TestMock_NotConnected(t *testing.T) {
	m := NewMock()

	err := m.Enable()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")

	// Nothing reached the simulated device.
	assert.Empty(t, m.Sent())
	assert.False(t, m.State().Running)
}

func TestMock_CommandsReachState(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())

	require.NoError(t, m.Enable())
	assert.True(t, m.State().Running)

	require.NoError(t, m.SetAll(500))
	assert.Equal(t, [4]int16{500, 500, 500, 500}, m.State().Channels)

	require.NoError(t, m.SetChannels(map[int]int16{0: 100, 2: -300}))
	assert.Equal(t, [4]int16{100, 500, -300, 500}, m.State().Channels)

	require.NoError(t, m.SetBusID(3))
	assert.Equal(t, 3, m.State().BusID)

	require.NoError(t, m.Disable())
	snap := m.State()
	assert.False(t, snap.Running)
	assert.Equal(t, [4]int16{100, 500, -300, 500}, snap.Channels)

	assert.Equal(t, []string{"i", "500\n", "p0:100,p2:-300\n", "c3\n", "o"}, m.Sent())
}

func TestMock_ClientValidationRunsFirst(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())

	// Out-of-range arguments error on the client and never hit the wire.
	assert.Error(t, m.SetAll(25001))
	assert.Error(t, m.SetBusID(5))
	assert.Error(t, m.SetChannels(map[int]int16{7: 1}))
	assert.Empty(t, m.Sent())
}

func TestMock_RawFollowsDeviceContract(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())

	// The device silently drops what it cannot parse; Raw mirrors that.
	require.NoError(t, m.Raw("c5\n"))
	assert.Equal(t, drive.DefaultBusID, m.State().BusID)

	require.NoError(t, m.Raw("p0:500,p9:999,p2:-300\n"))
	assert.Equal(t, [4]int16{500, 0, -300, 0}, m.State().Channels)

	// Garbage text converts to zero, which is a valid uniform command.
	require.NoError(t, m.Raw("abc"))
	assert.Equal(t, [4]int16{0, 0, 0, 0}, m.State().Channels)
}

func TestMock_StateSurvivesReconnect(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.Connect())
	require.NoError(t, m.SetAll(777))
	require.NoError(t, m.Close())
	assert.False(t, m.IsConnected())

	require.NoError(t, m.Connect())
	assert.Equal(t, [4]int16{777, 777, 777, 777}, m.State().Channels)
}
