//go:build tinygo

//go:generate tinygo flash -target=pico

package main

import (
	"encoding/binary"
	"machine"
	"time"

	"tinygo.org/x/drivers/mcp2515"

	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/drive"
)

var (
	uart = machine.UART0

	// Channel state; the main loop is its only writer
	state   = drive.New()
	dialect = command.Extended

	// Serial buffer for reading command chunks
	serialBuffer [SERIAL_BUFFER]byte
)

func main() {
	// Stop button shorts to ground when pressed
	PIN_STOP.Configure(machine.PinConfig{Mode: machine.PinInputPullup})

	// MCP2515 CAN controller on SPI0
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: SPI_FREQUENCY,
		SCK:       PIN_SPI_SCK,
		SDO:       PIN_SPI_SDO,
		SDI:       PIN_SPI_SDI,
		Mode:      0,
	})
	can := mcp2515.New(machine.SPI0, PIN_CAN_CS)
	can.Configure()
	if err := can.Begin(mcp2515.CAN1000kBps, mcp2515.Clock8MHz); err != nil {
		panic(err)
	}

	// Configure UART for command input
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	// Main loop: poll serial, poll the stop button, send one frame
	ticker := time.NewTicker(TICK_INTERVAL_MS * time.Millisecond)
	for range ticker.C {
		processSerial()

		// The stop button wins over an enable that arrived in the same tick
		if !PIN_STOP.Get() {
			state.Disable()
		}

		transmit(can)
	}
}

// processSerial drains whatever arrived since the last tick, at most one
// buffer's worth, and applies it as a single command.
func processSerial() {
	n := 0
	for uart.Buffered() > 0 && n < len(serialBuffer) {
		data, err := uart.ReadByte()
		if err != nil {
			break
		}
		serialBuffer[n] = data
		n++
	}
	if n == 0 {
		return
	}

	state.Apply(dialect.Parse(serialBuffer[:n]))
}

// transmit sends one state frame: four little-endian int16 duties, zeros
// while the output is disabled. Send errors are dropped, the next tick
// carries fresh state anyway.
func transmit(can *mcp2515.Device) {
	snap := state.Snapshot()

	var payload [8]byte
	if snap.Running {
		for i, v := range snap.Channels {
			binary.LittleEndian.PutUint16(payload[2*i:], uint16(v))
		}
	}

	_ = can.Tx(uint32(snap.BusID), 8, payload[:])
}
