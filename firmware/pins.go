//go:build tinygo

package main

import "machine"

const (
	// Control loop configuration
	TICK_INTERVAL_MS = 10 // Frame period in milliseconds
	SERIAL_BUFFER    = 64 // Largest command chunk consumed per tick

	// MCP2515 wiring on SPI0 (Pico default SPI0 pins)
	PIN_SPI_SCK = machine.GP18
	PIN_SPI_SDO = machine.GP19
	PIN_SPI_SDI = machine.GP16
	PIN_CAN_CS  = machine.GP17

	// SPI clock for the MCP2515; the controller itself runs from its own
	// 8 MHz crystal
	SPI_FREQUENCY = 500000

	// Stop button, wired to ground, internal pull-up
	PIN_STOP = machine.GP22

	// Serial configuration
	// Commands are short ASCII lines ("p0:100,p1:-200\n" = ~20 bytes), so
	// 115200 baud leaves plenty of headroom at a 10 ms poll interval
	UART_BAUD_RATE = 115200
)
