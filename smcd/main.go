// Command smcd runs the controller on an embedded Linux board: ASCII
// commands in over a serial port, one state frame out per tick on SocketCAN,
// with an optional GPIO stop input.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/itohio/gosmc/pkg/canbus"
	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/config"
	"github.com/itohio/gosmc/pkg/controller"
	"github.com/itohio/gosmc/pkg/interlock"
)

func main() {
	var (
		portFlag     = flag.String("p", "", "Serial port override (e.g., /dev/ttyACM0)")
		ifaceFlag    = flag.String("iface", "", "CAN interface override (e.g., can0)")
		configFlag   = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag     = flag.Bool("mock", false, "Log frames instead of opening the CAN interface")
		intervalFlag = flag.Duration("interval", 0, "Tick interval override (e.g., 10ms)")
		dialectFlag  = flag.String("dialect", "", "Protocol dialect override (basic or extended)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Flags override the file
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *ifaceFlag != "" {
		cfg.CAN.Interface = *ifaceFlag
	}
	if *intervalFlag > 0 {
		cfg.Control.Interval = *intervalFlag
	}
	if *dialectFlag != "" {
		cfg.Control.Dialect = *dialectFlag
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	dialect, err := command.DialectByName(cfg.Control.Dialect)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	src := controller.NewSerialSource(cfg.Serial.Port, cfg.Serial.Baud, dialect.Buffer)
	if err := src.Open(); err != nil {
		log.Fatalf("Failed to open serial port: %v", err)
	}
	defer src.Close()

	var bus canbus.Bus
	if *mockFlag {
		log.Printf("Mock mode: frames are logged, not transmitted")
		bus = &canbus.Tracer{}
	} else {
		sock, err := canbus.Open(cfg.CAN.Interface)
		if err != nil {
			log.Fatalf("Failed to open CAN interface %s: %v", cfg.CAN.Interface, err)
		}
		bus = sock
	}
	defer bus.Close()

	// The stop input only exists on real hardware; in mock mode the loop
	// runs with the interlock released.
	var stop interlock.Input
	if cfg.Interlock.Enabled && !*mockFlag {
		pin, err := interlock.OpenPin(cfg.Interlock.Pin)
		if err != nil {
			log.Fatalf("Failed to open interlock pin %d: %v", cfg.Interlock.Pin, err)
		}
		defer pin.Close()
		stop = pin
	}

	ctrl, err := controller.New(controller.Config{
		Dialect:  dialect,
		Interval: cfg.Control.Interval,
		Commands: src.Commands(),
		Bus:      bus,
		Stop:     stop,
		BusID:    cfg.CAN.ID,
	})
	if err != nil {
		log.Fatalf("Failed to create controller: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Printf("smcd: serial=%s@%d can=%s id=%d interlock=%v",
		cfg.Serial.Port, cfg.Serial.Baud, cfg.CAN.Interface, cfg.CAN.ID, stop != nil)

	if err := ctrl.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Controller stopped: %v", err)
	}
	log.Printf("smcd: shut down")
}
