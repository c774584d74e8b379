// Command smcsend sends a single command to the controller over its serial
// port. Exactly one action is taken per invocation.
//
// Usage:
//
//	smcsend -p /dev/ttyACM0 1200          uniform duty for all channels
//	smcsend -p /dev/ttyACM0 i             enable outputs
//	smcsend -p /dev/ttyACM0 o             disable outputs
//	smcsend -p /dev/ttyACM0 -ch 0:1200,3:-800
//	smcsend -p /dev/ttyACM0 -id 2
//	smcsend -p /dev/ttyACM0 -stdin        read commands line by line from stdin
//	smcsend -p /dev/ttyACM0 -sweep -amplitude 8000 -period 2s -duration 10s
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/config"
	"github.com/itohio/gosmc/pkg/smc"
)

func main() {
	var (
		portFlag      = flag.String("p", "", "Serial port override (e.g., /dev/ttyACM0)")
		baudFlag      = flag.Int("b", 0, "Baud rate override")
		configFlag    = flag.String("config", "config.yaml", "Configuration file path")
		chFlag        = flag.String("ch", "", "Per-channel duties, e.g. 0:1200,3:-800")
		idFlag        = flag.Int("id", 0, "Set the CAN bus id (1-4)")
		stdinFlag     = flag.Bool("stdin", false, "Read commands line by line from stdin")
		sweepFlag     = flag.Bool("sweep", false, "Drive all channels with a sine sweep")
		amplitudeFlag = flag.Float64("amplitude", 10000, "Sweep amplitude in duty units")
		periodFlag    = flag.Duration("period", time.Second, "Sweep sine period")
		durationFlag  = flag.Duration("duration", 5*time.Second, "Total sweep duration")
		everyFlag     = flag.Duration("every", 20*time.Millisecond, "Sweep command rate")
	)
	flag.Parse()

	actions := 0
	if flag.NArg() > 0 {
		actions++
	}
	if *chFlag != "" {
		actions++
	}
	if *idFlag != 0 {
		actions++
	}
	if *stdinFlag {
		actions++
	}
	if *sweepFlag {
		actions++
	}
	if actions != 1 {
		fmt.Fprintln(os.Stderr, "smcsend: expected exactly one of: <value>|i|o, -ch, -id, -stdin, -sweep")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}
	if *baudFlag > 0 {
		cfg.Serial.Baud = *baudFlag
	}

	dev := smc.New(cfg.Serial.Port, cfg.Serial.Baud)
	if err := dev.Connect(); err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.Serial.Port, err)
	}
	defer dev.Close()

	switch {
	case *stdinFlag:
		err = forward(dev)
	case *sweepFlag:
		err = sweep(dev, float32(*amplitudeFlag), *periodFlag, *durationFlag, *everyFlag)
	case *chFlag != "":
		var duties map[int]int16
		if duties, err = smc.ParseChannelList(*chFlag); err == nil {
			err = dev.SetChannels(duties)
		}
	case *idFlag != 0:
		err = dev.SetBusID(*idFlag)
	default:
		err = send(dev, flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("smcsend: %v", err)
	}
}

// send handles the positional argument: "i", "o" or a uniform duty value.
func send(dev smc.Commander, arg string) error {
	switch arg {
	case "i":
		return dev.Enable()
	case "o":
		return dev.Disable()
	}
	v, err := strconv.ParseInt(arg, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", arg, err)
	}
	return dev.SetAll(int16(v))
}

// forward reads commands line by line from stdin until EOF: "i", "o", a
// uniform duty value, or a "<idx>:<value>,..." channel list. Bad lines are
// reported and skipped so a typo does not end the session.
func forward(dev smc.Commander) error {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var err error
		if strings.Contains(line, ":") {
			var duties map[int]int16
			if duties, err = smc.ParseChannelList(line); err == nil {
				err = dev.SetChannels(duties)
			}
		} else {
			err = send(dev, line)
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}

// sweep enables the outputs, drives every channel with a sine wave and
// disables the outputs when the duration has elapsed.
func sweep(dev smc.Commander, amplitude float32, period, duration, every time.Duration) error {
	if amplitude < 0 || amplitude > command.MaxDuty {
		return fmt.Errorf("amplitude %v out of range [0, %d]", amplitude, command.MaxDuty)
	}
	if period <= 0 || duration <= 0 || every <= 0 {
		return fmt.Errorf("period, duration and every must be positive")
	}

	if err := dev.Enable(); err != nil {
		return err
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	start := time.Now()
	for now := range ticker.C {
		elapsed := now.Sub(start)
		if elapsed > duration {
			break
		}
		phase := 2 * math32.Pi * float32(elapsed) / float32(period)
		if err := dev.SetAll(int16(amplitude * math32.Sin(phase))); err != nil {
			return err
		}
	}
	return dev.Disable()
}
