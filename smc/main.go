package main

import (
	"flag"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gosmc/pkg/config"
	"github.com/itohio/gosmc/pkg/smc"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use mocked device instead of serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.gosmc")

	// Create main window
	window := application.NewWindow("Motor Controller")
	window.Resize(fyne.NewSize(600, 420))
	window.CenterOnScreen()

	// Create application state
	appState := &appState{
		cfg:     cfg,
		cfgPath: *configFlag,
		device:  nil,
		window:  window,
		useMock: *mockFlag,
	}
	appState.status = widget.NewLabel("Disconnected")

	// Create toolbar
	toolbar := createToolbar(appState)

	// Create channel control panel
	panel := createChannelPanel(appState)

	// Create border layout with toolbar at top, status at bottom and the
	// channel panel as content
	content := container.NewBorder(
		toolbar,
		appState.status,
		nil,
		nil,
		panel,
	)

	window.SetContent(content)
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg        *config.Config
	cfgPath    string
	device     smc.Commander
	window     fyne.Window
	connectBtn *widget.Button
	enableBtn  *widget.Button
	disableBtn *widget.Button
	busSelect  *widget.Select
	status     *widget.Label
	useMock    bool
	running    bool // Last output state we asked the controller for
}

// createToolbar creates the application toolbar with Connect, Settings,
// Enable and Disable buttons.
func createToolbar(state *appState) fyne.CanvasObject {
	// Connect button with icon
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	// Settings button with icon
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	// Output enable/disable buttons stay disabled until a device is connected
	enableBtn := widget.NewButtonWithIcon("", theme.MediaPlayIcon(), func() {
		handleEnable(state)
	})
	enableBtn.Disable()
	state.enableBtn = enableBtn

	disableBtn := widget.NewButtonWithIcon("", theme.MediaStopIcon(), func() {
		handleDisable(state)
	})
	disableBtn.Disable()
	state.disableBtn = disableBtn

	// Create toolbar with buttons on left and output buttons aligned to the right
	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		container.NewHBox(enableBtn, disableBtn),   // right
		nil, // center (spacer)
	)
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.device != nil && state.device.IsConnected() {
		// Disconnect
		state.device.Close()
		state.device = nil
		state.running = false
		state.enableBtn.Disable()
		state.disableBtn.Disable()
		updateOutputButtons(state)
		if state.useMock {
			fmt.Println("Disconnected from mocked device")
		} else {
			fmt.Println("Disconnected from serial port")
		}
	} else {
		// Connect
		var device smc.Commander
		if state.useMock {
			device = smc.NewMock()
			fmt.Println("Using mocked device")
		} else {
			device = smc.New(state.cfg.Serial.Port, state.cfg.Serial.Baud)
		}

		if err := device.Connect(); err != nil {
			if state.useMock {
				dialog.ShowError(fmt.Errorf("failed to connect to mocked device: %w", err), state.window)
			} else {
				dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
			}
			return
		}
		state.device = device
		if state.useMock {
			fmt.Printf("Connected to mocked device\n")
		} else {
			fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
		}

		// Enable output buttons
		state.enableBtn.Enable()
		state.disableBtn.Enable()
		updateOutputButtons(state)
	}
	updateStatus(state)
}
