package main

import (
	"fmt"

	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// handleEnable handles the enable button click to turn the outputs on.
func handleEnable(state *appState) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}
	if err := state.device.Enable(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to enable outputs: %w", err), state.window)
		return
	}
	state.running = true
	updateOutputButtons(state)
	updateStatus(state)
}

// handleDisable handles the disable button click to turn the outputs off.
func handleDisable(state *appState) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}
	if err := state.device.Disable(); err != nil {
		dialog.ShowError(fmt.Errorf("failed to disable outputs: %w", err), state.window)
		return
	}
	state.running = false
	updateOutputButtons(state)
	updateStatus(state)
}

// updateOutputButtons updates the visual state of the enable/disable buttons.
// The commands are fire and forget, so the highlight reflects the last state
// we asked for, not feedback from the controller.
func updateOutputButtons(state *appState) {
	connected := state.device != nil && state.device.IsConnected()
	updateOutputButton(state.enableBtn, connected && state.running)
	updateOutputButton(state.disableBtn, connected && !state.running)
}

// updateOutputButton updates a single output button's visual state.
func updateOutputButton(btn *widget.Button, active bool) {
	if active {
		btn.Importance = widget.HighImportance
	} else {
		btn.Importance = widget.MediumImportance
	}
	btn.Refresh()
}

// updateStatus refreshes the status label at the bottom of the window.
func updateStatus(state *appState) {
	if state.device == nil || !state.device.IsConnected() {
		state.status.SetText("Disconnected")
		return
	}
	target := state.cfg.Serial.Port
	if state.useMock {
		target = "mocked device"
	}
	if state.running {
		state.status.SetText(fmt.Sprintf("Connected to %s, outputs enabled", target))
	} else {
		state.status.SetText(fmt.Sprintf("Connected to %s, outputs disabled", target))
	}
}
