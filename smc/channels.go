package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gosmc/pkg/command"
	"github.com/itohio/gosmc/pkg/smc"
)

// createChannelPanel creates the duty controls: one entry that drives every
// channel, one entry per channel for batch updates, and the bus id selector.
func createChannelPanel(state *appState) fyne.CanvasObject {
	uniformEntry := widget.NewEntry()
	uniformEntry.SetPlaceHolder(fmt.Sprintf("%d .. %d", command.MinDuty, command.MaxDuty))

	uniformForm := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "All Channels", Widget: uniformEntry},
		},
		SubmitText: "Send",
		OnSubmit: func() {
			v, err := parseDuty(uniformEntry.Text)
			if err != nil {
				dialog.ShowError(err, state.window)
				return
			}
			sendCommand(state, func(dev smc.Commander) error {
				return dev.SetAll(v)
			})
		},
	}

	// Per-channel entries; an empty entry leaves that channel unchanged
	channelEntries := make([]*widget.Entry, command.NumChannels)
	channelItems := make([]*widget.FormItem, command.NumChannels)
	for i := range channelEntries {
		entry := widget.NewEntry()
		entry.SetPlaceHolder("unchanged")
		channelEntries[i] = entry
		channelItems[i] = &widget.FormItem{
			Text:   fmt.Sprintf("Channel %d", i),
			Widget: entry,
		}
	}

	channelForm := &widget.Form{
		Items:      channelItems,
		SubmitText: "Send Channels",
		OnSubmit: func() {
			duties := make(map[int]int16)
			for i, entry := range channelEntries {
				text := strings.TrimSpace(entry.Text)
				if text == "" {
					continue
				}
				v, err := parseDuty(text)
				if err != nil {
					dialog.ShowError(fmt.Errorf("channel %d: %w", i, err), state.window)
					return
				}
				duties[i] = v
			}
			if len(duties) == 0 {
				return
			}
			sendCommand(state, func(dev smc.Commander) error {
				return dev.SetChannels(duties)
			})
		},
	}

	// Bus id selection takes effect immediately when connected
	busOptions := make([]string, 0, command.MaxBusID)
	for id := command.MinBusID; id <= command.MaxBusID; id++ {
		busOptions = append(busOptions, strconv.Itoa(id))
	}
	busSelect := widget.NewSelect(busOptions, func(selected string) {
		id, err := strconv.Atoi(selected)
		if err != nil {
			return
		}
		sendCommand(state, func(dev smc.Commander) error {
			return dev.SetBusID(id)
		})
	})
	busSelect.SetSelected(strconv.Itoa(state.cfg.CAN.ID))
	state.busSelect = busSelect

	busForm := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Bus ID", Widget: busSelect},
		},
	}

	return container.NewVBox(
		uniformForm,
		widget.NewSeparator(),
		channelForm,
		widget.NewSeparator(),
		busForm,
	)
}

// sendCommand runs one command against the connected device and surfaces
// errors in a dialog. Does nothing while disconnected.
func sendCommand(state *appState, send func(smc.Commander) error) {
	if state.device == nil || !state.device.IsConnected() {
		return
	}
	if err := send(state.device); err != nil {
		dialog.ShowError(err, state.window)
	}
}

// parseDuty parses a duty entry. Range checking happens in the device
// methods, this only rejects text that is not a 16-bit integer.
func parseDuty(text string) (int16, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(text), 10, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid duty %q: %w", text, err)
	}
	return int16(v), nil
}
