package smc

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/itohio/gosmc/pkg/command"
)

// Wire forms of the two flag commands.
const (
	cmdEnable  = "i"
	cmdDisable = "o"
)

// EncodeAll returns the wire form of a uniform duty command, "<v>\n".
func EncodeAll(v int16) (string, error) {
	if v < command.MinDuty || v > command.MaxDuty {
		return "", fmt.Errorf("duty %d out of range [%d, %d]", v, command.MinDuty, command.MaxDuty)
	}
	return strconv.Itoa(int(v)) + "\n", nil
}

// EncodeChannels returns the wire form of a per-channel batch,
// "p<idx>:<v>[,p<idx>:<v>...]\n", with tokens ordered by index so the same
// map always encodes to the same string.
func EncodeChannels(values map[int]int16) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("no channels given")
	}

	idxs := make([]int, 0, len(values))
	for idx := range values {
		if idx < 0 || idx >= command.NumChannels {
			return "", fmt.Errorf("channel index %d out of range [0, %d]", idx, command.NumChannels-1)
		}
		v := values[idx]
		if v < command.MinDuty || v > command.MaxDuty {
			return "", fmt.Errorf("duty %d out of range [%d, %d]", v, command.MinDuty, command.MaxDuty)
		}
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)

	var b strings.Builder
	for i, idx := range idxs {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "p%d:%d", idx, values[idx])
	}
	b.WriteByte('\n')

	return b.String(), nil
}

// EncodeBusID returns the wire form of an arbitration id change, "c<n>\n".
func EncodeBusID(id int) (string, error) {
	if id < command.MinBusID || id > command.MaxBusID {
		return "", fmt.Errorf("bus id %d out of range [%d, %d]", id, command.MinBusID, command.MaxBusID)
	}
	return "c" + strconv.Itoa(id) + "\n", nil
}

// ParseChannelList parses the "<idx>:<v>[,<idx>:<v>...]" form humans type on
// a command line into the map EncodeChannels takes. Unlike the device, this
// side rejects malformed input loudly.
func ParseChannelList(s string) (map[int]int16, error) {
	values := make(map[int]int16)

	for _, tok := range strings.Split(s, ",") {
		idxText, valText, ok := strings.Cut(strings.TrimSpace(tok), ":")
		if !ok {
			return nil, fmt.Errorf("bad channel %q, want <idx>:<value>", tok)
		}

		idx, err := strconv.Atoi(idxText)
		if err != nil {
			return nil, fmt.Errorf("bad channel index %q: %w", idxText, err)
		}
		if idx < 0 || idx >= command.NumChannels {
			return nil, fmt.Errorf("channel index %d out of range [0, %d]", idx, command.NumChannels-1)
		}

		v, err := strconv.ParseInt(valText, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("bad channel value %q: %w", valText, err)
		}
		if v < command.MinDuty || v > command.MaxDuty {
			return nil, fmt.Errorf("duty %d out of range [%d, %d]", v, command.MinDuty, command.MaxDuty)
		}

		values[idx] = int16(v)
	}

	return values, nil
}
