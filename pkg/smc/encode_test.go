package smc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeAll(t *testing.T) {
	tests := []struct {
		name    string
		value   int16
		want    string
		wantErr bool
	}{
		{"zero", 0, "0\n", false},
		{"positive", 1200, "1200\n", false},
		{"negative", -800, "-800\n", false},
		{"upper bound", 25000, "25000\n", false},
		{"lower bound", -25000, "-25000\n", false},
		{"above range", 25001, "", true},
		{"below range", -25001, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeAll(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEncodeChannels(t *testing.T) {
	tests := []struct {
		name    string
		values  map[int]int16
		want    string
		wantErr bool
	}{
		{
			name:   "single channel",
			values: map[int]int16{0: 500},
			want:   "p0:500\n",
		},
		{
			name:   "ordered by index",
			values: map[int]int16{3: -400, 0: 100, 2: 300, 1: -200},
			want:   "p0:100,p1:-200,p2:300,p3:-400\n",
		},
		{
			name:   "boundary values",
			values: map[int]int16{1: 25000, 2: -25000},
			want:   "p1:25000,p2:-25000\n",
		},
		{
			name:    "empty map",
			values:  map[int]int16{},
			wantErr: true,
		},
		{
			name:    "index out of range",
			values:  map[int]int16{4: 100},
			wantErr: true,
		},
		{
			name:    "negative index",
			values:  map[int]int16{-1: 100},
			wantErr: true,
		},
		{
			name:    "value out of range",
			values:  map[int]int16{0: 25001},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeChannels(tt.values)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEncodeBusID(t *testing.T) {
	tests := []struct {
		name    string
		id      int
		want    string
		wantErr bool
	}{
		{"lower bound", 1, "c1\n", false},
		{"upper bound", 4, "c4\n", false},
		{"middle", 3, "c3\n", false},
		{"zero", 0, "", true},
		{"above range", 5, "", true},
		{"negative", -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeBusID(tt.id)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseChannelList(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    map[int]int16
		wantErr bool
	}{
		{
			name: "single pair",
			in:   "0:1200",
			want: map[int]int16{0: 1200},
		},
		{
			name: "multiple pairs",
			in:   "0:1200,3:-800",
			want: map[int]int16{0: 1200, 3: -800},
		},
		{
			name: "spaces around pairs",
			in:   "1:10, 2:20",
			want: map[int]int16{1: 10, 2: 20},
		},
		{
			name: "later pair wins",
			in:   "0:1,0:2",
			want: map[int]int16{0: 2},
		},
		{
			name:    "missing colon",
			in:      "0",
			wantErr: true,
		},
		{
			name:    "index not a number",
			in:      "x:100",
			wantErr: true,
		},
		{
			name:    "index out of range",
			in:      "4:100",
			wantErr: true,
		},
		{
			name:    "value not a number",
			in:      "0:abc",
			wantErr: true,
		},
		{
			name:    "value out of range",
			in:      "0:25001",
			wantErr: true,
		},
		{
			name:    "empty string",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChannelList(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseChannelList_RoundTripsThroughEncode(t *testing.T) {
	values, err := ParseChannelList("0:1200,3:-800")
	require.NoError(t, err)

	cmd, err := EncodeChannels(values)
	require.NoError(t, err)
	assert.Equal(t, "p0:1200,p3:-800\n", cmd)
}
