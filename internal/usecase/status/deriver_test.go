package status

import (
	"testing"

	"github.com/lavamax/console/internal/domain"
	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// TestStageOf checks the fixed precedence of the derived lifecycle stage.
func TestStageOf(t *testing.T) {
	tests := []struct {
		name     string
		record   domain.ServiceRecord
		expected Stage
	}{
		{
			name: "only receive time",
			record: domain.ServiceRecord{
				ReceiveTime: "09:00:00",
			},
			expected: StageReceived,
		},
		{
			name: "washing employee assigned",
			record: domain.ServiceRecord{
				ReceiveTime:     "09:00:00",
				WashingEmployee: intPtr(7),
			},
			expected: StageInProgress,
		},
		{
			name: "delivery time set",
			record: domain.ServiceRecord{
				ReceiveTime:     "09:00:00",
				WashingEmployee: intPtr(7),
				DeliveryTime:    strPtr("10:30:00"),
			},
			expected: StageCompleted,
		},
		{
			name: "delivery time wins even without washing employee",
			record: domain.ServiceRecord{
				ReceiveTime:  "09:00:00",
				DeliveryTime: strPtr("10:30:00"),
			},
			expected: StageCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StageOf(&tt.record))
		})
	}
}

// TestElapsed checks the duration computation, including the single
// day-rollover for washes crossing midnight.
func TestElapsed(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		expected Duration
	}{
		{
			name:     "same morning",
			start:    "09:00:00",
			end:      "10:30:00",
			expected: Duration{Hours: 1, Minutes: 30, Known: true},
		},
		{
			name:     "crosses midnight",
			start:    "23:30:00",
			end:      "00:15:00",
			expected: Duration{Hours: 0, Minutes: 45, Known: true},
		},
		{
			name:     "zero span",
			start:    "12:00:00",
			end:      "12:00:00",
			expected: Duration{Hours: 0, Minutes: 0, Known: true},
		},
		{
			name:     "missing end",
			start:    "09:00:00",
			end:      "",
			expected: Duration{},
		},
		{
			name:     "missing start",
			start:    "",
			end:      "10:00:00",
			expected: Duration{},
		},
		{
			name:     "unparseable input",
			start:    "9am",
			end:      "10:00:00",
			expected: Duration{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Elapsed(tt.start, tt.end))
		})
	}
}

// TestDurationString checks the presentation of durations, in particular
// that an unknown duration is never rendered as zero.
func TestDurationString(t *testing.T) {
	assert.Equal(t, "1h 30m", Duration{Hours: 1, Minutes: 30, Known: true}.String())
	assert.Equal(t, "0h 45m", Duration{Hours: 0, Minutes: 45, Known: true}.String())
	assert.Equal(t, "not available", Duration{}.String())
}

// TestElapsedOf checks the record-level duration derivation.
func TestElapsedOf(t *testing.T) {
	completed := domain.ServiceRecord{
		ReceiveTime:  "23:30:00",
		DeliveryTime: strPtr("00:15:00"),
	}
	assert.Equal(t, Duration{Hours: 0, Minutes: 45, Known: true}, ElapsedOf(&completed))

	open := domain.ServiceRecord{ReceiveTime: "09:00:00"}
	assert.Equal(t, Duration{}, ElapsedOf(&open))
	assert.Equal(t, "not available", ElapsedOf(&open).String())
}
