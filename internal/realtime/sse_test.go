package realtime

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, input string) []Event {
	t.Helper()
	r := newEventReader(strings.NewReader(input))
	var events []Event
	for {
		ev, err := r.next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestEventReader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Event
	}{
		{
			name:  "single event with class",
			input: "event: new_notification\ndata: {\"message\":\"hi\"}\n\n",
			want:  []Event{{Name: "new_notification", Data: []byte(`{"message":"hi"}`)}},
		},
		{
			name:  "default event class",
			input: "data: x\n\n",
			want:  []Event{{Name: "", Data: []byte("x")}},
		},
		{
			name:  "multiple data lines joined with newline",
			input: "data: a\ndata: b\n\n",
			want:  []Event{{Name: "", Data: []byte("a\nb")}},
		},
		{
			name:  "comments and unknown fields skipped",
			input: ": keepalive\nid: 7\nretry: 100\nevent: e\ndata: d\n\n",
			want:  []Event{{Name: "e", Data: []byte("d")}},
		},
		{
			name:  "two events",
			input: "event: a\ndata: 1\n\nevent: b\ndata: 2\n\n",
			want:  []Event{{Name: "a", Data: []byte("1")}, {Name: "b", Data: []byte("2")}},
		},
		{
			name:  "event type does not leak across blank blocks",
			input: "event: a\n\ndata: 1\n\n",
			want:  []Event{{Name: "", Data: []byte("1")}},
		},
		{
			name:  "crlf line endings",
			input: "event: a\r\ndata: 1\r\n\r\n",
			want:  []Event{{Name: "a", Data: []byte("1")}},
		},
		{
			name:  "final event without trailing blank line",
			input: "event: a\ndata: 1\n",
			want:  []Event{{Name: "a", Data: []byte("1")}},
		},
		{
			name:  "empty stream",
			input: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, readAll(t, tt.input))
		})
	}
}
