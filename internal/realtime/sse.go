package realtime

import (
	"bufio"
	"io"
	"strings"
)

// Event is a single server push event read off the wire. Name is the event
// class from the "event:" field ("" for the default class); Data is the
// payload assembled from the "data:" lines.
type Event struct {
	Name string
	Data []byte
}

// eventReader parses a text/event-stream body. Events are separated by
// blank lines; comment lines (leading ":") and unknown fields are skipped.
type eventReader struct {
	r *bufio.Reader
}

func newEventReader(r io.Reader) *eventReader {
	return &eventReader{r: bufio.NewReaderSize(r, 32*1024)}
}

// next returns the next complete event, or io.EOF when the stream ends.
// A final event without a trailing blank line is still delivered before EOF
// is reported on the following call.
func (er *eventReader) next() (Event, error) {
	var name string
	var data []string

	flush := func() Event {
		return Event{Name: name, Data: []byte(strings.Join(data, "\n"))}
	}

	for {
		line, err := er.r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")

		if err != nil {
			if line == "" && len(data) == 0 {
				if err == io.EOF {
					return Event{}, io.EOF
				}
				return Event{}, err
			}
			// Partial trailing event: deliver it now, report the error on
			// the next call.
			if line != "" {
				parseField(line, &name, &data)
			}
			if len(data) > 0 {
				return flush(), nil
			}
			return Event{}, err
		}

		if line == "" {
			if len(data) > 0 {
				return flush(), nil
			}
			name = ""
			continue
		}

		if strings.HasPrefix(line, ":") {
			continue
		}
		parseField(line, &name, &data)
	}
}

func parseField(line string, name *string, data *[]string) {
	field, value, ok := strings.Cut(line, ":")
	if !ok {
		field, value = line, ""
	} else {
		// One leading space after the colon is part of the syntax.
		value = strings.TrimPrefix(value, " ")
	}

	switch field {
	case "data":
		*data = append(*data, value)
	case "event":
		*name = value
	default:
		// "id", "retry" and unknown fields are not used by this client.
	}
}
