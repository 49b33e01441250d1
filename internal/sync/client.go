package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
)

// Listen connects to a TCP sync server and calls fn with every raw line
// until ctx is cancelled or the connection drops.
func Listen(ctx context.Context, addr string, fn func(line []byte)) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fn(sc.Bytes())
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", addr, err)
	}
	return io.EOF
}

// DecodeEvent parses a broadcast line. Welcome lines and other message types
// report ok=false.
func DecodeEvent(line []byte) (RegistrationEvent, bool) {
	var ev RegistrationEvent
	if err := json.Unmarshal(line, &ev); err != nil {
		return RegistrationEvent{}, false
	}
	switch ev.Type {
	case EventCreated, EventUpdated, EventDeleted:
		return ev, true
	}
	return RegistrationEvent{}, false
}
