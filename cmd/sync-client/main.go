package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	synchub "musicreg/internal/sync"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7070", "TCP sync server address")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		err := synchub.Listen(ctx, *addr, func(line []byte) { printLine(line, *pretty) })
		if ctx.Err() != nil {
			return
		}
		log.Printf("[sync-client] disconnected: %v", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second): // auto reconnect
		}
	}
}

func printLine(line []byte, pretty bool) {
	if !pretty {
		fmt.Println(string(line))
		return
	}
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		// not JSON? print raw
		fmt.Println(string(line))
		return
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Println(string(b))
}
