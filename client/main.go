package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Action   string `json:"action"`
	ClientID string `json:"client_id,omitempty"`
	Username string `json:"username,omitempty"`
	Team     int    `json:"team,omitempty"`
	Score    int    `json:"score,omitempty"`
}

func send(c *websocket.Conn, env envelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	log.Printf("-> SENT: %s", data)
	return c.WriteMessage(websocket.TextMessage, data)
}

func main() {
	addr := flag.String("addr", "localhost:8080", "server address")
	roomID := flag.String("room", "lobby", "room to join")
	clientID := flag.String("client", "cli", "client id")
	username := flag.String("name", "cli-player", "display name")
	flag.Parse()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	u := url.URL{Scheme: "ws", Host: *addr, Path: fmt.Sprintf("/ws/%s/%s", *roomID, *clientID)}
	log.Printf("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				log.Println("Read error:", err)
				return
			}
			log.Printf("<- RECV: %s", string(message))
		}
	}()

	log.Println("Joining room...")
	if err := send(c, envelope{Action: "connect", ClientID: *clientID, Username: *username}); err != nil {
		log.Println("Write error:", err)
		return
	}

	log.Println("Commands: team red|blue|none, start, end, score <n> [client], next, timer, get, quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-done:
			return
		case <-interrupt:
			log.Println("Interrupt received, closing connection.")
			err := c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			if err != nil {
				log.Println("Write close error:", err)
			}
			select {
			case <-done:
			case <-time.After(time.Second):
			}
			return
		default:
			text, _ := reader.ReadString('\n')
			fields := strings.Fields(strings.TrimSpace(text))
			if len(fields) == 0 {
				continue
			}

			env, ok := buildEnvelope(fields, *clientID)
			if !ok {
				if fields[0] == "quit" {
					return
				}
				log.Printf("Unknown command %q", fields[0])
				continue
			}
			if err := send(c, env); err != nil {
				log.Println("Write error:", err)
				return
			}
		}
	}
}

func buildEnvelope(fields []string, clientID string) (envelope, bool) {
	switch fields[0] {
	case "get":
		return envelope{Action: "get_data"}, true
	case "team":
		team := 0
		if len(fields) > 1 {
			switch fields[1] {
			case "red":
				team = 1
			case "blue":
				team = 2
			}
		}
		return envelope{Action: "set_team", ClientID: clientID, Team: team}, true
	case "start":
		return envelope{Action: "start_game"}, true
	case "end":
		return envelope{Action: "end_game"}, true
	case "score":
		delta := 1
		target := clientID
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil {
				delta = n
			}
		}
		if len(fields) > 2 {
			target = fields[2]
		}
		return envelope{Action: "score", ClientID: target, Score: delta}, true
	case "next":
		return envelope{Action: "next_turn"}, true
	case "timer":
		return envelope{Action: "timer", ClientID: clientID}, true
	default:
		return envelope{}, false
	}
}
