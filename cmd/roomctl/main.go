// Command roomctl is an interactive terminal client for a Monopoly Deal
// server: it creates a room over the REST API (or takes an existing room
// code), then joins and drives the table over the websocket connection.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"monopolydeal-server/internal/delivery/dto"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	defaultServerAddr = "localhost:3001"
	cliName            = "Monopoly Deal roomctl"
	cliVersion          = "1.0.0"
)

// Client drives one websocket connection to a room.
type Client struct {
	conn     *websocket.Conn
	playerID string
	roomCode string
	done     chan struct{}
	closed   bool
	ui       *UI
}

func main() {
	fmt.Printf("%s v%s\n", cliName, cliVersion)
	fmt.Println("Type 'help' for available commands or 'quit' to exit")
	fmt.Println()

	serverAddr := defaultServerAddr
	if len(os.Args) > 1 {
		serverAddr = os.Args[1]
	}

	client := &Client{
		playerID: "roomctl-" + uuid.New().String()[:8],
		done:     make(chan struct{}),
		ui:       NewUI(),
	}

	roomCode := promptRoomCode(serverAddr)

	if err := client.connect(serverAddr); err != nil {
		fmt.Printf("failed to connect to server: %v\n", err)
		os.Exit(1)
	}
	defer client.conn.Close()

	fmt.Printf("connected to %s as %s\n", serverAddr, client.playerID)

	name := client.playerID
	client.sendEnvelope("establish_connection", map[string]interface{}{
		"player_id": client.playerID,
		"roomCode":  roomCode,
		"name":      name,
	})
	client.roomCode = roomCode

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	go client.readMessages()

	go func() {
		<-interrupt
		fmt.Println("\nshutting down roomctl...")
		if !client.closed {
			client.closed = true
			close(client.done)
		}
		client.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		time.Sleep(200 * time.Millisecond)
		os.Exit(0)
	}()

	client.commandLoop()
}

// promptRoomCode creates a room via the REST API if the user asks for one,
// or reads an existing room code to join.
func promptRoomCode(serverAddr string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("room code to join (blank to create a new room): ")
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line != "" {
		return strings.ToUpper(line)
	}

	resp, err := http.Post(fmt.Sprintf("http://%s/api/room/create", serverAddr), "application/json", bytes.NewReader([]byte(`{}`)))
	if err != nil {
		fmt.Printf("failed to create room: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	var created struct {
		RoomCode string `json:"roomCode"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		fmt.Printf("failed to parse room creation response: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("created room %s\n", created.RoomCode)
	return created.RoomCode
}

func (c *Client) connect(serverAddr string) error {
	u := url.URL{Scheme: "ws", Host: serverAddr, Path: "/ws"}
	var err error
	c.conn, _, err = websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial error: %w", err)
	}
	return nil
}

func (c *Client) sendEnvelope(action string, fields map[string]interface{}) {
	fields["action"] = action
	if err := c.conn.WriteJSON(fields); err != nil {
		fmt.Printf("send error: %v\n", err)
	}
}

func (c *Client) readMessages() {
	for {
		select {
		case <-c.done:
			return
		default:
			var envelope dto.OutboundEnvelope
			if err := c.conn.ReadJSON(&envelope); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					fmt.Printf("websocket error: %v\n", err)
				}
				if !c.closed {
					c.closed = true
					close(c.done)
				}
				return
			}
			c.handleEnvelope(envelope)
		}
	}
}

func (c *Client) handleEnvelope(envelope dto.OutboundEnvelope) {
	switch envelope.Type {
	case "roster_update":
		var payload dto.RosterUpdatePayload
		if remarshal(envelope.Data, &payload) {
			c.ui.RenderRoster(payload)
		}
	case "game_update":
		var payload dto.GameUpdatePayload
		if remarshal(envelope.Data, &payload) {
			c.ui.RenderGameUpdate(c.playerID, payload)
		}
	case "rejection":
		var payload dto.RejectionPayload
		if remarshal(envelope.Data, &payload) {
			c.ui.RenderRejection(payload.Reason)
		}
	case "player_disconnected":
		var payload dto.PlayerDisconnectedPayload
		if remarshal(envelope.Data, &payload) {
			fmt.Printf("player %s disconnected\n", payload.PlayerID)
		}
	default:
		fmt.Printf("(%s) %v\n", envelope.Type, envelope.Data)
	}
}

func remarshal(data interface{}, dest interface{}) bool {
	raw, err := json.Marshal(data)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (c *Client) commandLoop() {
	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case <-c.done:
			return
		default:
		}

		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			close(c.done)
			return
		}
		c.dispatchCommand(line)
	}
}

func (c *Client) dispatchCommand(line string) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "help":
		printHelp()
	case "ready":
		c.sendEnvelope("player_ready", map[string]interface{}{"isReady": true})
	case "start":
		c.sendEnvelope("start_game", map[string]interface{}{"player": c.playerID})
	case "skip":
		c.sendEnvelope("skip_turn", map[string]interface{}{"player": c.playerID})
	case "bank":
		c.withCard(args, func(cardID int) map[string]interface{} {
			return map[string]interface{}{"player": c.playerID, "card": cardID}
		}, "to_bank")
	case "property":
		if len(args) < 2 {
			fmt.Println("usage: property <cardID> <color>")
			return
		}
		c.sendEnvelope("to_properties", map[string]interface{}{
			"player": c.playerID,
			"card":   map[string]interface{}{"id": atoiOrZero(args[0]), "currentColor": args[1]},
		})
	default:
		fmt.Printf("unknown command %q, type 'help'\n", cmd)
	}
}

func (c *Client) withCard(args []string, build func(int) map[string]interface{}, action string) {
	if len(args) < 1 {
		fmt.Println("usage: <command> <cardID>")
		return
	}
	c.sendEnvelope(action, build(atoiOrZero(args[0])))
}

func atoiOrZero(s string) int {
	var n int
	fmt.Sscanf(s, "%d", &n)
	return n
}

func printHelp() {
	fmt.Println(`commands:
  ready                  mark yourself ready in the lobby
  start                  start the game (once enough players are seated)
  skip                   skip your turn
  bank <cardID>          move a card from hand to your bank
  property <cardID> <color>  move a property card from hand to a color set
  quit                   disconnect and exit`)
}
