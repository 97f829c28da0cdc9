package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsWriteWait = 10 * time.Second
	wsPongWait  = 60 * time.Second
	wsPingEvery = (wsPongWait * 9) / 10

	defaultRunTimeout     = 5 * time.Second
	defaultConsoleTimeout = 3 * time.Second
	defaultInspectTimeout = 3 * time.Second
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		// The extension content script connects from the editor origin.
		return true
	},
}

type wsRequest struct {
	ID      uint64          `json:"id"`
	Op      string          `json:"op"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type wsResponse struct {
	ID          uint64          `json:"id"`
	Success     bool            `json:"success"`
	Message     string          `json:"message,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
	Data        json.RawMessage `json:"data,omitempty"`
	Tasks       []Task          `json:"tasks,omitempty"`
}

// Timeouts bounds each bridge operation; zero fields take defaults.
type Timeouts struct {
	Run     time.Duration
	Console time.Duration
	Inspect time.Duration
}

func (t Timeouts) withDefaults() Timeouts {
	if t.Run <= 0 {
		t.Run = defaultRunTimeout
	}
	if t.Console <= 0 {
		t.Console = defaultConsoleTimeout
	}
	if t.Inspect <= 0 {
		t.Inspect = defaultInspectTimeout
	}
	return t
}

// WSBridge talks to the extension content script over a websocket. One page
// connection is active at a time; a new connection replaces the previous
// one. Requests carry an id and are matched to page responses by that id,
// with a bounded wait per operation.
type WSBridge struct {
	timeouts Timeouts

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[uint64]chan wsResponse
	nextID  uint64
}

func NewWSBridge(timeouts Timeouts) *WSBridge {
	return &WSBridge{
		timeouts: timeouts.withDefaults(),
		pending:  make(map[uint64]chan wsResponse),
	}
}

// Connected reports whether an editor page is currently attached.
func (b *WSBridge) Connected() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn != nil
}

// HandleWS upgrades the content-script connection and pumps responses until
// the page goes away.
func (b *WSBridge) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.attach(conn)
	defer b.detach(conn)

	if err := conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		log.Printf("bridge: set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	stop := make(chan struct{})
	defer close(stop)
	go b.pingLoop(conn, stop)

	for {
		var resp wsResponse
		if err := conn.ReadJSON(&resp); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("bridge: page connection dropped: %v", err)
			}
			return
		}
		b.deliver(resp)
	}
}

func (b *WSBridge) pingLoop(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(wsPingEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteWait)); err != nil {
				return
			}
		case <-stop:
			return
		}
	}
}

func (b *WSBridge) attach(conn *websocket.Conn) {
	b.mu.Lock()
	old := b.conn
	b.conn = conn
	b.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	log.Printf("bridge: editor page connected")
}

func (b *WSBridge) detach(conn *websocket.Conn) {
	b.mu.Lock()
	if b.conn == conn {
		b.conn = nil
	}
	// Fail any requests still waiting on this connection.
	for id, ch := range b.pending {
		close(ch)
		delete(b.pending, id)
	}
	b.mu.Unlock()
	_ = conn.Close()
	log.Printf("bridge: editor page disconnected")
}

func (b *WSBridge) deliver(resp wsResponse) {
	b.mu.Lock()
	ch, ok := b.pending[resp.ID]
	if ok {
		delete(b.pending, resp.ID)
	}
	b.mu.Unlock()
	if ok {
		ch <- resp
	}
}

// request sends one op frame and waits for the matching response, the
// timeout, or context cancellation, whichever comes first.
func (b *WSBridge) request(ctx context.Context, op string, payload any, timeout time.Duration) (wsResponse, error) {
	b.mu.Lock()
	conn := b.conn
	if conn == nil {
		b.mu.Unlock()
		return wsResponse{}, ErrNoPage
	}
	id := atomic.AddUint64(&b.nextID, 1)
	ch := make(chan wsResponse, 1)
	b.pending[id] = ch
	b.mu.Unlock()

	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			b.abandon(id)
			return wsResponse{}, err
		}
	}

	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(wsRequest{ID: id, Op: op, Payload: raw}); err != nil {
		b.abandon(id)
		return wsResponse{}, fmt.Errorf("bridge: write %s: %w", op, err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case resp, ok := <-ch:
		if !ok {
			return wsResponse{}, ErrNoPage
		}
		return resp, nil
	case <-timer.C:
		b.abandon(id)
		return wsResponse{}, fmt.Errorf("bridge: %s timed out after %s: %w", op, timeout, ErrNoPage)
	case <-ctx.Done():
		b.abandon(id)
		return wsResponse{}, ctx.Err()
	}
}

func (b *WSBridge) abandon(id uint64) {
	b.mu.Lock()
	delete(b.pending, id)
	b.mu.Unlock()
}

func (b *WSBridge) RunCode(ctx context.Context, code string) (RunResult, error) {
	resp, err := b.request(ctx, "run_code", map[string]string{"code": code}, b.timeouts.Run)
	if err != nil {
		return RunResult{}, err
	}
	return RunResult{Success: resp.Success, Message: resp.Message}, nil
}

func (b *WSBridge) CheckConsole(ctx context.Context) (ConsoleResult, error) {
	resp, err := b.request(ctx, "check_console", nil, b.timeouts.Console)
	if err != nil {
		return ConsoleResult{}, err
	}
	return ConsoleResult{Success: resp.Success, Diagnostics: resp.Diagnostics}, nil
}

func (b *WSBridge) InspectPoint(ctx context.Context, lon, lat float64) (InspectResult, error) {
	resp, err := b.request(ctx, "inspect_point", map[string]float64{"lon": lon, "lat": lat}, b.timeouts.Inspect)
	if err != nil {
		return InspectResult{}, err
	}
	return InspectResult{Success: resp.Success, Data: resp.Data}, nil
}

func (b *WSBridge) ListTasks(ctx context.Context) ([]Task, error) {
	resp, err := b.request(ctx, "list_tasks", nil, b.timeouts.Console)
	if err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (b *WSBridge) EditScript(ctx context.Context, name, content string) error {
	resp, err := b.request(ctx, "edit_script", map[string]string{"name": name, "content": content}, b.timeouts.Run)
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("bridge: edit_script rejected: %s", resp.Message)
	}
	return nil
}
