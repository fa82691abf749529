package ws

import (
	"log"
	"net/http"
	"sync"

	"github.com/cb023725/pos-project/entity"
	"github.com/cb023725/pos-project/repository"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// TableHub pushes the table-overview snapshot to every connected till screen
// after each committed lifecycle transaction, so the floor plan never polls.
type TableHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []entity.TableRecord
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
	tableRepo  *repository.TableRepository
}

func NewTableHub(tableRepo *repository.TableRepository) *TableHub {
	return &TableHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []entity.TableRecord, 8),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		tableRepo:  tableRepo,
	}
}

func (h *TableHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case snapshot := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(snapshot); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// NotifyTablesChanged reloads the mirror records and queues a broadcast.
// Wired as the lifecycle service's OnCommit hook.
func (h *TableHub) NotifyTablesChanged() {
	tables, err := h.tableRepo.List()
	if err != nil {
		log.Printf("ws snapshot load failed: %v", err)
		return
	}
	select {
	case h.broadcast <- tables:
	default:
		// a queued snapshot is already pending; the newest state wins anyway
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/tables
func (h *TableHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}
	h.register <- conn

	// initial snapshot so the screen renders without waiting for a commit
	if tables, err := h.tableRepo.List(); err == nil {
		if err := conn.WriteJSON(tables); err != nil {
			h.unregister <- conn
			return
		}
	}

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			// clients never send payloads; reads only surface disconnects
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
