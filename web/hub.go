package web

// hub keeps the set of connected browsers and fans every message out to
// all of them. Everything it owns is only touched by run().
type hub struct {
	clients map[*client]bool

	broadcast            chan []byte
	register, unregister chan *client

	// browser input, drained by Server.Poll
	input chan input

	// sent to clients when they connect
	lastFrame, lastTone []byte

	done chan struct{}
}

func newHub() *hub {
	return &hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 16),
		register:   make(chan *client),
		unregister: make(chan *client),
		input:      make(chan input, 256),
		done:       make(chan struct{}),
	}
}

func (h *hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			for _, msg := range [][]byte{h.lastFrame, h.lastTone} {
				if msg != nil {
					h.send(c, msg)
				}
			}
		case c := <-h.unregister:
			h.drop(c)
		case msg := <-h.broadcast:
			switch msg[0] {
			case Frame:
				h.lastFrame = msg
			case Tone:
				h.lastTone = msg
			}
			for c := range h.clients {
				h.send(c, msg)
			}
		case <-h.done:
			for c := range h.clients {
				h.drop(c)
			}
			return
		}
	}
}

// send drops clients that don't keep up.
func (h *hub) send(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		h.drop(c)
	}
}

func (h *hub) drop(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *hub) stop() {
	close(h.done)
}
