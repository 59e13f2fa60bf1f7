package web

import (
	"net/http"
	"testing"
	"time"

	"github.com/adrichey/go-chip8vm/emulator"
	"github.com/adrichey/go-chip8vm/runner"
	"github.com/gorilla/websocket"
	"github.com/retroenv/retrogolib/assert"
)

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()

	conn, resp, err := websocket.DefaultDialer.Dial("ws://"+s.Addr()+"/ws", nil)
	assert.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) []byte {
	t.Helper()

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	kind, msg, err := conn.ReadMessage()
	assert.NoError(t, err)
	assert.Equal(t, websocket.BinaryMessage, kind)
	return msg
}

// pollUntil polls like the runner does until cond holds.
func pollUntil(t *testing.T, s *Server, keys *emulator.Keypad, cond func(runner.Event) bool) {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond(s.Poll(keys)) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestServer(t *testing.T) {
	s, err := Listen("127.0.0.1:0", nil)
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	conn := dial(t, s)
	var keys emulator.Keypad

	// key input reaches the keypad
	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{Key, 0xA, 1}))
	pollUntil(t, s, &keys, func(runner.Event) bool { return keys.Pressed(0xA) })

	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{Key, 0xA, 0}))
	pollUntil(t, s, &keys, func(runner.Event) bool { return !keys.Pressed(0xA) })

	assert.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte{Reset}))
	pollUntil(t, s, &keys, func(ev runner.Event) bool { return ev == runner.EventReset })

	// frames go out once per distinct screen
	c8 := emulator.New(emulator.Options{})
	fb := c8.FrameBuffer()
	assert.NoError(t, s.Present(fb))
	assert.False(t, fb.Dirty())
	assert.NoError(t, s.Present(fb))

	assert.NoError(t, s.SetTone(true))
	assert.NoError(t, s.SetTone(true))

	msg := readMessage(t, conn)
	assert.Equal(t, Frame, msg[0])
	assert.Equal(t, 257, len(msg))

	// the repeated frame was skipped, next comes the tone
	assert.Equal(t, []byte{Tone, 1}, readMessage(t, conn))
}

func TestServerLateJoin(t *testing.T) {
	s, err := Listen("127.0.0.1:0", nil)
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	c8 := emulator.New(emulator.Options{})
	assert.NoError(t, c8.Load([]byte{0xA0, 0x50, 0xD0, 0x05}))
	assert.NoError(t, c8.Step())
	assert.NoError(t, c8.Step())
	assert.NoError(t, s.Present(c8.FrameBuffer()))

	// a browser that connects later gets the current screen straight away
	conn := dial(t, s)
	msg := readMessage(t, conn)
	assert.Equal(t, Frame, msg[0])
	assert.Equal(t, byte(0xF0), msg[1])
	assert.Equal(t, byte(0x90), msg[1+8])
}

func TestServerIndex(t *testing.T) {
	s, err := Listen("127.0.0.1:0", nil)
	assert.NoError(t, err)
	defer func() { _ = s.Close() }()

	resp, err := http.Get("http://" + s.Addr() + "/")
	assert.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing, err := http.Get("http://" + s.Addr() + "/nothing")
	assert.NoError(t, err)
	_ = missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
