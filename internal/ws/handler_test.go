package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/attack15/internal/engine"
	"github.com/DoyleJ11/attack15/internal/hub"
	"github.com/DoyleJ11/attack15/internal/session"
	"github.com/DoyleJ11/attack15/internal/types"
)

func intp(v int) *int { return &v }

func TestToEngineCommand(t *testing.T) {
	cases := []struct {
		name   string
		msg    types.ClientMessage
		want   engine.Command
		wantOK bool
	}{
		{name: "start", msg: types.ClientMessage{Type: "Start"}, want: engine.Command{Type: engine.CmdStartRound}, wantOK: true},
		{name: "menu", msg: types.ClientMessage{Type: "Menu"}, want: engine.Command{Type: engine.CmdReturnToMenu}, wantOK: true},
		{
			name:   "click by index",
			msg:    types.ClientMessage{Type: "Click", Index: intp(0)},
			want:   engine.Command{Type: engine.CmdClickPanel, Index: 0},
			wantOK: true,
		},
		{
			name:   "click by point",
			msg:    types.ClientMessage{Type: "Click", X: intp(400), Y: intp(300)},
			want:   engine.Command{Type: engine.CmdClickPoint, Point: engine.Point{X: 400, Y: 300}},
			wantOK: true,
		},
		{name: "click without target", msg: types.ClientMessage{Type: "Click", X: intp(1)}, wantOK: false},
		{name: "tick is server-side only", msg: types.ClientMessage{Type: "Tick"}, wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := toEngineCommand(tc.msg)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func readSnapshot(t *testing.T, ctx context.Context, conn *websocket.Conn) types.ServerMessage {
	t.Helper()
	var msg types.ServerMessage
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	return msg
}

func TestHandler_StartRoundOverWebsocket(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h := hub.NewHub(ctx, engine.DefaultRules(), session.Options{})
	reply := make(chan *session.Session, 1)
	h.Inbox() <- hub.CreateSession{Code: "PLAY01", Reply: reply}
	require.NotNil(t, <-reply)

	srv := httptest.NewServer(Handler(h, Options{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "?code=PLAY01"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	first := readSnapshot(t, ctx, conn)
	require.Equal(t, "StateSnapshot", first.Type)
	require.Equal(t, engine.ScreenMenu, first.State.Screen)

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: "Start"}))
	started := readSnapshot(t, ctx, conn)
	require.Equal(t, engine.ScreenPlaying, started.State.Screen)
	require.Len(t, started.State.Panels, 9)

	require.NoError(t, wsjson.Write(ctx, conn, types.ClientMessage{Type: "Bogus"}))
	for {
		msg := readSnapshot(t, ctx, conn)
		if msg.Type == "Error" {
			require.Equal(t, "unknown type", msg.Error)
			break
		}
	}
}

func TestHandler_UnknownSession(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := hub.NewHub(ctx, engine.DefaultRules(), session.Options{})

	srv := httptest.NewServer(Handler(h, Options{}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	_, resp, err := websocket.Dial(ctx, url+"?code=NOPE00", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 404, resp.StatusCode)

	_, resp, err = websocket.Dial(ctx, url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 400, resp.StatusCode)
}
