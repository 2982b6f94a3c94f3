package bridge

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, v any) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, v))
	return buf.Bytes()
}

func TestReadWriteFrame(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, map[string]string{"command": "get_lang"}))

	assert.Equal(t, uint32(buf.Len()-4), binary.LittleEndian.Uint32(buf.Bytes()[:4]))

	data, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.JSONEq(t, `{"command":"get_lang"}`, string(data))

	_, err = ReadFrame(&buf)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrame_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr string
	}{
		{"zero length", []byte{0, 0, 0, 0}, "invalid message length"},
		{"too large", binary.LittleEndian.AppendUint32(nil, MaxMessageSize+1), "message too large"},
		{"truncated body", append(binary.LittleEndian.AppendUint32(nil, 10), 'x'), "failed to read message body"},
		{"truncated length", []byte{1, 0}, "failed to read message length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFrame(bytes.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWriteFrame_TooLarge(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFrame(&buf, strings.Repeat("x", MaxMessageSize))
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func readResponses(t *testing.T, r io.Reader) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		data, err := ReadFrame(r)
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		out = append(out, m)
	}
}

func TestStdioServer_Serve(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var in bytes.Buffer
	in.Write(frame(t, Request{ID: "1", Command: "add_category", Args: json.RawMessage(`{"category":"Dev"}`)}))
	in.Write(frame(t, Request{ID: "2", Command: "get_category_list"}))
	in.Write(frame(t, "not a request"))
	in.Write(frame(t, Request{ID: "3", Command: "nope"}))

	var out bytes.Buffer
	srv := NewStdioServer(&in, &out, nil)
	require.NoError(t, srv.Serve(context.Background(), d))

	resps := readResponses(t, &out)
	require.Len(t, resps, 4)

	assert.Equal(t, "1", resps[0]["id"])
	assert.Equal(t, true, resps[0]["result"])
	assert.Equal(t, []any{"Dev"}, resps[1]["result"])
	assert.Contains(t, resps[2]["error"], "failed to unmarshal request")
	assert.Contains(t, resps[3]["error"], "unknown command")
}

func TestStdioServer_EventsShareOutput(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var out bytes.Buffer
	srv := NewStdioServer(bytes.NewReader(nil), &out, nil)
	d.svc.SetPublisher(srv)
	d.svc.SetWindow(srv)

	resp := call(t, d, "add_category", map[string]any{"category": "Dev"})
	require.Equal(t, true, resp.Result)
	require.Empty(t, call(t, d, "show_window", nil).Error)

	msgs := readResponses(t, &out)
	require.Len(t, msgs, 2)
	assert.Equal(t, string(EventCatalogChanged), msgs[0]["type"])
	assert.Equal(t, map[string]any{"command": "add_category"}, msgs[0]["data"])
	assert.Equal(t, string(EventWindowShow), msgs[1]["type"])
}

func TestStdioServer_StopsOnCancel(t *testing.T) {
	d, _ := newTestDispatcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	in := bytes.NewReader(frame(t, Request{ID: "1", Command: "get_lang"}))
	var out bytes.Buffer
	require.NoError(t, NewStdioServer(in, &out, nil).Serve(ctx, d))
	assert.Zero(t, out.Len())
}

func TestStdioServer_BrokenStream(t *testing.T) {
	d, _ := newTestDispatcher(t)

	in := bytes.NewReader([]byte{0, 0, 0, 0})
	err := NewStdioServer(in, io.Discard, nil).Serve(context.Background(), d)
	assert.Error(t, err)
}
