package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

type fakeConn struct {
	published  []*nats.Msg
	publishErr error
	flushErr   error
	flushed    int
}

func (f *fakeConn) PublishMsg(m *nats.Msg) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, m)
	return nil
}

func (f *fakeConn) FlushWithContext(ctx context.Context) error {
	f.flushed++
	return f.flushErr
}

func TestNATSMirror_Publish(t *testing.T) {
	conn := &fakeConn{}
	m := NewNATSMirror(conn, "cakekiosk.orders.finalized", "kiosk-07", time.Second)

	ticket := domain.Ticket{ID: 42, Size: "20", Total: decimal.NewFromInt(350)}
	require.NoError(t, m.Publish(context.Background(), ticket))

	require.Len(t, conn.published, 1)
	msg := conn.published[0]
	assert.Equal(t, "cakekiosk.orders.finalized", msg.Subject)
	assert.Equal(t, "kiosk-07-42", msg.Header.Get(nats.MsgIdHdr))
	assert.Equal(t, 1, conn.flushed)

	var got Message
	require.NoError(t, json.Unmarshal(msg.Data, &got))
	assert.Equal(t, "kiosk-07", got.KioskID)
	assert.Equal(t, int64(42), got.Ticket.ID)
	assert.True(t, decimal.NewFromInt(350).Equal(got.Ticket.Total))
}

func TestNATSMirror_PublishError(t *testing.T) {
	conn := &fakeConn{publishErr: nats.ErrConnectionClosed}
	m := NewNATSMirror(conn, "orders", "kiosk-01", time.Second)

	err := m.Publish(context.Background(), domain.Ticket{ID: 1})

	require.Error(t, err)
	assert.True(t, errors.Is(err, nats.ErrConnectionClosed))
	assert.Zero(t, conn.flushed)
}

func TestNATSMirror_FlushError(t *testing.T) {
	conn := &fakeConn{flushErr: context.DeadlineExceeded}
	m := NewNATSMirror(conn, "orders", "kiosk-01", 0)

	err := m.Publish(context.Background(), domain.Ticket{ID: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisabled(t *testing.T) {
	assert.NoError(t, Disabled{}.Publish(context.Background(), domain.Ticket{ID: 1}))
}
