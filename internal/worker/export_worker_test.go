package worker

import (
	"context"
	"errors"
	"testing"

	"tgexp/internal/amqp"
	"tgexp/internal/core"
)

type fakeGetter struct {
	positions map[int64]core.Position
	chatIDs   map[int64]int64
}

func (f *fakeGetter) GetPosition(_ context.Context, id int64) (core.Position, int64, error) {
	p, ok := f.positions[id]
	if !ok {
		return core.Position{}, 0, errors.New("not found")
	}
	return p, f.chatIDs[id], nil
}

type fakeAppender struct {
	appended []int64 // chat ids in append order
	err      error
}

func (f *fakeAppender) AppendPosition(_ context.Context, chatID int64, _ core.Position) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, chatID)
	return nil
}

func TestHandleSyncMessage(t *testing.T) {
	getter := &fakeGetter{
		positions: map[int64]core.Position{
			1: {Price: core.Money{Cents: 100}, Comment: "x", From: "a", FromID: 1, Timestamp: 1},
		},
		chatIDs: map[int64]int64{1: 42},
	}
	appender := &fakeAppender{}
	w := NewExportWorker(getter, appender)

	msg := &amqp.PositionSyncMessage{ID: 1, ChatID: 42}
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(appender.appended) != 1 || appender.appended[0] != 42 {
		t.Errorf("appended = %v, want [42]", appender.appended)
	}
}

func TestHandleSyncMessageUnknownPosition(t *testing.T) {
	w := NewExportWorker(&fakeGetter{}, &fakeAppender{})

	err := w.HandleSyncMessage(context.Background(), &amqp.PositionSyncMessage{ID: 99})
	if err == nil {
		t.Fatal("expected error for unknown position id")
	}
}

func TestHandleSyncMessageExportFailure(t *testing.T) {
	getter := &fakeGetter{
		positions: map[int64]core.Position{
			1: {Price: core.Money{Cents: 100}, Comment: "x", From: "a", FromID: 1, Timestamp: 1},
		},
		chatIDs: map[int64]int64{1: 42},
	}
	w := NewExportWorker(getter, &fakeAppender{err: errors.New("sheet unavailable")})

	err := w.HandleSyncMessage(context.Background(), &amqp.PositionSyncMessage{ID: 1, ChatID: 42})
	if err == nil {
		t.Fatal("export failure must propagate so the message is redelivered")
	}
}
