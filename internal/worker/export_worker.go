// Package worker drives the asynchronous sheet export: it turns queued
// position-appended events into spreadsheet rows.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"tgexp/internal/amqp"
	"tgexp/internal/core"
)

// PositionGetter loads a stored position by its reference id.
type PositionGetter interface {
	GetPosition(ctx context.Context, id int64) (core.Position, int64, error)
}

// PositionAppender writes one ledger row to the export target.
type PositionAppender interface {
	AppendPosition(ctx context.Context, chatID int64, p core.Position) error
}

type ExportWorker struct {
	storage  PositionGetter
	exporter PositionAppender
}

func NewExportWorker(storage PositionGetter, exporter PositionAppender) *ExportWorker {
	return &ExportWorker{
		storage:  storage,
		exporter: exporter,
	}
}

// HandleSyncMessage processes one queued event. Errors propagate to the
// consumer, which nacks for redelivery.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.PositionSyncMessage) error {
	slog.InfoContext(ctx, "Processing position sync message",
		"id", msg.ID,
		"chat_id", msg.ChatID)

	position, chatID, err := w.storage.GetPosition(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get position from storage: %w", err)
	}

	if err := w.exporter.AppendPosition(ctx, chatID, position); err != nil {
		return fmt.Errorf("export position: %w", err)
	}

	return nil
}
