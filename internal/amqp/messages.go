package amqp

import (
	"encoding/json"
	"time"
)

// PositionSyncMessage tells the export worker that a position was appended.
// It carries only the reference id and chat; the worker fetches the full
// position from the database.
type PositionSyncMessage struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewPositionSyncMessage(id, chatID int64) *PositionSyncMessage {
	return &PositionSyncMessage{
		ID:        id,
		ChatID:    chatID,
		Timestamp: time.Now(),
	}
}

func (m *PositionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func PositionSyncMessageFromJSON(data []byte) (*PositionSyncMessage, error) {
	var msg PositionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
