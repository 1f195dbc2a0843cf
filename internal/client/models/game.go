package models

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Quantity    int
}

type Memory struct {
	ID      string
	Title   string
	Content string
	Date    string
	Tags    []string
}

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderFirefly Sender = "firefly"
	SenderNPC     Sender = "npc"
	SenderSystem  Sender = "system"
)

type Message struct {
	ID        string
	Sender    Sender
	NPCName   string
	Content   string
	Narration string
	Timestamp time.Time
}

// NewUserMessage builds the local echo of something the player typed.
func NewUserMessage(content string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    SenderUser,
		Content:   content,
		Timestamp: now,
	}
}

// Speaker is the display name for the message's author.
func (m Message) Speaker() string {
	switch m.Sender {
	case SenderUser:
		return "you"
	case SenderFirefly:
		return "Firefly"
	case SenderNPC:
		if m.NPCName != "" {
			return m.NPCName
		}
		return "npc"
	default:
		return string(m.Sender)
	}
}

// FireflyAsset maps an emotion key to a portrait image URL.
type FireflyAsset struct {
	Emotion string
	URL     string
}

type GameState struct {
	CurrentLocation      Location
	LocationDynamicState string
	FireflyEmotion       string
	FireflyStatus        string
	FireflyMoodDetails   string
	GameTime             string
	Items                []Item
	Memories             []Memory
	UserName             string
}

type LocationUpdate struct {
	ID            string
	Name          string
	BackgroundURL string
}

type FireflyUpdate struct {
	Emotion string
	Status  string
}

type InventoryChange struct {
	ItemID string
	Delta  int
}

// StateUpdate is the optional delta the backend attaches to a chat reply.
type StateUpdate struct {
	Location        *LocationUpdate
	Firefly         *FireflyUpdate
	InventoryChange *InventoryChange
}

// ChatResult is the outcome of a chat turn or a memory recall.
type ChatResult struct {
	Replies     []Message
	State       GameState
	StateUpdate *StateUpdate
	SessionID   string
}
