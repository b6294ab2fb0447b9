package transport

import (
	"fmt"
	"time"
)

// FileMeta describes one downloadable payload attached to an inbound message.
type FileMeta struct {
	ID       string
	Size     int64
	MimeType string
	FileName string
}

// Message is the transport-neutral view of one inbound chat message.
type Message struct {
	ChatID    int64
	MessageID int
	UserID    int64
	Text      string
	Command   string

	Video    *FileMeta
	Document *FileMeta
	Photos   []FileMeta
}

// BestFile returns the most download-worthy payload of the message:
// the video if present, then a generic document, then the largest photo
// variant. Returns nil when the message carries no file at all.
func (m *Message) BestFile() *FileMeta {
	if m.Video != nil {
		return m.Video
	}
	if m.Document != nil {
		return m.Document
	}
	var best *FileMeta
	for i := range m.Photos {
		if best == nil || m.Photos[i].Size > best.Size {
			best = &m.Photos[i]
		}
	}
	return best
}

// ProgressFunc receives download progress as a percentage in [0, 100].
type ProgressFunc func(percent float64)

// RateLimitError signals flood control from the primary transport along with
// the wait the platform mandates before the next attempt.
type RateLimitError struct {
	Wait time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, wait %s", e.Wait)
}
