package handlers

import (
	"io"
	"net/http"

	"leaguerats/internal/observer"

	"github.com/gin-gonic/gin"
)

// EventHandler streams observable values as server sent events.
type EventHandler struct {
	Registry *observer.Registry
}

type EventHandlerDependencies struct {
	Registry *observer.Registry
}

func NewEventHandler(deps *EventHandlerDependencies) *EventHandler {
	return &EventHandler{Registry: deps.Registry}
}

// GetTopics lists the topics that can be streamed.
func (h *EventHandler) GetTopics(c *gin.Context) {
	respondResult(c, h.Registry.Names())
}

// StreamTopic sends the current value, then every change until the client leaves.
// A slow client only gets the latest value.
func (h *EventHandler) StreamTopic(c *gin.Context) {
	topic, ok := h.Registry.Lookup(c.Param("topic"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown topic"})
		return
	}

	updates := make(chan []byte, 1)
	sub := topic.SubscribeJSON(func(data []byte) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- data:
		default:
		}
	})
	defer sub.Unsubscribe()

	initial, err := topic.JSON()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent(topic.Name(), string(initial))
	c.Writer.Flush()

	done := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-done:
			return false
		case data := <-updates:
			c.SSEvent(topic.Name(), string(data))
			return true
		}
	})
}
