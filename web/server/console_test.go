package server

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestConsoleHandler_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := slog.New(NewConsoleHandler(messageChan, slog.LevelInfo, nil))

	logger.Info("Test log message", "tiles", 4)

	select {
	case msg := <-messageChan:
		expectedMessage := "Test log message tiles=4"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestConsoleHandler_Levels(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := slog.New(NewConsoleHandler(messageChan, slog.LevelInfo, nil))

	logger.Debug("hidden")
	logger.Info("one")
	logger.Warn("two")
	logger.Error("three")

	expected := []string{"info", "warning", "error"}
	if len(messageChan) != len(expected) {
		t.Fatalf("Expected %d messages, got %d", len(expected), len(messageChan))
	}
	for i, level := range expected {
		msg := <-messageChan
		if msg.Level != level {
			t.Errorf("Message %d: expected level %s, got %s", i, level, msg.Level)
		}
	}
}

func TestConsoleHandler_WithAttrs(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	var serverLog bytes.Buffer
	next := slog.NewTextHandler(&serverLog, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewConsoleHandler(messageChan, slog.LevelInfo, next)).With("scene", "cornell-box")

	logger.Debug("tile complete", "tile", 3)
	logger.Info("rendering")

	msg := <-messageChan
	if msg.Message != "rendering scene=cornell-box" {
		t.Errorf("Unexpected console message %q", msg.Message)
	}
	if len(messageChan) != 0 {
		t.Errorf("Debug record should not reach the console")
	}

	// The next handler still sees everything it is enabled for
	if !strings.Contains(serverLog.String(), "tile complete") || !strings.Contains(serverLog.String(), "scene=cornell-box") {
		t.Errorf("Server log missing records: %s", serverLog.String())
	}
}

func TestConsoleHandler_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := slog.New(NewConsoleHandler(messageChan, slog.LevelInfo, nil))

	done := make(chan bool)
	go func() {
		logger.Info("Message 1")
		logger.Info("Message 2")
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Error("Logger blocked when channel was full")
	}

	if msg := <-messageChan; msg.Message != "Message 1" {
		t.Errorf("Expected the first message to be kept, got %q", msg.Message)
	}
}
