package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

// fakeSender records deliveries; pinned controls whether it also implements
// Pinner.
type fakeSender struct {
	name   string
	pinned bool
	err    error

	sent []string
	pins []string
}

func (f *fakeSender) Send(_ context.Context, title, _ string) error {
	f.sent = append(f.sent, title)
	return f.err
}

func (f *fakeSender) Name() string { return f.name }

// pinSender layers Pinner on top of fakeSender.
type pinSender struct {
	fakeSender
}

func (p *pinSender) SendPinned(_ context.Context, title, _ string) error {
	p.pins = append(p.pins, title)
	return p.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifyFiltersEvents(t *testing.T) {
	s := &fakeSender{name: "fake"}
	n := NewNotifier([]Sender{s}, []string{"picks"}, testLogger())

	if err := n.Notify(context.Background(), "board", "Game boards", "body"); err != nil {
		t.Fatalf("filtered event returned error: %v", err)
	}
	if len(s.sent) != 0 {
		t.Errorf("filtered event was delivered: %v", s.sent)
	}

	if err := n.Notify(context.Background(), "picks", "Edge picks", "body"); err != nil {
		t.Fatalf("allowed event returned error: %v", err)
	}
	if len(s.sent) != 1 {
		t.Errorf("allowed event deliveries = %v, want one", s.sent)
	}
}

func TestNotifyPinnedHonorsEventFilter(t *testing.T) {
	p := &pinSender{fakeSender: fakeSender{name: "telegram"}}
	n := NewNotifier([]Sender{p}, []string{"picks"}, testLogger())

	if err := n.NotifyPinned(context.Background(), "board", "Game boards", "body"); err != nil {
		t.Fatalf("filtered pinned event returned error: %v", err)
	}
	if len(p.pins) != 0 || len(p.sent) != 0 {
		t.Errorf("filtered event was pinned or delivered: pins=%v sent=%v", p.pins, p.sent)
	}
}

func TestNotifyPinnedDispatch(t *testing.T) {
	p := &pinSender{fakeSender: fakeSender{name: "telegram"}}
	plain := &fakeSender{name: "discord"}
	n := NewNotifier([]Sender{p, plain}, nil, testLogger())

	if err := n.NotifyPinned(context.Background(), "board", "Game boards", "body"); err != nil {
		t.Fatalf("NotifyPinned: %v", err)
	}
	if len(p.pins) != 1 {
		t.Errorf("pin-capable sender pins = %v, want one", p.pins)
	}
	if len(plain.sent) != 1 {
		t.Errorf("plain sender deliveries = %v, want the unpinned message", plain.sent)
	}
}

func TestNotifyCollectsSenderFailures(t *testing.T) {
	bad := &fakeSender{name: "telegram", err: errors.New("boom")}
	good := &fakeSender{name: "discord"}
	n := NewNotifier([]Sender{bad, good}, nil, testLogger())

	err := n.Notify(context.Background(), "picks", "Edge picks", "body")
	if err == nil {
		t.Fatal("expected a combined error")
	}
	if !strings.Contains(err.Error(), "telegram") {
		t.Errorf("error = %v, want the failing sender named", err)
	}
	if len(good.sent) != 1 {
		t.Error("one sender's failure blocked delivery to the rest")
	}
}
