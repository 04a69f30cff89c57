package core

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const botID = "bot-1"

type sentReply struct {
	MessageID string
	Content   string
}

type deletedMessage struct {
	ChannelID string
	MessageID string
}

type fakeChat struct {
	mu        sync.Mutex
	replies   []sentReply
	deleted   []deletedMessage
	replyErr  error
	deleteErr error
}

func (f *fakeChat) Reply(_ context.Context, msg *Message, content string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replyErr != nil {
		return "", f.replyErr
	}
	f.replies = append(f.replies, sentReply{MessageID: msg.ID, Content: content})
	return "reply-" + msg.ID, nil
}

func (f *fakeChat) DeleteMessage(_ context.Context, channelID, messageID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, deletedMessage{ChannelID: channelID, MessageID: messageID})
	return nil
}

type mapCache map[string]string

func (m mapCache) Set(k, v string) { m[k] = v }

func (m mapCache) Get(k string) (string, bool) {
	v, ok := m[k]
	return v, ok
}

func (m mapCache) Remove(k string) bool {
	_, ok := m[k]
	delete(m, k)
	return ok
}

type countingMetrics struct {
	classified map[Verdict]int
	sent       map[Verdict]int
	retracted  int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{classified: map[Verdict]int{}, sent: map[Verdict]int{}}
}

func (m *countingMetrics) MessageClassified(v Verdict) { m.classified[v]++ }
func (m *countingMetrics) ReminderSent(v Verdict)      { m.sent[v]++ }
func (m *countingMetrics) ReminderRetracted()          { m.retracted++ }

type channelSet map[string]bool

func (c channelSet) IsAllowed(channelID string) bool { return c[channelID] }

type fixture struct {
	chat    *fakeChat
	cache   mapCache
	metrics *countingMetrics
	service *ReminderService
}

func newFixture(t *testing.T, channels ChannelFilter) *fixture {
	t.Helper()

	f := &fixture{
		chat:    &fakeChat{},
		cache:   mapCache{},
		metrics: newCountingMetrics(),
	}
	f.service = NewReminderService(f.chat, f.cache, zaptest.NewLogger(t), Reminders{}, channels, f.metrics, botID)
	return f
}

func humanMessage(stats ImageIDStats) *Message {
	return &Message{
		ID:        uuid.NewString(),
		ChannelID: "general",
		Author:    &Author{ID: "user-1", Name: "someone"},
		Stats:     stats,
	}
}

func TestOnMessageCreateReminds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		stats   ImageIDStats
		content string
	}{
		{name: "under identified", stats: NewImageIDStats(1, 0, 0, 0), content: DefaultReminders.UnderIdentified},
		{name: "over identified", stats: NewImageIDStats(0, 0, 0, 1), content: DefaultReminders.OverIdentified},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t, nil)
			msg := humanMessage(tt.stats)
			f.service.OnMessageCreate(context.Background(), msg)

			want := []sentReply{{MessageID: msg.ID, Content: tt.content}}
			if diff := cmp.Diff(want, f.chat.replies); diff != "" {
				t.Fatalf("replies mismatch (-want +got):\n%s", diff)
			}
			if got := f.cache[msg.ID]; got != "reply-"+msg.ID {
				t.Fatalf("cached reply = %q, want %q", got, "reply-"+msg.ID)
			}
			if f.metrics.sent[tt.stats.Verdict()] != 1 {
				t.Fatalf("expected one reminder counted for %s", tt.stats.Verdict())
			}
		})
	}
}

func TestOnMessageCreateIgnoresCorrectlyIdentified(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.service.OnMessageCreate(context.Background(), humanMessage(NewImageIDStats(1, 1, 0, 2)))

	if len(f.chat.replies) != 0 {
		t.Fatalf("expected no replies, got %v", f.chat.replies)
	}
	if len(f.cache) != 0 {
		t.Fatalf("expected empty cache, got %v", f.cache)
	}
	if f.metrics.classified[VerdictCorrect] != 1 {
		t.Fatal("expected the message to be counted as correct")
	}
}

func TestOnMessageCreateIgnoresBots(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	msg := humanMessage(NewImageIDStats(1, 0, 0, 0))
	msg.Author.IsBot = true
	f.service.OnMessageCreate(context.Background(), msg)

	ownReply := &Message{
		ID:                  "reply",
		ChannelID:           "general",
		Author:              &Author{ID: botID, IsBot: true},
		IsReply:             true,
		ReferencedMessageID: msg.ID,
		Stats:               NewImageIDStats(0, 0, 0, 0),
	}
	f.service.OnMessageCreate(context.Background(), ownReply)

	if len(f.chat.replies) != 0 {
		t.Fatalf("expected no replies to bots, got %v", f.chat.replies)
	}
	if len(f.metrics.classified) != 0 {
		t.Fatalf("expected bot messages to be left unclassified, got %v", f.metrics.classified)
	}
}

func TestOnMessageCreateHonoursChannelFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t, channelSet{"art": true})
	outside := humanMessage(NewImageIDStats(1, 0, 0, 0))
	inside := humanMessage(NewImageIDStats(1, 0, 0, 0))
	inside.ChannelID = "art"

	f.service.OnMessageCreate(context.Background(), outside)
	f.service.OnMessageCreate(context.Background(), inside)

	want := []sentReply{{MessageID: inside.ID, Content: DefaultReminders.UnderIdentified}}
	if diff := cmp.Diff(want, f.chat.replies); diff != "" {
		t.Fatalf("replies mismatch (-want +got):\n%s", diff)
	}
}

func TestOnMessageCreateReplyFailureLeavesCacheEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.chat.replyErr = errors.New("missing permissions")
	f.service.OnMessageCreate(context.Background(), humanMessage(NewImageIDStats(1, 0, 0, 0)))

	if len(f.cache) != 0 {
		t.Fatalf("expected empty cache, got %v", f.cache)
	}
	if len(f.metrics.sent) != 0 {
		t.Fatalf("expected no reminders counted, got %v", f.metrics.sent)
	}
}

func TestOnMessageUpdateRetractsAndRemindsAgain(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	msg := humanMessage(NewImageIDStats(2, 0, 0, 0))
	f.service.OnMessageCreate(context.Background(), msg)

	edited := *msg
	edited.Stats = NewImageIDStats(2, 0, 0, 1)
	f.service.OnMessageUpdate(context.Background(), msg, &edited)

	wantDeleted := []deletedMessage{{ChannelID: "general", MessageID: "reply-" + msg.ID}}
	if diff := cmp.Diff(wantDeleted, f.chat.deleted); diff != "" {
		t.Fatalf("deleted mismatch (-want +got):\n%s", diff)
	}
	if len(f.chat.replies) != 2 {
		t.Fatalf("expected a second reminder, got %v", f.chat.replies)
	}
	if _, ok := f.cache[msg.ID]; !ok {
		t.Fatal("expected the new reminder to be cached")
	}
	if f.metrics.retracted != 1 {
		t.Fatalf("retracted = %d, want 1", f.metrics.retracted)
	}
}

func TestOnMessageUpdateFixedMessageOnlyRetracts(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	msg := humanMessage(NewImageIDStats(1, 0, 0, 0))
	f.service.OnMessageCreate(context.Background(), msg)

	edited := *msg
	edited.Stats = NewImageIDStats(1, 0, 0, 1)
	f.service.OnMessageUpdate(context.Background(), nil, &edited)

	if len(f.chat.deleted) != 1 {
		t.Fatalf("expected the reminder to be deleted, got %v", f.chat.deleted)
	}
	if len(f.chat.replies) != 1 {
		t.Fatalf("expected no further reminders, got %v", f.chat.replies)
	}
	if len(f.cache) != 0 {
		t.Fatalf("expected empty cache, got %v", f.cache)
	}
}

func TestOnMessageUpdateWithoutReminderIsQuiet(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.service.OnMessageUpdate(context.Background(), nil, humanMessage(NewImageIDStats(0, 0, 0, 0)))

	if len(f.chat.deleted) != 0 || len(f.chat.replies) != 0 {
		t.Fatalf("expected no chat actions, got deleted=%v replies=%v", f.chat.deleted, f.chat.replies)
	}
}

func TestOnMessageDeleteRetracts(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	msg := humanMessage(NewImageIDStats(1, 0, 0, 0))
	f.service.OnMessageCreate(context.Background(), msg)

	// delete events usually arrive without author details
	f.service.OnMessageDelete(context.Background(), &Message{ID: msg.ID, ChannelID: msg.ChannelID})

	if len(f.chat.deleted) != 1 {
		t.Fatalf("expected the reminder to be deleted, got %v", f.chat.deleted)
	}
	if len(f.cache) != 0 {
		t.Fatalf("expected empty cache, got %v", f.cache)
	}
}

func TestOnMessageDeleteFailureStillForgetsReminder(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	msg := humanMessage(NewImageIDStats(1, 0, 0, 0))
	f.service.OnMessageCreate(context.Background(), msg)

	f.chat.deleteErr = errors.New("unknown message")
	f.service.OnMessageDelete(context.Background(), msg)

	if len(f.cache) != 0 {
		t.Fatalf("expected empty cache, got %v", f.cache)
	}
	if f.metrics.retracted != 0 {
		t.Fatalf("retracted = %d, want 0", f.metrics.retracted)
	}
}

func TestOnMessageDeleteSkipsBots(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	f.cache["bot-message"] = "reply"
	f.service.OnMessageDelete(context.Background(), &Message{
		ID:     "bot-message",
		Author: &Author{ID: "other-bot", IsBot: true},
	})

	if len(f.chat.deleted) != 0 {
		t.Fatalf("expected no deletions, got %v", f.chat.deleted)
	}
}

func TestOnReadyLearnsSelfID(t *testing.T) {
	t.Parallel()

	service := NewReminderService(&fakeChat{}, mapCache{}, zap.NewNop(), Reminders{}, nil, nil, "")
	service.OnReady(context.Background(), Author{ID: "learned", Name: "id-bot", IsBot: true})
	if got := service.SelfID(); got != "learned" {
		t.Fatalf("SelfID() = %q, want %q", got, "learned")
	}

	service.OnReady(context.Background(), Author{ID: "other"})
	if got := service.SelfID(); got != "learned" {
		t.Fatalf("SelfID() changed to %q", got)
	}
}

func TestConfiguredRemindersOverrideDefaults(t *testing.T) {
	t.Parallel()

	service := NewReminderService(&fakeChat{}, mapCache{}, zap.NewNop(), Reminders{UnderIdentified: "add IDs"}, nil, nil, botID)
	if got := service.ReminderFor(NewImageIDStats(1, 0, 0, 0)); got != "add IDs" {
		t.Fatalf("ReminderFor(under) = %q", got)
	}
	if got := service.ReminderFor(NewImageIDStats(0, 0, 0, 1)); got != DefaultReminders.OverIdentified {
		t.Fatalf("ReminderFor(over) = %q", got)
	}
}
