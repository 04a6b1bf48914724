package inbox

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
	"worklink/services/messaging-api/internal/domain/message"
	"worklink/services/messaging-api/internal/domain/user"
)

type stubConversationRepo struct {
	listed []*conversation.Conversation
}

func (s *stubConversationRepo) FindOrCreate(ctx context.Context, low, high string) (*conversation.Conversation, error) {
	return nil, errors.New("not used")
}

func (s *stubConversationRepo) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	return nil, conversation.ErrNotFound
}

func (s *stubConversationRepo) ListForParticipant(ctx context.Context, participantID string) ([]*conversation.Conversation, error) {
	return s.listed, nil
}

type stubMessageRepo struct {
	lastByConv   map[string]*message.Message
	unreadByConv map[string]int64
}

func (s *stubMessageRepo) Append(ctx context.Context, conv *conversation.Conversation, msg *message.Message) error {
	return errors.New("not used")
}

func (s *stubMessageRepo) ListByConversation(ctx context.Context, conv *conversation.Conversation) ([]*message.Message, error) {
	return nil, nil
}

func (s *stubMessageRepo) LastByConversation(ctx context.Context, conv *conversation.Conversation) (*message.Message, error) {
	return s.lastByConv[conv.PublicID], nil
}

func (s *stubMessageRepo) MarkRead(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	return 0, nil
}

func (s *stubMessageRepo) CountUnread(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	return s.unreadByConv[conv.PublicID], nil
}

func (s *stubMessageRepo) AttachmentInUse(ctx context.Context, attachmentPublicID string) (bool, error) {
	return false, nil
}

type stubDirectory struct {
	profiles map[string]*user.Profile
	err      error
}

func (s *stubDirectory) Resolve(ctx context.Context, participantID string) (*user.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profiles[participantID], nil
}

func TestListForBuildsSummaries(t *testing.T) {
	now := time.Now().UTC()
	convRepo := &stubConversationRepo{
		listed: []*conversation.Conversation{
			{PublicID: "conv_newer", ParticipantLow: "user_me", ParticipantHigh: "user_zoe", LastMessageAt: now},
			{PublicID: "conv_older", ParticipantLow: "user_abe", ParticipantHigh: "user_me", LastMessageAt: now.Add(-time.Hour)},
		},
	}
	msgRepo := &stubMessageRepo{
		lastByConv: map[string]*message.Message{
			"conv_newer": {Body: "see you tomorrow", SenderID: "user_zoe"},
			"conv_older": {Body: "", Attachment: &attachment.Attachment{Filename: "contract.pdf"}},
		},
		unreadByConv: map[string]int64{"conv_newer": 2},
	}
	directory := &stubDirectory{profiles: map[string]*user.Profile{
		"user_zoe": {ID: "user_zoe", DisplayName: "Zoe Park"},
		"user_abe": {ID: "user_abe", DisplayName: "Abe Ngu"},
	}}

	svc := NewService(convRepo, msgRepo, directory, 120, zerolog.Nop())

	summaries, err := svc.ListFor(context.Background(), "user_me")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}

	first := summaries[0]
	if first.PartnerID != "user_zoe" || first.PartnerName != "Zoe Park" {
		t.Fatalf("partner = %q/%q, want user_zoe/Zoe Park", first.PartnerID, first.PartnerName)
	}
	if first.Preview != "see you tomorrow" {
		t.Fatalf("preview = %q", first.Preview)
	}
	if first.UnreadCount != 2 {
		t.Fatalf("unread = %d, want 2", first.UnreadCount)
	}

	// Attachment-only thread previews the filename.
	if summaries[1].Preview != "contract.pdf" {
		t.Fatalf("attachment preview = %q, want contract.pdf", summaries[1].Preview)
	}
}

func TestListForTruncatesLongPreviews(t *testing.T) {
	long := strings.Repeat("a", 200)
	convRepo := &stubConversationRepo{
		listed: []*conversation.Conversation{
			{PublicID: "conv_1", ParticipantLow: "user_me", ParticipantHigh: "user_x"},
		},
	}
	msgRepo := &stubMessageRepo{
		lastByConv:   map[string]*message.Message{"conv_1": {Body: long}},
		unreadByConv: map[string]int64{},
	}

	svc := NewService(convRepo, msgRepo, nil, 120, zerolog.Nop())

	summaries, err := svc.ListFor(context.Background(), "user_me")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	preview := summaries[0].Preview
	if len([]rune(preview)) != 123 {
		t.Fatalf("preview length = %d, want 120 runes plus ellipsis", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Fatalf("truncated preview should end with ellipsis")
	}
}

func TestListForToleratesDirectoryOutage(t *testing.T) {
	convRepo := &stubConversationRepo{
		listed: []*conversation.Conversation{
			{PublicID: "conv_1", ParticipantLow: "user_me", ParticipantHigh: "user_x"},
		},
	}
	msgRepo := &stubMessageRepo{
		lastByConv:   map[string]*message.Message{},
		unreadByConv: map[string]int64{},
	}
	directory := &stubDirectory{err: errors.New("directory down")}

	svc := NewService(convRepo, msgRepo, directory, 120, zerolog.Nop())

	summaries, err := svc.ListFor(context.Background(), "user_me")
	if err != nil {
		t.Fatalf("directory outage must not fail the inbox: %v", err)
	}
	if summaries[0].PartnerID != "user_x" {
		t.Fatalf("partner id = %q, want user_x", summaries[0].PartnerID)
	}
	if summaries[0].PartnerName != "" {
		t.Fatalf("partner name should be empty when the directory is down")
	}
}

func TestListForEmptyInbox(t *testing.T) {
	svc := NewService(&stubConversationRepo{}, &stubMessageRepo{}, nil, 120, zerolog.Nop())

	summaries, err := svc.ListFor(context.Background(), "user_me")
	if err != nil {
		t.Fatalf("ListFor: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("expected empty inbox, got %d rows", len(summaries))
	}
}
