package message

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"worklink/services/messaging-api/internal/domain/attachment"
	"worklink/services/messaging-api/internal/domain/conversation"
)

type fakeConversationRepo struct {
	conversations map[string]*conversation.Conversation
}

func (f *fakeConversationRepo) FindOrCreate(ctx context.Context, low, high string) (*conversation.Conversation, error) {
	return nil, errors.New("not used")
}

func (f *fakeConversationRepo) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	if conv, ok := f.conversations[publicID]; ok {
		return conv, nil
	}
	return nil, conversation.ErrNotFound
}

func (f *fakeConversationRepo) ListForParticipant(ctx context.Context, participantID string) ([]*conversation.Conversation, error) {
	var out []*conversation.Conversation
	for _, conv := range f.conversations {
		if conv.HasParticipant(participantID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

// fakeMessageRepo mirrors the transactional append semantics in memory.
type fakeMessageRepo struct {
	messages []*Message
}

func (f *fakeMessageRepo) Append(ctx context.Context, conv *conversation.Conversation, msg *Message) error {
	conv.LastSeq++
	msg.Seq = conv.LastSeq
	msg.CreatedAt = time.Now().UTC()
	conv.LastMessageAt = msg.CreatedAt
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeMessageRepo) ListByConversation(ctx context.Context, conv *conversation.Conversation) ([]*Message, error) {
	var out []*Message
	for _, msg := range f.messages {
		if msg.ConversationID == conv.PublicID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) LastByConversation(ctx context.Context, conv *conversation.Conversation) (*Message, error) {
	var last *Message
	for _, msg := range f.messages {
		if msg.ConversationID == conv.PublicID && (last == nil || msg.Seq > last.Seq) {
			last = msg
		}
	}
	return last, nil
}

func (f *fakeMessageRepo) MarkRead(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	var transitioned int64
	for _, msg := range f.messages {
		if msg.ConversationID == conv.PublicID && msg.SenderID != viewerID && !msg.IsRead {
			msg.IsRead = true
			transitioned++
		}
	}
	return transitioned, nil
}

func (f *fakeMessageRepo) AttachmentInUse(ctx context.Context, attachmentPublicID string) (bool, error) {
	for _, msg := range f.messages {
		if msg.Attachment != nil && msg.Attachment.PublicID == attachmentPublicID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, conv *conversation.Conversation, viewerID string) (int64, error) {
	var count int64
	for _, msg := range f.messages {
		if msg.ConversationID == conv.PublicID && msg.SenderID != viewerID && !msg.IsRead {
			count++
		}
	}
	return count, nil
}

type fakeAttachmentRepo struct {
	attachments map[string]*attachment.Attachment
}

func (f *fakeAttachmentRepo) Create(ctx context.Context, att *attachment.Attachment) error {
	return errors.New("not used")
}

func (f *fakeAttachmentRepo) FindByPublicID(ctx context.Context, publicID string) (*attachment.Attachment, error) {
	if att, ok := f.attachments[publicID]; ok {
		return att, nil
	}
	return nil, attachment.ErrNotFound
}

const (
	testConvID = "conv_01h000000000000000000000000"
	alice      = "user_alice"
	bob        = "user_bob"
	mallory    = "user_mallory"
)

func newFixture() (*DefaultService, *fakeMessageRepo, *fakeConversationRepo) {
	convRepo := &fakeConversationRepo{
		conversations: map[string]*conversation.Conversation{
			testConvID: {
				PublicID:        testConvID,
				ParticipantLow:  alice,
				ParticipantHigh: bob,
			},
		},
	}
	msgRepo := &fakeMessageRepo{}
	attRepo := &fakeAttachmentRepo{attachments: map[string]*attachment.Attachment{
		"att_01h000000000000000000000001": {
			PublicID: "att_01h000000000000000000000001",
			Filename: "photo.png",
			Kind:     attachment.KindImage,
		},
	}}
	svc := NewService(convRepo, msgRepo, attRepo, zerolog.Nop())
	return svc, msgRepo, convRepo
}

func TestAppendAssignsSequentialSeqs(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	first, err := svc.Append(ctx, testConvID, alice, "hello", nil)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	second, err := svc.Append(ctx, testConvID, bob, "hi back", nil)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	if first.Seq != 1 || second.Seq != 2 {
		t.Fatalf("seqs = (%d, %d), want (1, 2)", first.Seq, second.Seq)
	}
	if first.Kind != KindText {
		t.Fatalf("kind = %q, want text", first.Kind)
	}
}

func TestAppendRejectsEmptyMessage(t *testing.T) {
	svc, _, _ := newFixture()

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"whitespace body", "   \t\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Append(context.Background(), testConvID, alice, tt.body, nil)
			if !errors.Is(err, ErrEmptyMessage) {
				t.Fatalf("error = %v, want ErrEmptyMessage", err)
			}
		})
	}
}

func TestAppendAllowsAttachmentOnly(t *testing.T) {
	svc, _, _ := newFixture()

	attID := "att_01h000000000000000000000001"
	msg, err := svc.Append(context.Background(), testConvID, alice, "", &attID)
	if err != nil {
		t.Fatalf("Append with attachment only: %v", err)
	}
	if msg.Kind != KindImage {
		t.Fatalf("kind = %q, want image (inherited from attachment)", msg.Kind)
	}
	if msg.Attachment == nil || msg.Attachment.PublicID != attID {
		t.Fatalf("attachment reference not carried on message")
	}
}

func TestAppendRejectsSharedAttachment(t *testing.T) {
	svc, msgRepo, _ := newFixture()
	ctx := context.Background()

	attID := "att_01h000000000000000000000001"
	if _, err := svc.Append(ctx, testConvID, alice, "", &attID); err != nil {
		t.Fatalf("first Append with attachment: %v", err)
	}

	// The attachment now belongs to alice's message; nobody can reference
	// it again, not even its first sender.
	_, err := svc.Append(ctx, testConvID, bob, "", &attID)
	if !errors.Is(err, ErrAttachmentInUse) {
		t.Fatalf("error = %v, want ErrAttachmentInUse", err)
	}
	_, err = svc.Append(ctx, testConvID, alice, "reusing mine", &attID)
	if !errors.Is(err, ErrAttachmentInUse) {
		t.Fatalf("error = %v, want ErrAttachmentInUse", err)
	}

	if len(msgRepo.messages) != 1 {
		t.Fatalf("stored %d messages, want 1", len(msgRepo.messages))
	}
}

func TestAppendRejectsOutsider(t *testing.T) {
	svc, msgRepo, _ := newFixture()

	_, err := svc.Append(context.Background(), testConvID, mallory, "let me in", nil)
	if !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("error = %v, want ErrNotAParticipant", err)
	}
	if len(msgRepo.messages) != 0 {
		t.Fatalf("outsider message must not be stored")
	}
}

func TestAppendUnknownConversation(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Append(context.Background(), "conv_01h999999999999999999999999", alice, "hello", nil)
	if !errors.Is(err, conversation.ErrNotFound) {
		t.Fatalf("error = %v, want conversation.ErrNotFound", err)
	}
}

func TestListRequiresMembership(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Append(ctx, testConvID, alice, "hello", nil); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if _, err := svc.List(ctx, testConvID, mallory); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("List by outsider error = %v, want ErrNotAParticipant", err)
	}

	msgs, err := svc.List(ctx, testConvID, bob)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc, _, _ := newFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Append(ctx, testConvID, alice, "msg", nil); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	transitioned, err := svc.MarkRead(ctx, testConvID, bob)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if transitioned != 3 {
		t.Fatalf("first MarkRead transitioned %d, want 3", transitioned)
	}

	again, err := svc.MarkRead(ctx, testConvID, bob)
	if err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if again != 0 {
		t.Fatalf("second MarkRead transitioned %d, want 0", again)
	}

	unread, err := svc.UnreadCount(ctx, testConvID, bob)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread != 0 {
		t.Fatalf("unread after MarkRead = %d, want 0", unread)
	}
}

func TestMarkReadLeavesOwnMessagesAlone(t *testing.T) {
	svc, msgRepo, _ := newFixture()
	ctx := context.Background()

	if _, err := svc.Append(ctx, testConvID, alice, "from alice", nil); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if _, err := svc.Append(ctx, testConvID, bob, "from bob", nil); err != nil {
		t.Fatalf("Append: %v", err)
	}

	transitioned, err := svc.MarkRead(ctx, testConvID, alice)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if transitioned != 1 {
		t.Fatalf("transitioned = %d, want 1 (only bob's message)", transitioned)
	}

	for _, msg := range msgRepo.messages {
		if msg.SenderID == alice && msg.IsRead {
			t.Fatalf("alice's own message must stay unread from her viewpoint")
		}
	}

	// Bob still has alice's message unread.
	unread, err := svc.UnreadCount(ctx, testConvID, bob)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if unread != 1 {
		t.Fatalf("bob's unread = %d, want 1", unread)
	}
}

func TestMarkReadRequiresMembership(t *testing.T) {
	svc, _, _ := newFixture()

	if _, err := svc.MarkRead(context.Background(), testConvID, mallory); !errors.Is(err, ErrNotAParticipant) {
		t.Fatalf("error = %v, want ErrNotAParticipant", err)
	}
}
