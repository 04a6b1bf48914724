package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName = "worklink/messaging-api"
)

// GetTracer returns the tracer for the messaging service.
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// ConversationAttributes returns common attributes for conversation spans.
func ConversationAttributes(conversationID, participantA, participantB string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("conversation.id", conversationID),
		attribute.String("conversation.participant_a", participantA),
		attribute.String("conversation.participant_b", participantB),
	}
}

// MessageAttributes returns common attributes for message spans.
func MessageAttributes(conversationID, senderID, kind string, seq int64) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("message.conversation_id", conversationID),
		attribute.String("message.sender_id", senderID),
		attribute.String("message.kind", kind),
		attribute.Int64("message.seq", seq),
	}
}

// StartSendSpan starts a new span for a message append.
func StartSendSpan(ctx context.Context, conversationID, senderID string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "message.send",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("message.conversation_id", conversationID),
			attribute.String("message.sender_id", senderID),
		),
	)
	return ctx, span
}

// StartMarkReadSpan starts a new span for a read-state transition.
func StartMarkReadSpan(ctx context.Context, conversationID, viewerID string) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "message.mark_read",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("message.conversation_id", conversationID),
			attribute.String("message.viewer_id", viewerID),
		),
	)
	return ctx, span
}

// StartIngestSpan starts a new span for an attachment ingest.
func StartIngestSpan(ctx context.Context, filename string, size int64) (context.Context, trace.Span) {
	ctx, span := GetTracer().Start(ctx, "attachment.ingest",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("attachment.filename", filename),
			attribute.Int64("attachment.bytes", size),
		),
	)
	return ctx, span
}

// RecordError records an error on a span.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
