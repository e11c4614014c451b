package quill

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serialization events.
var (
	SignalSerializeStart    = capitan.NewSignal("quill.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete = capitan.NewSignal("quill.serialize.complete", "Serialize operation finished")
	SignalOutputMalformed   = capitan.NewSignal("quill.output.malformed", "Produced output failed the JSON check")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyMode        = capitan.NewStringKey("mode")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyMaskedCount = capitan.NewIntKey("masked_count")
	KeyError       = capitan.NewErrorKey("error")
)

// emitSerializeStart emits an event when serialization begins.
func emitSerializeStart(ctx context.Context, typeName, mode string) {
	capitan.Emit(ctx, SignalSerializeStart,
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode),
	)
}

// emitSerializeComplete emits an event when serialization finishes.
func emitSerializeComplete(ctx context.Context, typeName, mode string, size int, duration time.Duration, masked int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyMode.Field(mode),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeyMaskedCount.Field(masked),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitOutputMalformed emits an event when the diagnostic check finds
// output that does not parse as JSON.
func emitOutputMalformed(ctx context.Context, typeName string, size int, err error) {
	capitan.Error(ctx, SignalOutputMalformed,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyError.Field(err),
	)
}
