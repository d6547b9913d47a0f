package headerkit

import "fmt"

// An ErrCode is an unsigned 32-bit HTTP/2 error code as defined in RFC 9113
// section 7.
type ErrCode uint32

const (
	ErrCodeNo                 ErrCode = 0x0
	ErrCodeProtocol           ErrCode = 0x1
	ErrCodeInternal           ErrCode = 0x2
	ErrCodeFlowControl        ErrCode = 0x3
	ErrCodeSettingsTimeout    ErrCode = 0x4
	ErrCodeStreamClosed       ErrCode = 0x5
	ErrCodeFrameSize          ErrCode = 0x6
	ErrCodeRefusedStream      ErrCode = 0x7
	ErrCodeCancel             ErrCode = 0x8
	ErrCodeCompression        ErrCode = 0x9
	ErrCodeConnect            ErrCode = 0xa
	ErrCodeEnhanceYourCalm    ErrCode = 0xb
	ErrCodeInadequateSecurity ErrCode = 0xc
	ErrCodeHTTP11Required     ErrCode = 0xd
)

var errCodeName = map[ErrCode]string{
	ErrCodeNo:                 "NO_ERROR",
	ErrCodeProtocol:           "PROTOCOL_ERROR",
	ErrCodeInternal:           "INTERNAL_ERROR",
	ErrCodeFlowControl:        "FLOW_CONTROL_ERROR",
	ErrCodeSettingsTimeout:    "SETTINGS_TIMEOUT",
	ErrCodeStreamClosed:       "STREAM_CLOSED",
	ErrCodeFrameSize:          "FRAME_SIZE_ERROR",
	ErrCodeRefusedStream:      "REFUSED_STREAM",
	ErrCodeCancel:             "CANCEL",
	ErrCodeCompression:        "COMPRESSION_ERROR",
	ErrCodeConnect:            "CONNECT_ERROR",
	ErrCodeEnhanceYourCalm:    "ENHANCE_YOUR_CALM",
	ErrCodeInadequateSecurity: "INADEQUATE_SECURITY",
	ErrCodeHTTP11Required:     "HTTP_1_1_REQUIRED",
}

func (e ErrCode) String() string {
	if s, ok := errCodeName[e]; ok {
		return s
	}
	return fmt.Sprintf("unknown error code 0x%x", uint32(e))
}

// StreamError is a protocol error scoped to a single stream. Both fields
// and the message are fixed at construction.
type StreamError struct {
	StreamID uint32
	Code     ErrCode
	Msg      string
}

func (e StreamError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("stream error: stream %d; %s", e.StreamID, e.Code)
	}
	return fmt.Sprintf("stream error: stream %d; %s: %s", e.StreamID, e.Code, e.Msg)
}

// ConnectionError is a protocol error that terminates the entire
// connection. The original stream 0 convention maps here.
type ConnectionError struct {
	Code ErrCode
	Msg  string
}

func (e ConnectionError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("connection error: %s", e.Code)
	}
	return fmt.Sprintf("connection error: %s: %s", e.Code, e.Msg)
}
