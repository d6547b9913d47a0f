package headerkit

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrCodeString(t *testing.T) {
	cases := map[ErrCode]string{
		ErrCodeNo:              "NO_ERROR",
		ErrCodeProtocol:        "PROTOCOL_ERROR",
		ErrCodeEnhanceYourCalm: "ENHANCE_YOUR_CALM",
		ErrCodeHTTP11Required:  "HTTP_1_1_REQUIRED",
	}

	for code, expected := range cases {
		if code.String() != expected {
			t.Errorf("ErrCode(%d).String() = %q, expected %q", code, code.String(), expected)
		}
	}

	unknown := ErrCode(0xff)
	if unknown.String() != "unknown error code 0xff" {
		t.Errorf("unknown code String() = %q", unknown.String())
	}
}

func TestStreamErrorMessage(t *testing.T) {
	err := StreamError{StreamID: 7, Code: ErrCodeRefusedStream, Msg: "server at capacity"}
	expected := "stream error: stream 7; REFUSED_STREAM: server at capacity"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}

	bare := StreamError{StreamID: 3, Code: ErrCodeCancel}
	if bare.Error() != "stream error: stream 3; CANCEL" {
		t.Errorf("Error() without message = %q", bare.Error())
	}
}

func TestConnectionErrorMessage(t *testing.T) {
	err := ConnectionError{Code: ErrCodeFlowControl, Msg: "window exceeded"}
	expected := "connection error: FLOW_CONTROL_ERROR: window exceeded"
	if err.Error() != expected {
		t.Errorf("Error() = %q, expected %q", err.Error(), expected)
	}
}

func TestStreamErrorAsTarget(t *testing.T) {
	wrapped := fmt.Errorf("reading request: %w", StreamError{StreamID: 1, Code: ErrCodeProtocol})

	var streamErr StreamError
	if !errors.As(wrapped, &streamErr) {
		t.Fatal("errors.As failed to unwrap StreamError")
	}
	if streamErr.StreamID != 1 || streamErr.Code != ErrCodeProtocol {
		t.Errorf("unwrapped StreamError = %+v", streamErr)
	}
}
